package middleware

import (
	"net/http"

	"parkapp/internal/common"
	"parkapp/internal/services"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// SessionContextKey is the echo context key holding *models.SessionClaims
// for a request that passed the bearer guard.
const SessionContextKey = "session"

const (
	msgNoToken      = "No token"
	msgInvalidToken = "Invalid token"
)

// JWTMiddleware guards routes with a bearer token verified by the identity
// service. Verified claims are stored on both the echo context and the
// request context.
func JWTMiddleware(identity services.IdentityService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  SessionContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			claims, err := identity.RequireAuth(c.Request().Context(), auth)
			if err != nil {
				return nil, err
			}
			c.SetRequest(c.Request().WithContext(common.WithSession(c.Request().Context(), claims)))
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			msg := msgInvalidToken
			if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
				msg = msgNoToken
			}
			return echo.NewHTTPError(http.StatusUnauthorized, msg).SetInternal(err)
		},
	})
}
