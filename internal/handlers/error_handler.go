package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"parkapp/internal/common"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const (
	msgInvalidCredentials = "Invalid credentials"
	msgDuplicateIdentity  = "Username or subdomain already exists"
	msgInvalidToken       = "Invalid token"
	msgEntryNotFound      = "Entry not found or already exited."
	msgDatabaseError      = "Database error"
	msgInternalError      = "Internal server error"
)

// NewHTTPErrorHandler renders every error as {"success": false, "message": ...}.
// Storage and unknown failures are logged with their cause; the client only
// sees a fixed message.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err)
		if code >= http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("request failed")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, common.CreateErrorResponse(msg))
	}
}

func resolveError(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Storage and internal errors may wrap a cause of another kind, such as
	// NotFound. They are checked first so they always stay 500.
	switch {
	case errors.Is(err, common.ErrStorage):
		return http.StatusInternalServerError, msgDatabaseError
	case errors.Is(err, common.ErrInternal):
		return http.StatusInternalServerError, msgInternalError
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest, validationMessage(err)
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, msgInvalidCredentials
	case errors.Is(err, common.ErrUnauthenticated):
		return http.StatusUnauthorized, msgInvalidToken
	case errors.Is(err, common.ErrDuplicateIdentity):
		return http.StatusConflict, msgDuplicateIdentity
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound, msgEntryNotFound
	}
	return http.StatusInternalServerError, msgInternalError
}

// validationMessage drops everything up to and including the sentinel text.
func validationMessage(err error) string {
	msg := err.Error()
	prefix := common.ErrValidation.Error() + ": "
	if i := strings.Index(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return msg
}
