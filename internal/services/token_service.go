package services

import (
	"time"

	"parkapp/internal/common"
	"parkapp/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and verifies signed session tokens.
type TokenService interface {
	Issue(claims map[string]any, ttl time.Duration) (string, error)
	Verify(token string) (map[string]any, error)
	IssueSession(claims *models.SessionClaims) (string, error)
	VerifySession(token string) (*models.SessionClaims, error)
}

type tokenService struct {
	secret []byte
	now    func() time.Time
}

// NewTokenService creates an HS256 token service. Session tokens are always
// issued for models.SessionTTL.
func NewTokenService(secret string) TokenService {
	return newTokenService(secret, time.Now)
}

func newTokenService(secret string, now func() time.Time) *tokenService {
	return &tokenService{secret: []byte(secret), now: now}
}

// Issue signs claims with iat and exp added. Caller keys named iat or exp are
// overwritten.
func (s *tokenService) Issue(claims map[string]any, ttl time.Duration) (string, error) {
	now := s.now()
	mc := make(jwt.MapClaims, len(claims)+2)
	for k, v := range claims {
		mc[k] = v
	}
	mc["iat"] = jwt.NewNumericDate(now)
	mc["exp"] = jwt.NewNumericDate(now.Add(ttl))

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString(s.secret)
	if err != nil {
		return "", common.InternalError("sign token", err)
	}
	return signed, nil
}

// Verify checks signature and expiry. Every failure is common.ErrUnauthenticated.
func (s *tokenService) Verify(token string) (map[string]any, error) {
	if token == "" {
		return nil, common.ErrUnauthenticated
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return nil, common.ErrUnauthenticated
	}
	return claims, nil
}

func (s *tokenService) IssueSession(claims *models.SessionClaims) (string, error) {
	return s.Issue(claims.Map(), models.SessionTTL)
}

func (s *tokenService) VerifySession(token string) (*models.SessionClaims, error) {
	raw, err := s.Verify(token)
	if err != nil {
		return nil, err
	}

	claims := &models.SessionClaims{
		Username:         stringClaim(raw, models.ClaimUsername),
		UserID:           stringClaim(raw, models.ClaimUserID),
		CompanyID:        stringClaim(raw, models.ClaimCompanyID),
		Role:             stringClaim(raw, models.ClaimRole),
		CompanySubdomain: stringClaim(raw, models.ClaimCompanySubdomain),
	}
	mc := jwt.MapClaims(raw)
	if iat, err := mc.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	if claims.Username == "" && claims.UserID == "" {
		return nil, common.ErrUnauthenticated
	}
	// A session never outlives SessionTTL, whatever exp the signer chose.
	if claims.IssuedAt.IsZero() || claims.ExpiresAt.Sub(claims.IssuedAt) > models.SessionTTL {
		return nil, common.ErrUnauthenticated
	}
	return claims, nil
}

func stringClaim(claims map[string]any, key string) string {
	v, _ := claims[key].(string)
	return v
}
