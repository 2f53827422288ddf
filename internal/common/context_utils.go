package common

import (
	"context"
	"fmt"
	"strings"
	"time"

	"parkapp/internal/models"
)

type contextKey string

const (
	SessionKey contextKey = "session"
)

// ErrorResponse is the envelope returned for every failed request
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{Success: false, Message: message}
}

// WithSession stores verified session claims on the context
func WithSession(ctx context.Context, claims *models.SessionClaims) context.Context {
	return context.WithValue(ctx, SessionKey, claims)
}

// GetSessionFromContext extracts the session claims from the request context
func GetSessionFromContext(ctx context.Context) (*models.SessionClaims, bool) {
	claims, ok := ctx.Value(SessionKey).(*models.SessionClaims)
	return claims, ok && claims != nil
}

const dateLayout = "2006-01-02"

// ParseDateParam parses a query value as either YYYY-MM-DD or RFC 3339.
// Empty input yields nil.
func ParseDateParam(value, fieldName string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be in YYYY-MM-DD or RFC 3339 format", ErrValidation, fieldName)
	}
	return &t, nil
}

// FormatDate renders the calendar day of t as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// ValidateDateRange validates date ranges
func ValidateDateRange(start, end *time.Time) error {
	if end == nil {
		return nil
	}
	if start == nil {
		return fmt.Errorf("%w: start is required when end is given", ErrValidation)
	}
	if end.Before(*start) {
		return fmt.Errorf("%w: end date cannot be before start date", ErrValidation)
	}
	return nil
}
