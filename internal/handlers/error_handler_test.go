package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"parkapp/internal/common"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestResolveError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"invalid credentials", common.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"duplicate", fmt.Errorf("create user: %w", common.ErrDuplicateIdentity), http.StatusConflict, "Username or subdomain already exists"},
		{"unauthenticated", common.ErrUnauthenticated, http.StatusUnauthorized, "Invalid token"},
		{"not found", fmt.Errorf("mark vehicle exited: %w", common.ErrNotFound), http.StatusNotFound, "Entry not found or already exited."},
		{"storage", common.StorageError("list", errors.New("boom")), http.StatusInternalServerError, "Database error"},
		{"storage wrapping not found", common.StorageError("resolve company", fmt.Errorf("get company by subdomain: %w", common.ErrNotFound)), http.StatusInternalServerError, "Database error"},
		{"internal", common.InternalError("hash password", errors.New("entropy exhausted")), http.StatusInternalServerError, "Internal server error"},
		{"validation", common.ValidationError("numberPlate is required"), http.StatusBadRequest, "numberPlate is required"},
		{"echo error", echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Request Entity Too Large"), http.StatusRequestEntityTooLarge, "Request Entity Too Large"},
		{"unknown", errors.New("surprise"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, msg := resolveError(tc.err)
			assert.Equal(t, tc.code, code)
			assert.Equal(t, tc.msg, msg)
		})
	}
}
