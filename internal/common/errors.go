package common

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the identity service and the vehicle ledger. Every
// failure leaving those services wraps one of them. ErrStorage and
// ErrInternal take precedence over any kind found in their cause.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateIdentity  = errors.New("username or subdomain already exists")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrNotFound           = errors.New("not found")
	ErrStorage            = errors.New("storage error")
	ErrValidation         = errors.New("validation failed")
	ErrInternal           = errors.New("internal error")
)

// StorageError wraps a persistence failure so that both ErrStorage and the
// driver cause stay reachable through errors.Is and errors.As.
func StorageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

// ValidationError wraps a client input problem.
func ValidationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// InternalError wraps a failure that is neither storage nor client input,
// such as a bcrypt or signing failure.
func InternalError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
}
