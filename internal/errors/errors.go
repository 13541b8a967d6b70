package errors

import (
	"errors"
	"fmt"
)

// Error taxonomy for the organization-management service. Every failure the
// services surface wraps exactly one of these sentinels so the HTTP layer can
// classify it without parsing message text.
var (
	// Input errors
	ErrValidation = errors.New("validation failure")

	// Registry errors
	ErrAlreadyExists = errors.New("already exists")
	ErrNotFound      = errors.New("not found")

	// Authentication errors. ErrInvalidCredentials is deliberately identical
	// whether the email is unknown or the password is wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidRefresh     = errors.New("invalid refresh token")
	ErrRefreshMismatch    = errors.New("refresh token mismatch")

	// Authorization errors
	ErrForbidden = errors.New("forbidden")

	// Persistence errors
	ErrStore = errors.New("store failure")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Validationf reports a validation failure with a formatted reason.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Store wraps an underlying persistence error so callers can classify it as
// ErrStore while retaining the driver's context in the chain.
func Store(err error, operation string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %v", ErrStore, operation, err)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
