package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidVault    = errors.New("invalid vault")
	ErrInvalidRoot     = errors.New("invalid vault root")
	ErrOutsideVault    = errors.New("path is outside the vault")
	ErrInvalidEncoding = errors.New("invalid UTF-8 encoding")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// VaultError describes why a configured vault root was rejected
type VaultError struct {
	Path   string
	Reason string
}

func (e *VaultError) Error() string {
	return fmt.Sprintf("invalid vault %s: %s", e.Path, e.Reason)
}

func (e *VaultError) Is(target error) bool {
	return target == ErrInvalidVault
}
