package services

import "errors"

// Sentinel errors mapped to HTTP status codes by the handlers.
var (
	// ErrInvalidInput - missing or invalid field (400).
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthorized - bad credentials (401).
	ErrUnauthorized = errors.New("invalid credentials")
	// ErrForbidden - insufficient role (403).
	ErrForbidden = errors.New("insufficient permissions")
	// ErrNotFound - resource missing or not owned by the caller (404). The two
	// cases are deliberately indistinguishable so existence is not leaked.
	ErrNotFound = errors.New("not found")
	// ErrConflict - duplicate unique field or dependent-row delete (409).
	ErrConflict = errors.New("conflict")
)
