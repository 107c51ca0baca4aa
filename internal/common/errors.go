// Package common defines shared constants and sentinel errors used across
// the portal gateway. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Provisioning errors. Duplicate errors distinguish a collision in the
	// registrant tables from one in the shared RADIUS credential namespace.
	ErrorValidation          = errors.New("missing required field")
	ErrorDuplicateContact    = errors.New("email or phone already registered")
	ErrorDuplicateCredential = errors.New("username already exists in credential namespace")

	// Authentication failure. Deliberately undifferentiated: an unknown
	// username and a wrong secret map to the same value.
	ErrorInvalidCredentials = errors.New("invalid credentials")

	// Storage/transport failures and generic internal flow control.
	ErrorStorage  = errors.New("storage failure")
	ErrorInternal = errors.New("internal error")

	// Admin auth errors (invalid or malformed session token).
	ErrInvalidToken = errors.New("invalid token")
	ErrUnauthorized = errors.New("unauthorized")
)
