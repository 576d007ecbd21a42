package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates a storage-level uniqueness violation (duplicate
// email or duplicate (provider, provider user ID) pair).
var ErrDuplicate = errors.New("resource already exists")

// ErrAccountExists indicates a registration attempt for an email that is
// already claimed. The user service maps ErrDuplicate to this at the API
// boundary.
var ErrAccountExists = errors.New("account already exists with this email")

// ErrInvalidCredentials indicates a failed login. It deliberately does not
// distinguish an unknown email, an OAuth-only account, or a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrInvalidToken indicates a malformed, tampered, or expired bearer token.
var ErrInvalidToken = errors.New("invalid token")

// ErrForbidden indicates the authenticated user lacks the required role.
var ErrForbidden = errors.New("forbidden")
