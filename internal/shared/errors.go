package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates a field constraint violation caught before any write.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrCredentialConflict indicates the email is already registered.
	ErrCredentialConflict = errors.New("email already registered")
	// ErrDuplicatePayment indicates a rent payment already exists for the period.
	ErrDuplicatePayment = errors.New("payment already recorded for period")
	// ErrPartialProvisioning indicates tenant provisioning left inconsistent state.
	ErrPartialProvisioning = errors.New("provisioning left partial state")
	// ErrUnauthorized indicates the principal could not be resolved to a role.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden indicates the role/ownership predicate denied access.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict indicates a state transition that is no longer allowed.
	ErrConflict = errors.New("conflict")
	// ErrCSRFTokenMissing occurs when CSRF token missing.
	ErrCSRFTokenMissing = errors.New("csrf token missing")
	// ErrCSRFTokenMismatch occurs when CSRF tokens do not match.
	ErrCSRFTokenMismatch = errors.New("csrf token mismatch")
)
