package httpx

import (
	"errors"
	"net/http"

	"github.com/rentdesk/rentdesk/internal/shared"
)

// RespondError maps domain errors to HTTP responses using RFC7807.
// Every failure is scoped to the single operation that triggered it; nothing
// here is treated as fatal to the process.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, shared.ErrDuplicatePayment):
		Problem(w, http.StatusConflict, "Duplicate Payment", err.Error())
	case errors.Is(err, shared.ErrCredentialConflict):
		Problem(w, http.StatusConflict, "Credential Conflict", err.Error())
	case errors.Is(err, shared.ErrPartialProvisioning):
		Problem(w, http.StatusConflict, "Partial Provisioning Failure", err.Error())
	case errors.Is(err, shared.ErrConflict):
		Problem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, shared.ErrUnauthorized), errors.Is(err, shared.ErrInvalidCredentials):
		Problem(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	case errors.Is(err, shared.ErrForbidden):
		Problem(w, http.StatusForbidden, "Forbidden", err.Error())
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
