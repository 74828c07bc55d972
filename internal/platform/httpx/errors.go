package httpx

import (
	"errors"
	"net/http"

	"github.com/KRTNP/User-Management-System-For-Train/internal/shared"
)

// RespondError maps domain errors to HTTP responses. Duplicate keys,
// invalid credentials and the admin self-guards all surface as 400 per
// the API contract; anything unrecognized is an opaque 500 so store
// internals never leak to the caller.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, shared.ErrDuplicate):
		Problem(w, http.StatusBadRequest, "Duplicate", err.Error())
	case errors.Is(err, shared.ErrInvalidCredentials):
		Problem(w, http.StatusBadRequest, "Invalid Credentials", err.Error())
	case errors.Is(err, shared.ErrSelfDemotion), errors.Is(err, shared.ErrSelfDeletion):
		Problem(w, http.StatusBadRequest, "Not Allowed", err.Error())
	case errors.Is(err, shared.ErrUnauthorized):
		Problem(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
	case errors.Is(err, shared.ErrForbidden):
		Problem(w, http.StatusForbidden, "Forbidden", "insufficient role")
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
