// internal/app/features/shared/respond/respond.go
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	meetingstore "github.com/dalemusser/meethub/internal/app/store/meetings"
	userstore "github.com/dalemusser/meethub/internal/app/store/users"
	"github.com/dalemusser/meethub/internal/app/system/validate"
)

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes a JSON error body with the given status.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// StoreError maps store and validation sentinels to HTTP statuses. Anything
// unrecognized is logged and reported as a generic 500 so internals never
// leak to the client.
func StoreError(w http.ResponseWriter, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, meetingstore.ErrNotFound):
		Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, userstore.ErrNotFound):
		Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, meetingstore.ErrOwnerNotFound):
		Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, meetingstore.ErrOwnerIsPrivileged):
		Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, meetingstore.ErrNoOpEdit),
		errors.Is(err, meetingstore.ErrBadImportance),
		errors.Is(err, validate.ErrStartAfterEnd),
		errors.Is(err, validate.ErrStartInPast):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, userstore.ErrDuplicate),
		errors.Is(err, userstore.ErrBadResetToken):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, userstore.ErrBadCredentials):
		Error(w, http.StatusUnauthorized, err.Error())
	default:
		log.Error("request failed", zap.Error(err))
		Error(w, http.StatusInternalServerError, "internal error")
	}
}
