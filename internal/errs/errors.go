package errs

import (
	"errors"
	"net/http"
)

// Sentinel errors for the failure classes the API distinguishes. Store and
// handler code wraps these with fmt.Errorf("...: %w", err) so callers can
// classify with errors.Is while keeping the original detail.
var (
	ErrAuthRequired = errors.New("authentication required")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrTransport    = errors.New("realtime delivery failed")
	ErrPersistence  = errors.New("persistence failure")
)

// HTTPStatus maps an error to its stable status classification. Unknown
// errors are treated as persistence/server failures.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrAuthRequired):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
