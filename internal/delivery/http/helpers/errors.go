package helpers

import (
	"errors"
	"log/slog"
	"net/http"

	"prodroster/internal/domain"
)

// WriteServiceError maps a service error to its HTTP status. Validation failures
// carry their reason verbatim; upstream and unknown failures are logged and
// reported without internals.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status, code := statusFor(err)
	msg := err.Error()
	var re *domain.ReasonError
	if errors.As(err, &re) {
		msg = re.Reason
	}
	switch code {
	case ErrCodeUpstream:
		logger.ErrorContext(r.Context(), "upstream failure", "path", r.URL.Path, "method", r.Method, "err", err)
		msg = "a backing service failed, please retry"
	case ErrCodeInternalError:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		msg = "internal error"
	}
	WriteJSONError(w, status, code, msg)
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, ErrCodeUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, ErrCodeForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrCodeNotFound
	case errors.Is(err, domain.ErrInvalidState):
		return http.StatusConflict, ErrCodeInvalidState
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, ErrCodeConflict
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrCodeBadRequest
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway, ErrCodeUpstream
	}
	return http.StatusInternalServerError, ErrCodeInternalError
}
