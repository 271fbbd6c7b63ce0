package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/newsroom-backend/internal/auth"
	"github.com/heartmarshall/newsroom-backend/internal/domain"
	authsvc "github.com/heartmarshall/newsroom-backend/internal/service/auth"
	"github.com/heartmarshall/newsroom-backend/internal/transport/respond"
)

// writeServiceError maps a service error onto the HTTP error envelope.
// Unexpected errors are logged and reported without detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var (
		ve *domain.ValidationError
		de *domain.DenialError
		rl *domain.RateLimitError
	)

	switch {
	case errors.As(err, &ve):
		respond.Validation(w, ve)
	case errors.As(err, &de):
		if de.Reason == domain.ReasonNotAuthenticated {
			respond.Error(w, http.StatusUnauthorized, de.Reason.String(), "authentication required")
			return
		}
		respond.Error(w, http.StatusForbidden, de.Reason.String(), "access denied")
	case errors.As(err, &rl):
		respond.RateLimited(w, rl.RetryAfterSeconds)
	case errors.Is(err, authsvc.ErrInvalidCredentials):
		respond.Error(w, http.StatusUnauthorized, respond.CodeInvalidLogin, "invalid email or password")
	case errors.Is(err, domain.ErrTokenExpired):
		respond.Error(w, http.StatusUnauthorized, respond.CodeTokenExpired, "token expired")
	case errors.Is(err, auth.ErrTokenInvalid):
		respond.Error(w, http.StatusUnauthorized, respond.CodeTokenInvalid, "token invalid")
	case errors.Is(err, domain.ErrUnauthorized):
		respond.Error(w, http.StatusUnauthorized, respond.CodeNotAuthenticated, "authentication required")
	case errors.Is(err, domain.ErrForbidden):
		respond.Error(w, http.StatusForbidden, string(domain.ReasonForbidden), "access denied")
	case errors.Is(err, domain.ErrNotFound):
		respond.Error(w, http.StatusNotFound, respond.CodeNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrConflict):
		respond.Error(w, http.StatusConflict, respond.CodeConflict, conflictMessage(err))
	case errors.Is(err, domain.ErrValidation):
		respond.Error(w, http.StatusBadRequest, respond.CodeValidation, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		log.WarnContext(r.Context(), "request timed out", slog.String("error", err.Error()))
		respond.Error(w, http.StatusServiceUnavailable, respond.CodeUnavailable, "request timed out")
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		respond.Error(w, http.StatusInternalServerError, respond.CodeInternal, "internal server error")
	}
}

func conflictMessage(err error) string {
	if errors.Is(err, domain.ErrAlreadyExists) {
		return "already exists"
	}
	return "conflict"
}
