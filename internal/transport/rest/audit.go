package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/newsroom-backend/internal/service/audit"
	"github.com/heartmarshall/newsroom-backend/internal/transport/respond"
)

type auditService interface {
	ListRecent(ctx context.Context, limit int) ([]audit.Entry, error)
}

// AuditHandler serves the audit log.
type AuditHandler struct {
	svc auditService
	log *slog.Logger
}

// NewAuditHandler creates an AuditHandler.
func NewAuditHandler(svc auditService, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{svc: svc, log: logger.With("handler", "audit")}
}

// List handles GET /api/audit?limit=.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.ListRecent(r.Context(), queryInt(r, "limit", 0))
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	out := make([]auditResponse, len(entries))
	for i, e := range entries {
		out[i] = toAuditResponse(e)
	}
	respond.JSON(w, http.StatusOK, out)
}
