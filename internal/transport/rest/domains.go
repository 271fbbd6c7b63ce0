package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/newsroom-backend/internal/domain"
	"github.com/heartmarshall/newsroom-backend/internal/service/domains"
	"github.com/heartmarshall/newsroom-backend/internal/transport/respond"
)

type domainService interface {
	List(ctx context.Context) ([]*domain.Domain, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Domain, error)
	Create(ctx context.Context, input domains.CreateInput) (*domain.Domain, error)
	Update(ctx context.Context, input domains.UpdateInput) (*domain.Domain, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// DomainHandler serves domain endpoints.
type DomainHandler struct {
	svc domainService
	log *slog.Logger
}

// NewDomainHandler creates a DomainHandler.
func NewDomainHandler(svc domainService, logger *slog.Logger) *DomainHandler {
	return &DomainHandler{svc: svc, log: logger.With("handler", "domain")}
}

type domainRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

// List handles GET /api/domains.
func (h *DomainHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	out := make([]domainResponse, len(list))
	for i, d := range list {
		out[i] = toDomainResponse(d)
	}
	respond.JSON(w, http.StatusOK, out)
}

// Get handles GET /api/domains/{id}.
func (h *DomainHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	d, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDomainResponse(d))
}

// Create handles POST /api/domains.
func (h *DomainHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domainRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	var input domains.CreateInput
	if req.Name != nil {
		input.Name = *req.Name
	}
	if req.Color != nil {
		input.Color = *req.Color
	}

	d, err := h.svc.Create(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusCreated, toDomainResponse(d))
}

// Update handles PUT /api/domains/{id}.
func (h *DomainHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req domainRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	d, err := h.svc.Update(r.Context(), domains.UpdateInput{ID: id, Name: req.Name, Color: req.Color})
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDomainResponse(d))
}

// Delete handles DELETE /api/domains/{id}.
func (h *DomainHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
