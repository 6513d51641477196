package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odra/finbook/internal/adapter/http/dto"
	"github.com/odra/finbook/internal/adapter/http/middleware"
	"github.com/odra/finbook/internal/domain"
	"github.com/odra/finbook/internal/usecase"
)

// RecurringService defines the recurring-template operations the handler
// depends on.
type RecurringService interface {
	CreateTemplate(ctx context.Context, input usecase.CreateTemplateInput) (*domain.RecurringTemplate, error)
	GetTemplate(ctx context.Context, id, ownerID string) (*domain.RecurringTemplate, error)
	ListTemplates(ctx context.Context, ownerID string) ([]*domain.RecurringTemplate, error)
	UpdateTemplate(ctx context.Context, id, ownerID string, input usecase.UpdateTemplateInput) (*domain.RecurringTemplate, error)
	DeleteTemplate(ctx context.Context, id, ownerID string) error
}

// RecurringHandler handles recurring template endpoints.
type RecurringHandler struct {
	service RecurringService
}

// NewRecurringHandler creates a new RecurringHandler.
func NewRecurringHandler(service RecurringService) *RecurringHandler {
	return &RecurringHandler{service: service}
}

// Create handles POST /api/v1/recurring.
func (h *RecurringHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTemplateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ownerID := middleware.OwnerIDFromContext(r.Context())

	tpl, err := h.service.CreateTemplate(r.Context(), req.ToUseCaseInput(ownerID))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TemplateFromDomain(tpl))
}

// List handles GET /api/v1/recurring.
func (h *RecurringHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.OwnerIDFromContext(r.Context())

	tpls, err := h.service.ListTemplates(r.Context(), ownerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TemplatesFromDomain(tpls))
}

// Get handles GET /api/v1/recurring/{id}.
func (h *RecurringHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.OwnerIDFromContext(r.Context())

	tpl, err := h.service.GetTemplate(r.Context(), chi.URLParam(r, "id"), ownerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TemplateFromDomain(tpl))
}

// Update handles PUT /api/v1/recurring/{id}.
func (h *RecurringHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateTemplateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ownerID := middleware.OwnerIDFromContext(r.Context())

	tpl, err := h.service.UpdateTemplate(r.Context(), chi.URLParam(r, "id"), ownerID, req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TemplateFromDomain(tpl))
}

// Delete handles DELETE /api/v1/recurring/{id}.
func (h *RecurringHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.OwnerIDFromContext(r.Context())

	if err := h.service.DeleteTemplate(r.Context(), chi.URLParam(r, "id"), ownerID); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
