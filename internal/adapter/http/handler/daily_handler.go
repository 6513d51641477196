package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/odra/finbook/internal/adapter/http/dto"
	"github.com/odra/finbook/internal/adapter/http/middleware"
	"github.com/odra/finbook/internal/infrastructure/metrics"
	"github.com/odra/finbook/internal/usecase"
)

func dailyCacheKey(ownerID string) string {
	return "daily:status:" + ownerID
}

// DailyService defines the daily budget operations the handler depends on.
type DailyService interface {
	Status(ctx context.Context, ownerID string) (*usecase.DailyStatus, error)
	CloseDay(ctx context.Context, ownerID string, input usecase.CloseDayInput) error
}

// DailyHandler handles the daily budget endpoints. The computed status is
// cached per owner for a short TTL; mutations that change the underlying
// spend drop the entry.
type DailyHandler struct {
	service DailyService
	cache   usecase.Cache
	ttl     time.Duration
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewDailyHandler creates a new DailyHandler.
func NewDailyHandler(service DailyService, cache usecase.Cache, ttl time.Duration, m *metrics.Metrics, logger zerolog.Logger) *DailyHandler {
	return &DailyHandler{service: service, cache: cache, ttl: ttl, metrics: m, logger: logger}
}

// Status handles GET /api/v1/daily/status.
func (h *DailyHandler) Status(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.OwnerIDFromContext(r.Context())

	h.metrics.DailyStatusRequests.Inc()

	if h.cache != nil {
		if cached, err := h.cache.Get(r.Context(), dailyCacheKey(ownerID)); err == nil {
			h.metrics.DailyCacheHits.Inc()
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(cached))
			return
		}
	}

	status, err := h.service.Status(r.Context(), ownerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if h.cache != nil {
		if payload, err := json.Marshal(status); err == nil {
			if err := h.cache.Set(r.Context(), dailyCacheKey(ownerID), string(payload), h.ttl); err != nil {
				h.logger.Warn().Err(err).Msg("failed to cache daily status")
			}
		}
	}

	writeJSON(w, http.StatusOK, status)
}

// Close handles POST /api/v1/daily/close.
func (h *DailyHandler) Close(w http.ResponseWriter, r *http.Request) {
	var req dto.CloseDayRequest
	if !decodeBody(w, r, &req) {
		return
	}

	input := req.ToUseCaseInput()
	if input.Action != usecase.ActionSave && input.Action != usecase.ActionRollover {
		writeError(w, http.StatusBadRequest, "validation_error", "action must be SAVE or ROLLOVER")
		return
	}

	ownerID := middleware.OwnerIDFromContext(r.Context())

	if err := h.service.CloseDay(r.Context(), ownerID, input); err != nil {
		writeDomainError(w, err)
		return
	}

	h.metrics.DailyCloseouts.WithLabelValues(string(input.Action)).Inc()

	if h.cache != nil {
		h.cache.Delete(r.Context(), dailyCacheKey(ownerID))
	}

	w.WriteHeader(http.StatusNoContent)
}
