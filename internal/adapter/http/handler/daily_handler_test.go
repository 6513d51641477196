package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/odra/finbook/internal/adapter/http/handler"
	"github.com/odra/finbook/internal/domain"
	"github.com/odra/finbook/internal/usecase"
)

type fakeDailyService struct {
	statusCalls int
	statusFunc  func(ctx context.Context, ownerID string) (*usecase.DailyStatus, error)
	closeFunc   func(ctx context.Context, ownerID string, input usecase.CloseDayInput) error
}

func (f *fakeDailyService) Status(ctx context.Context, ownerID string) (*usecase.DailyStatus, error) {
	f.statusCalls++
	return f.statusFunc(ctx, ownerID)
}

func (f *fakeDailyService) CloseDay(ctx context.Context, ownerID string, input usecase.CloseDayInput) error {
	return f.closeFunc(ctx, ownerID, input)
}

func dailyRoutes(h *handler.DailyHandler) func(r chi.Router) {
	return func(r chi.Router) {
		r.Route("/daily", func(r chi.Router) {
			r.Get("/status", h.Status)
			r.Post("/close", h.Close)
		})
	}
}

func sampleStatus() *usecase.DailyStatus {
	return &usecase.DailyStatus{
		Date:                time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC),
		TotalLimit:          decimal.RequireFromString("3000"),
		RemainingDays:       20,
		RemainingAtDayStart: decimal.RequireFromString("2000"),
		BaseDailyBudget:     decimal.RequireFromString("100.00"),
		AvailableForToday:   decimal.RequireFromString("60.00"),
		Status:              usecase.StatusOnTrack,
	}
}

func TestDailyStatusComputesAndCaches(t *testing.T) {
	svc := &fakeDailyService{
		statusFunc: func(ctx context.Context, ownerID string) (*usecase.DailyStatus, error) {
			return sampleStatus(), nil
		},
	}
	cache := newFakeCache()
	h := handler.NewDailyHandler(svc, cache, 5*time.Minute, testMetrics, zerolog.Nop())

	req := ownedRequest(http.MethodGet, "/api/v1/daily/status", "")
	rec := serve(dailyRoutes(h), req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp usecase.DailyStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !resp.AvailableForToday.Equal(decimal.RequireFromString("60.00")) {
		t.Fatalf("available = %s, want 60.00", resp.AvailableForToday)
	}

	if _, ok := cache.values["daily:status:"+testOwner]; !ok {
		t.Fatal("expected status to be cached")
	}
}

func TestDailyStatusServedFromCache(t *testing.T) {
	svc := &fakeDailyService{
		statusFunc: func(ctx context.Context, ownerID string) (*usecase.DailyStatus, error) {
			return sampleStatus(), nil
		},
	}
	cache := newFakeCache()
	h := handler.NewDailyHandler(svc, cache, 5*time.Minute, testMetrics, zerolog.Nop())

	// First request populates the cache, second must not hit the service.
	serve(dailyRoutes(h), ownedRequest(http.MethodGet, "/api/v1/daily/status", ""))
	rec := serve(dailyRoutes(h), ownedRequest(http.MethodGet, "/api/v1/daily/status", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if svc.statusCalls != 1 {
		t.Fatalf("service called %d times, want 1", svc.statusCalls)
	}
}

func TestDailyCloseSave(t *testing.T) {
	var got usecase.CloseDayInput
	svc := &fakeDailyService{
		closeFunc: func(ctx context.Context, ownerID string, input usecase.CloseDayInput) error {
			got = input
			return nil
		},
	}
	cache := newFakeCache()
	cache.values["daily:status:"+testOwner] = "{}"
	h := handler.NewDailyHandler(svc, cache, 5*time.Minute, testMetrics, zerolog.Nop())

	req := ownedRequest(http.MethodPost, "/api/v1/daily/close",
		`{"action":"SAVE","amount":"60.00","goal_id":"goal-1","source_account_id":"acc-1","category_id":"cat-1"}`)
	rec := serve(dailyRoutes(h), req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusNoContent, rec.Body.String())
	}
	if got.Action != usecase.ActionSave || got.GoalID != "goal-1" {
		t.Fatalf("unexpected input: %+v", got)
	}
	if len(cache.deleted) != 1 {
		t.Fatalf("expected cache invalidation after close, got %v", cache.deleted)
	}
}

func TestDailyCloseRejectsUnknownAction(t *testing.T) {
	h := handler.NewDailyHandler(&fakeDailyService{}, nil, time.Minute, testMetrics, zerolog.Nop())

	req := ownedRequest(http.MethodPost, "/api/v1/daily/close", `{"action":"SPEND_IT_ALL"}`)
	rec := serve(dailyRoutes(h), req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestDailyCloseSaveValidationError(t *testing.T) {
	svc := &fakeDailyService{
		closeFunc: func(ctx context.Context, ownerID string, input usecase.CloseDayInput) error {
			return domain.ErrSavingsTargetsRequired
		},
	}
	h := handler.NewDailyHandler(svc, nil, time.Minute, testMetrics, zerolog.Nop())

	req := ownedRequest(http.MethodPost, "/api/v1/daily/close", `{"action":"SAVE","amount":"60.00"}`)
	rec := serve(dailyRoutes(h), req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
