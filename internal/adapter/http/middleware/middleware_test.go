package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOwnerRejectsMissingHeader(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without an owner")
	})

	rec := httptest.NewRecorder()
	Owner(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestOwnerStoresIDInContext(t *testing.T) {
	var got string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = OwnerIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	req.Header.Set(OwnerHeader, "owner-42")

	Owner(next).ServeHTTP(httptest.NewRecorder(), req)

	if got != "owner-42" {
		t.Fatalf("owner = %q, want owner-42", got)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/v1/accounts/01HXYZ", "/api/v1/accounts/:id"},
		{"/api/v1/debts/debt-1/payments", "/api/v1/debts/:id/payments"},
		{"/api/v1/accounts", "/api/v1/accounts"},
		{"/api/v1/daily/status", "/api/v1/daily/status"},
		{"/health", "/health"},
	}

	for _, tt := range tests {
		if got := normalizePath(tt.path); got != tt.want {
			t.Errorf("normalizePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestRecoveryTurnsPanicInto500(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	Recovery(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}
