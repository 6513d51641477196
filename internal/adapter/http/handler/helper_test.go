package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/odra/finbook/internal/adapter/http/middleware"
	"github.com/odra/finbook/internal/infrastructure/metrics"
)

// One registry per test binary; prometheus rejects duplicate registration.
var testMetrics = metrics.New()

const testOwner = "owner-1"

// serve routes the request through a chi router with the owner middleware so
// URL params and the owner context behave as in production.
func serve(routes func(r chi.Router), req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Owner)
		routes(r)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func ownedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	req.Header.Set(middleware.OwnerHeader, testOwner)
	return req
}

// fakeCache records cache traffic.
type fakeCache struct {
	values  map[string]string
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string)}
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	v, ok := c.values[key]
	if !ok {
		return "", fmt.Errorf("cache miss: %s", key)
	}
	return v, nil
}

func (c *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.values[key] = value
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	c.deleted = append(c.deleted, key)
	delete(c.values, key)
	return nil
}
