package middleware

import (
	"context"
	"net/http"
)

// OwnerHeader carries the identity of the acting user. Authentication happens
// upstream; by the time a request reaches this service the gateway has
// resolved the user and stamped this header.
const OwnerHeader = "X-Owner-ID"

type ctxKey int

const ownerIDKey ctxKey = iota

// Owner extracts the owner ID header and stores it in the request context.
// Requests without it are rejected.
func Owner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ownerID := r.Header.Get(OwnerHeader)
		if ownerID == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"missing ` + OwnerHeader + ` header"}`))
			return
		}

		ctx := context.WithValue(r.Context(), ownerIDKey, ownerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OwnerIDFromContext returns the owner ID stored by Owner.
func OwnerIDFromContext(ctx context.Context) string {
	ownerID, _ := ctx.Value(ownerIDKey).(string)
	return ownerID
}
