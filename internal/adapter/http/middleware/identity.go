package middleware

import (
	"context"
	"encoding/json"
	"net/http"
)

// ContextKey is the type for context keys.
type ContextKey string

// UserIDContextKey is the context key for the caller identity.
const UserIDContextKey ContextKey = "user_id"

// UserIDHeader carries the opaque caller identity. It is supplied
// out-of-band and trusted as-is; this service does no authentication beyond
// requiring its presence.
const UserIDHeader = "X-User-Id"

// Identity extracts the caller identity header and stores it in the request
// context. Requests without it are rejected.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(UserIDHeader)
		if userID == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"message": "missing " + UserIDHeader + " header",
			})

			return
		}

		ctx := context.WithValue(r.Context(), UserIDContextKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext returns the caller identity stored by Identity.
func UserIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDContextKey).(string)
	return userID
}
