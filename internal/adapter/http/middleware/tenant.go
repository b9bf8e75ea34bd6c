package middleware

import (
	"context"
	"net/http"
	"strings"
)

// ContextKey is the type for context keys.
type ContextKey string

const (
	// TenantContextKey is the context key for the resolved tenant ID.
	TenantContextKey ContextKey = "tenant"
	// ActorContextKey is the context key for the acting staff member.
	ActorContextKey ContextKey = "actor"

	// TenantHeader carries the clinic's tenant ID on every API request.
	TenantHeader = "X-Tenant-ID"
	// ActorHeader optionally identifies the staff member performing the
	// request; it lands in the audit trail.
	ActorHeader = "X-Actor-ID"
)

// Tenant resolves the tenant from the X-Tenant-ID header and stores it in
// the request context. Requests without a tenant are rejected; every
// query below this point is tenant scoped.
func Tenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID := strings.TrimSpace(r.Header.Get(TenantHeader))
		if tenantID == "" {
			http.Error(w, "missing tenant header", http.StatusBadRequest)
			return
		}

		ctx := context.WithValue(r.Context(), TenantContextKey, tenantID)

		if actor := strings.TrimSpace(r.Header.Get(ActorHeader)); actor != "" {
			ctx = context.WithValue(ctx, ActorContextKey, actor)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TenantFromContext extracts the tenant ID from context.
func TenantFromContext(ctx context.Context) (string, bool) {
	tenantID, ok := ctx.Value(TenantContextKey).(string)
	return tenantID, ok
}

// ActorFromContext extracts the acting staff member from context.
func ActorFromContext(ctx context.Context) string {
	actor, _ := ctx.Value(ActorContextKey).(string)
	return actor
}
