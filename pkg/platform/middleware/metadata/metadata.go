// Package metadata extracts request-scoped identity from headers: a request
// correlation ID, the tenant scope, and the acting operator. Tenant and actor
// identity are established by an upstream gateway (API-key authentication is
// out of scope here); this middleware only validates and propagates them.
package metadata

import (
	"net/http"

	"github.com/google/uuid"

	id "complytrack/pkg/domain"
	dErrors "complytrack/pkg/domain-errors"
	"complytrack/pkg/platform/httputil"
	"complytrack/pkg/requestcontext"
)

// Header names recognized by the middleware.
const (
	HeaderRequestID = "X-Request-ID"
	HeaderTenantID  = "X-Tenant-ID"
	HeaderActorID   = "X-Actor-ID"
)

// RequestID ensures every request carries a correlation ID, minting one when
// the client did not supply it.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set(HeaderRequestID, requestID)
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TenantScope requires a valid X-Tenant-ID header and propagates the parsed
// tenant into the context. Requests without a tenant scope are rejected
// before reaching any handler. The optional X-Actor-ID header is propagated
// when present and valid; attribution falls back to "system" downstream.
func TenantScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := id.ParseTenantID(r.Header.Get(HeaderTenantID))
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "missing or invalid tenant id"))
			return
		}
		ctx := requestcontext.WithTenantID(r.Context(), tenantID)

		if raw := r.Header.Get(HeaderActorID); raw != "" {
			if actorID, err := id.ParseUserID(raw); err == nil {
				ctx = requestcontext.WithActorID(ctx, actorID)
			}
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
