package shareguard

import (
	"context"

	"github.com/xraph/forge"
)

type contextKey int

const (
	ctxKeyAppID contextKey = iota
	ctxKeyTenantID
)

// WithTenant returns a context with the given app and tenant IDs.
// Use this for standalone mode (without Forge).
func WithTenant(ctx context.Context, appID, tenantID string) context.Context {
	ctx = context.WithValue(ctx, ctxKeyAppID, appID)
	ctx = context.WithValue(ctx, ctxKeyTenantID, tenantID)
	return ctx
}

// TenantFromContext returns the tenant id the engine would resolve for the
// context: the Forge scope's org when present, else the id set by
// WithTenant.
func TenantFromContext(ctx context.Context) string {
	return scopeFromContext(ctx).tenantID
}

type tenantScope struct {
	appID    string
	tenantID string
}

// scopeFromContext resolves the tenant scope the engine operates under: the
// forge scope when the request carries one, else the standalone ids set by
// WithTenant.
func scopeFromContext(ctx context.Context) tenantScope {
	s, ok := forge.ScopeFrom(ctx)
	if ok {
		return tenantScope{
			appID:    s.AppID(),
			tenantID: s.OrgID(),
		}
	}
	return tenantScope{
		appID:    appIDFromContext(ctx),
		tenantID: tenantIDFromContext(ctx),
	}
}

func appIDFromContext(ctx context.Context) string {
	v, ok := ctx.Value(ctxKeyAppID).(string)
	if !ok {
		return ""
	}
	return v
}

func tenantIDFromContext(ctx context.Context) string {
	v, ok := ctx.Value(ctxKeyTenantID).(string)
	if !ok {
		return ""
	}
	return v
}
