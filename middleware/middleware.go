// Package middleware provides HTTP authorization middleware for Shareguard.
package middleware

import (
	"encoding/json"

	"github.com/xraph/forge"

	"github.com/masatokaneko/shareguard"
	"github.com/masatokaneko/shareguard/share"
)

// RequireAction enforces an object-level action. It resolves the user from
// the request context (Authsome user > anonymous), takes the record id
// from the route's "id" parameter, and denies with 403 unless the user can
// perform the action.
func RequireAction(eng *shareguard.Engine, action shareguard.Action, objectName string) forge.Middleware {
	return func(next forge.Handler) forge.Handler {
		return func(ctx forge.Context) error {
			userID := resolveUser(ctx)
			if userID == "" {
				return denyResponse(ctx)
			}
			recordID := ctx.Param("id")

			allowed, err := eng.CanPerformAction(ctx.Context(), userID, objectName, recordID, action)
			if err != nil || !allowed {
				return denyResponse(ctx)
			}
			return next(ctx)
		}
	}
}

// RequireAccess enforces a record access level. The record id comes from
// the route's "id" parameter; requests without one are denied.
func RequireAccess(eng *shareguard.Engine, objectName string, required share.AccessLevel) forge.Middleware {
	return func(next forge.Handler) forge.Handler {
		return func(ctx forge.Context) error {
			userID := resolveUser(ctx)
			recordID := ctx.Param("id")
			if userID == "" || recordID == "" {
				return denyResponse(ctx)
			}

			result, err := eng.RecordAccess(ctx.Context(), userID, objectName, recordID)
			if err != nil || !result.Level.Covers(required) {
				return denyResponse(ctx)
			}
			return next(ctx)
		}
	}
}

// resolveUser extracts the acting user from context.
// Priority: Forge user ID (from Authsome) → anonymous.
func resolveUser(ctx forge.Context) string {
	return forge.UserIDFromContext(ctx.Context())
}

func denyResponse(ctx forge.Context) error {
	ctx.SetHeader("Content-Type", "application/json")
	ctx.Response().WriteHeader(403)
	return json.NewEncoder(ctx.Response()).Encode(map[string]string{"error": "access denied"})
}
