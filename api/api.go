// Package api provides HTTP handlers for the Shareguard access engine.
package api

import (
	"net/http"

	"github.com/xraph/forge"

	"github.com/masatokaneko/shareguard"
)

// API wires all Shareguard HTTP handlers together.
type API struct {
	eng    *shareguard.Engine
	router forge.Router
}

// New creates an API from an Engine and a Forge router.
func New(eng *shareguard.Engine, router forge.Router) *API {
	return &API{eng: eng, router: router}
}

// Handler returns the fully assembled http.Handler with all routes.
func (a *API) Handler() http.Handler {
	if a.router == nil {
		a.router = forge.NewRouter()
	}
	if err := a.RegisterRoutes(a.router); err != nil {
		panic("shareguard: register routes: " + err.Error())
	}
	return a.router.Handler()
}

// RegisterRoutes registers all API routes into the given Forge router.
func (a *API) RegisterRoutes(router forge.Router) error {
	registerers := []func(forge.Router) error{
		a.registerAccessRoutes,
		a.registerShareRoutes,
		a.registerRuleRoutes,
		a.registerOrgDefaultRoutes,
		a.registerRoleRoutes,
		a.registerGroupRoutes,
		a.registerProfileRoutes,
		a.registerPermissionSetRoutes,
		a.registerPermissionRoutes,
		a.registerUserRoutes,
		a.registerObjectRoutes,
	}
	for _, fn := range registerers {
		if err := fn(router); err != nil {
			return err
		}
	}
	return nil
}
