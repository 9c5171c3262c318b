package api

import (
	"net/http"
	"time"

	"github.com/xraph/forge"

	"github.com/masatokaneko/shareguard/id"
	"github.com/masatokaneko/shareguard/owd"
)

func (a *API) registerOrgDefaultRoutes(router forge.Router) error {
	g := router.Group("/v1/org-defaults", forge.WithGroupTags("org-defaults"))

	if err := g.PUT("/:objectName", a.setOrgDefault,
		forge.WithSummary("Set org-wide default"),
		forge.WithDescription("Creates or replaces the baseline sharing level of one object. Existing shares are not recomputed."),
		forge.WithOperationID("setOrgDefault"),
		forge.WithRequestSchema(SetOrgDefaultRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Org-wide default", &owd.OrgDefault{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/:objectName", a.getOrgDefault,
		forge.WithSummary("Get org-wide default"),
		forge.WithDescription("Returns the baseline sharing level of one object, falling back to private."),
		forge.WithOperationID("getOrgDefault"),
		forge.WithRequestSchema(GetOrgDefaultRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Org-wide default", &owd.OrgDefault{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("", a.listOrgDefaults,
		forge.WithSummary("List org-wide defaults"),
		forge.WithDescription("Lists the stored org-wide defaults of a tenant."),
		forge.WithOperationID("listOrgDefaults"),
		forge.WithRequestSchema(ListOrgDefaultsRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Org-wide defaults", []*owd.OrgDefault{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	return g.DELETE("/:objectName", a.deleteOrgDefault,
		forge.WithSummary("Delete org-wide default"),
		forge.WithDescription("Removes the stored row; the object falls back to the implicit private default."),
		forge.WithOperationID("deleteOrgDefault"),
		forge.WithRequestSchema(GetOrgDefaultRequest{}),
		forge.WithNoContentResponse(),
		forge.WithErrorResponses(),
	)
}

func (a *API) setOrgDefault(ctx forge.Context, req *SetOrgDefaultRequest) (*owd.OrgDefault, error) {
	internal := owd.Level(req.InternalLevel)
	if !internal.Valid() {
		return nil, forge.BadRequest("internal_level must be private, public_read_only, public_read_write, or controlled_by_parent")
	}
	external := owd.Private
	if req.ExternalLevel != "" {
		external = owd.Level(req.ExternalLevel)
		if !external.Valid() {
			return nil, forge.BadRequest("invalid external_level: " + req.ExternalLevel)
		}
	}

	c := requestContext(ctx, req.TenantID)
	tenantID := resolveTenant(ctx, req.TenantID)
	objectName := ctx.Param("objectName")

	d, err := a.eng.Store().GetOrgDefault(c, tenantID, objectName)
	if err != nil {
		if !isNotFound(err) {
			return nil, mapError(err)
		}
		d = owd.DefaultFor(tenantID, objectName)
		d.ID = id.NewOrgDefaultID()
		d.CreatedAt = time.Now()
	}

	d.InternalLevel = internal
	d.ExternalLevel = external
	if req.GrantByHierarchy != nil {
		d.GrantByHierarchy = *req.GrantByHierarchy
	}
	d.UpdatedAt = time.Now()

	if err := a.eng.Store().UpsertOrgDefault(c, d); err != nil {
		return nil, mapError(err)
	}

	// The baseline changed without any share row moving; cached decisions
	// for the tenant are stale.
	a.eng.InvalidateTenant(c, tenantID)

	return d, ctx.JSON(http.StatusOK, d)
}

func (a *API) getOrgDefault(ctx forge.Context, req *GetOrgDefaultRequest) (*owd.OrgDefault, error) {
	d, err := a.eng.OrgDefault(requestContext(ctx, req.TenantID), ctx.Param("objectName"))
	if err != nil {
		return nil, mapError(err)
	}

	return d, ctx.JSON(http.StatusOK, d)
}

func (a *API) listOrgDefaults(ctx forge.Context, req *ListOrgDefaultsRequest) ([]*owd.OrgDefault, error) {
	defaults, err := a.eng.Store().ListOrgDefaults(requestContext(ctx, req.TenantID), resolveTenant(ctx, req.TenantID))
	if err != nil {
		return nil, mapError(err)
	}

	return defaults, ctx.JSON(http.StatusOK, defaults)
}

func (a *API) deleteOrgDefault(ctx forge.Context, req *GetOrgDefaultRequest) (*struct{}, error) {
	c := requestContext(ctx, req.TenantID)
	tenantID := resolveTenant(ctx, req.TenantID)
	err := a.eng.Store().DeleteOrgDefault(c, tenantID, ctx.Param("objectName"))
	if err != nil && !isNotFound(err) {
		return nil, mapError(err)
	}
	a.eng.InvalidateTenant(c, tenantID)

	return nil, ctx.NoContent(http.StatusNoContent)
}
