package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xraph/forge"

	"github.com/masatokaneko/shareguard/id"
	"github.com/masatokaneko/shareguard/permission"
)

func (a *API) registerPermissionRoutes(router forge.Router) error {
	g := router.Group("/v1/permissions", forge.WithGroupTags("permissions"))

	if err := g.PUT("/object", a.upsertObjectPermission,
		forge.WithSummary("Set object permission"),
		forge.WithDescription("Creates or replaces a holder's object permission row."),
		forge.WithOperationID("upsertObjectPermission"),
		forge.WithRequestSchema(UpsertObjectPermissionRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Object permission row", &permission.ObjectPermission{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/object", a.listObjectPermissions,
		forge.WithSummary("List object permissions"),
		forge.WithDescription("Lists a holder's object permission rows."),
		forge.WithOperationID("listObjectPermissions"),
		forge.WithRequestSchema(ListHolderPermissionsRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Object permission rows", []*permission.ObjectPermission{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.DELETE("/object/:permId", a.deleteObjectPermission,
		forge.WithSummary("Delete object permission"),
		forge.WithDescription("Removes an object permission row."),
		forge.WithOperationID("deleteObjectPermission"),
		forge.WithNoContentResponse(),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.PUT("/field", a.upsertFieldPermission,
		forge.WithSummary("Set field permission"),
		forge.WithDescription("Creates or replaces a holder's field permission row."),
		forge.WithOperationID("upsertFieldPermission"),
		forge.WithRequestSchema(UpsertFieldPermissionRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Field permission row", &permission.FieldPermission{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/field", a.listFieldPermissions,
		forge.WithSummary("List field permissions"),
		forge.WithDescription("Lists a holder's field permission rows on one object."),
		forge.WithOperationID("listFieldPermissions"),
		forge.WithRequestSchema(ListHolderPermissionsRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Field permission rows", []*permission.FieldPermission{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	return g.DELETE("/field/:permId", a.deleteFieldPermission,
		forge.WithSummary("Delete field permission"),
		forge.WithDescription("Removes a field permission row."),
		forge.WithOperationID("deleteFieldPermission"),
		forge.WithNoContentResponse(),
		forge.WithErrorResponses(),
	)
}

func (a *API) upsertObjectPermission(ctx forge.Context, req *UpsertObjectPermissionRequest) (*permission.ObjectPermission, error) {
	holder, err := parseHolder(req.HolderType, req.HolderID)
	if err != nil {
		return nil, forge.BadRequest(err.Error())
	}
	if req.ObjectName == "" {
		return nil, forge.BadRequest("object_name is required")
	}

	now := time.Now()
	p := &permission.ObjectPermission{
		TenantID:   resolveTenant(ctx, req.TenantID),
		HolderType: holder.Type,
		HolderID:   holder.ID,
		ObjectName: req.ObjectName,
		CanCreate:  req.CanCreate,
		CanRead:    req.CanRead,
		CanEdit:    req.CanEdit,
		CanDelete:  req.CanDelete,
		ViewAll:    req.ViewAll,
		ModifyAll:  req.ModifyAll,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := a.eng.Store().UpsertObjectPermission(requestContext(ctx, req.TenantID), p); err != nil {
		return nil, mapError(err)
	}

	return p, ctx.JSON(http.StatusOK, p)
}

func (a *API) listObjectPermissions(ctx forge.Context, req *ListHolderPermissionsRequest) ([]*permission.ObjectPermission, error) {
	holder, err := parseHolder(req.HolderType, req.HolderID)
	if err != nil {
		return nil, forge.BadRequest(err.Error())
	}

	perms, err := a.eng.Store().ListObjectPermissionsForHolder(requestContext(ctx, req.TenantID),
		resolveTenant(ctx, req.TenantID), holder)
	if err != nil {
		return nil, mapError(err)
	}

	return perms, ctx.JSON(http.StatusOK, perms)
}

func (a *API) deleteObjectPermission(ctx forge.Context, _ *DeletePermissionRequest) (*struct{}, error) {
	permID, err := id.ParseObjectPermID(ctx.Param("permId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid permission ID: %v", err))
	}

	if err := a.eng.Store().DeleteObjectPermission(ctx.Context(), permID); err != nil {
		return nil, mapError(err)
	}

	return nil, ctx.NoContent(http.StatusNoContent)
}

func (a *API) upsertFieldPermission(ctx forge.Context, req *UpsertFieldPermissionRequest) (*permission.FieldPermission, error) {
	holder, err := parseHolder(req.HolderType, req.HolderID)
	if err != nil {
		return nil, forge.BadRequest(err.Error())
	}
	if req.ObjectName == "" || req.FieldName == "" {
		return nil, forge.BadRequest("object_name and field_name are required")
	}

	now := time.Now()
	p := &permission.FieldPermission{
		TenantID:   resolveTenant(ctx, req.TenantID),
		HolderType: holder.Type,
		HolderID:   holder.ID,
		ObjectName: req.ObjectName,
		FieldName:  req.FieldName,
		Readable:   req.Readable,
		Editable:   req.Editable,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := a.eng.Store().UpsertFieldPermission(requestContext(ctx, req.TenantID), p); err != nil {
		return nil, mapError(err)
	}

	return p, ctx.JSON(http.StatusOK, p)
}

func (a *API) listFieldPermissions(ctx forge.Context, req *ListHolderPermissionsRequest) ([]*permission.FieldPermission, error) {
	holder, err := parseHolder(req.HolderType, req.HolderID)
	if err != nil {
		return nil, forge.BadRequest(err.Error())
	}
	if req.ObjectName == "" {
		return nil, forge.BadRequest("object_name is required")
	}

	perms, err := a.eng.Store().ListFieldPermissions(requestContext(ctx, req.TenantID),
		resolveTenant(ctx, req.TenantID), []permission.Holder{holder}, req.ObjectName)
	if err != nil {
		return nil, mapError(err)
	}

	return perms, ctx.JSON(http.StatusOK, perms)
}

func (a *API) deleteFieldPermission(ctx forge.Context, _ *DeletePermissionRequest) (*struct{}, error) {
	permID, err := id.ParseFieldPermID(ctx.Param("permId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid permission ID: %v", err))
	}

	if err := a.eng.Store().DeleteFieldPermission(ctx.Context(), permID); err != nil {
		return nil, mapError(err)
	}

	return nil, ctx.NoContent(http.StatusNoContent)
}
