package api

import (
	"net/http"

	"github.com/xraph/forge"

	"github.com/masatokaneko/shareguard"
	"github.com/masatokaneko/shareguard/share"
)

func (a *API) registerAccessRoutes(router forge.Router) error {
	g := router.Group("/v1/access", forge.WithGroupTags("access"))

	if err := g.POST("/check", a.checkAccess,
		forge.WithSummary("Check record access"),
		forge.WithDescription("Evaluates a user's effective access level on one record."),
		forge.WithOperationID("checkAccess"),
		forge.WithRequestSchema(CheckAccessRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Access result", shareguard.AccessResult{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.POST("/can", a.canPerformAction,
		forge.WithSummary("Check action"),
		forge.WithDescription("Reports whether a user may perform an action on an object or record."),
		forge.WithOperationID("canPerformAction"),
		forge.WithRequestSchema(CanActionRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Action result", CanActionResponse{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.POST("/filter", a.filterRecords,
		forge.WithSummary("Filter accessible records"),
		forge.WithDescription("Filters a batch of record ids down to those the user can access at the required level."),
		forge.WithOperationID("filterAccessibleRecords"),
		forge.WithRequestSchema(FilterRecordsRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Accessible records", FilterRecordsResponse{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/objects/:objectName/permissions", a.objectPermissions,
		forge.WithSummary("Effective object permissions"),
		forge.WithDescription("Returns a user's effective object-level permissions on one object."),
		forge.WithOperationID("getObjectPermissions"),
		forge.WithRequestSchema(ObjectAccessRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Effective permissions", shareguard.ObjectPermissions{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/objects/:objectName/fields", a.fieldPermissions,
		forge.WithSummary("Effective field permissions"),
		forge.WithDescription("Returns a user's effective field-level permissions on one object."),
		forge.WithOperationID("getFieldPermissions"),
		forge.WithRequestSchema(ObjectAccessRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Effective field permissions", FieldPermissionsResponse{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	return g.POST("/fields/apply", a.applyFieldSecurity,
		forge.WithSummary("Apply field security"),
		forge.WithDescription("Nulls out fields the user cannot read or edit."),
		forge.WithOperationID("applyFieldSecurity"),
		forge.WithRequestSchema(ApplyFieldSecurityRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Filtered fields", ApplyFieldSecurityResponse{}),
		forge.WithErrorResponses(),
	)
}

func (a *API) checkAccess(ctx forge.Context, req *CheckAccessRequest) (*shareguard.AccessResult, error) {
	if req.UserID == "" || req.ObjectName == "" || req.RecordID == "" {
		return nil, forge.BadRequest("user_id, object_name, and record_id are required")
	}

	result, err := a.eng.RecordAccess(requestContext(ctx, req.TenantID), req.UserID, req.ObjectName, req.RecordID)
	if err != nil {
		return nil, mapError(err)
	}

	return result, ctx.JSON(http.StatusOK, result)
}

func (a *API) canPerformAction(ctx forge.Context, req *CanActionRequest) (*CanActionResponse, error) {
	if req.UserID == "" || req.ObjectName == "" || req.Action == "" {
		return nil, forge.BadRequest("user_id, object_name, and action are required")
	}

	switch shareguard.Action(req.Action) {
	case shareguard.ActionCreate, shareguard.ActionRead, shareguard.ActionEdit, shareguard.ActionDelete:
	default:
		return nil, forge.BadRequest("unknown action: " + req.Action)
	}

	allowed, err := a.eng.CanPerformAction(requestContext(ctx, req.TenantID),
		req.UserID, req.ObjectName, req.RecordID, shareguard.Action(req.Action))
	if err != nil {
		return nil, mapError(err)
	}

	resp := &CanActionResponse{Allowed: allowed}
	return resp, ctx.JSON(http.StatusOK, resp)
}

func (a *API) filterRecords(ctx forge.Context, req *FilterRecordsRequest) (*FilterRecordsResponse, error) {
	if req.UserID == "" || req.ObjectName == "" {
		return nil, forge.BadRequest("user_id and object_name are required")
	}

	required := share.AccessLevel(req.RequiredLevel)
	if required == "" {
		required = share.AccessRead
	}
	if !required.Valid() || required == share.AccessNone {
		return nil, forge.BadRequest("required_level must be read or read_write")
	}

	ids, err := a.eng.FilterAccessibleRecords(requestContext(ctx, req.TenantID),
		req.UserID, req.ObjectName, req.RecordIDs, required)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &FilterRecordsResponse{RecordIDs: ids}
	return resp, ctx.JSON(http.StatusOK, resp)
}

func (a *API) objectPermissions(ctx forge.Context, req *ObjectAccessRequest) (*shareguard.ObjectPermissions, error) {
	if req.UserID == "" {
		return nil, forge.BadRequest("user_id is required")
	}

	perms, err := a.eng.ObjectPermissions(requestContext(ctx, req.TenantID), req.UserID, ctx.Param("objectName"))
	if err != nil {
		return nil, mapError(err)
	}

	return perms, ctx.JSON(http.StatusOK, perms)
}

func (a *API) fieldPermissions(ctx forge.Context, req *ObjectAccessRequest) (*FieldPermissionsResponse, error) {
	if req.UserID == "" {
		return nil, forge.BadRequest("user_id is required")
	}

	fields, err := a.eng.FieldPermissions(requestContext(ctx, req.TenantID), req.UserID, ctx.Param("objectName"))
	if err != nil {
		return nil, mapError(err)
	}

	resp := &FieldPermissionsResponse{Fields: fields}
	return resp, ctx.JSON(http.StatusOK, resp)
}

func (a *API) applyFieldSecurity(ctx forge.Context, req *ApplyFieldSecurityRequest) (*ApplyFieldSecurityResponse, error) {
	if req.UserID == "" || req.ObjectName == "" {
		return nil, forge.BadRequest("user_id and object_name are required")
	}

	mode := shareguard.FieldSecurityMode(req.Mode)
	if mode == "" {
		mode = shareguard.FieldSecurityRead
	}
	if mode != shareguard.FieldSecurityRead && mode != shareguard.FieldSecurityEdit {
		return nil, forge.BadRequest("mode must be read or edit")
	}

	filtered, err := a.eng.ApplyFieldSecurity(requestContext(ctx, req.TenantID),
		req.UserID, req.ObjectName, req.Fields, mode)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &ApplyFieldSecurityResponse{Fields: filtered}
	return resp, ctx.JSON(http.StatusOK, resp)
}
