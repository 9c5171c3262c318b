package api

import (
	"net/http"
	"time"

	"github.com/xraph/forge"

	"github.com/masatokaneko/shareguard/id"
	"github.com/masatokaneko/shareguard/object"
	"github.com/masatokaneko/shareguard/record"
)

func (a *API) registerObjectRoutes(router forge.Router) error {
	g := router.Group("/v1", forge.WithGroupTags("objects"))

	if err := g.POST("/objects", a.createObject,
		forge.WithSummary("Register object"),
		forge.WithDescription("Registers an object type for record-level sharing."),
		forge.WithOperationID("createObject"),
		forge.WithRequestSchema(CreateObjectRequest{}),
		forge.WithCreatedResponse(&object.Definition{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/objects/:objectName", a.getObject,
		forge.WithSummary("Get object definition"),
		forge.WithDescription("Returns the definition of one object type."),
		forge.WithOperationID("getObject"),
		forge.WithRequestSchema(GetObjectRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Object definition", &object.Definition{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.PUT("/objects/:objectName", a.updateObject,
		forge.WithSummary("Update object definition"),
		forge.WithDescription("Updates an object definition."),
		forge.WithOperationID("updateObject"),
		forge.WithRequestSchema(UpdateObjectRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Updated object definition", &object.Definition{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.DELETE("/objects/:objectName", a.deleteObject,
		forge.WithSummary("Delete object definition"),
		forge.WithDescription("Unregisters an object type. Its share rows are untouched."),
		forge.WithOperationID("deleteObject"),
		forge.WithRequestSchema(GetObjectRequest{}),
		forge.WithNoContentResponse(),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/objects", a.listObjects,
		forge.WithSummary("List object definitions"),
		forge.WithDescription("Lists registered object types with optional filters."),
		forge.WithOperationID("listObjects"),
		forge.WithRequestSchema(ListObjectsRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Object definitions", []*object.Definition{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.PUT("/objects/:objectName/records/:recordId", a.upsertRecord,
		forge.WithSummary("Project record"),
		forge.WithDescription("Creates or replaces the engine's projection of a host record."),
		forge.WithOperationID("upsertRecord"),
		forge.WithRequestSchema(UpsertRecordRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Record projection", &record.Record{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/objects/:objectName/records/:recordId", a.getRecord,
		forge.WithSummary("Get record projection"),
		forge.WithDescription("Returns the projection of one record."),
		forge.WithOperationID("getRecord"),
		forge.WithRequestSchema(RecordRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Record projection", &record.Record{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	return g.DELETE("/objects/:objectName/records/:recordId", a.deleteRecord,
		forge.WithSummary("Delete record projection"),
		forge.WithDescription("Removes the projection of one record. Its shares must be deleted separately."),
		forge.WithOperationID("deleteRecord"),
		forge.WithRequestSchema(RecordRequest{}),
		forge.WithNoContentResponse(),
		forge.WithErrorResponses(),
	)
}

func (a *API) createObject(ctx forge.Context, req *CreateObjectRequest) (*object.Definition, error) {
	if req.Name == "" {
		return nil, forge.BadRequest("name is required")
	}
	if (req.ParentObject == "") != (req.ParentField == "") {
		return nil, forge.BadRequest("parent_object and parent_field must be set together")
	}

	now := time.Now()
	d := &object.Definition{
		ID:           id.NewObjectDefID(),
		TenantID:     resolveTenant(ctx, req.TenantID),
		Name:         req.Name,
		Label:        req.Label,
		Description:  req.Description,
		Sharable:     true,
		ParentObject: req.ParentObject,
		ParentField:  req.ParentField,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.Sharable != nil {
		d.Sharable = *req.Sharable
	}

	if err := a.eng.Store().CreateDefinition(requestContext(ctx, req.TenantID), d); err != nil {
		return nil, mapError(err)
	}

	return d, ctx.JSON(http.StatusCreated, d)
}

func (a *API) getObject(ctx forge.Context, req *GetObjectRequest) (*object.Definition, error) {
	d, err := a.eng.Store().GetDefinitionByName(requestContext(ctx, req.TenantID),
		resolveTenant(ctx, req.TenantID), ctx.Param("objectName"))
	if err != nil {
		return nil, mapError(err)
	}

	return d, ctx.JSON(http.StatusOK, d)
}

func (a *API) updateObject(ctx forge.Context, req *UpdateObjectRequest) (*object.Definition, error) {
	c := ctx.Context()
	d, err := a.eng.Store().GetDefinitionByName(c, resolveTenant(ctx, ""), ctx.Param("objectName"))
	if err != nil {
		return nil, mapError(err)
	}

	if req.Label != "" {
		d.Label = req.Label
	}
	if req.Description != "" {
		d.Description = req.Description
	}
	if req.Sharable != nil {
		d.Sharable = *req.Sharable
	}
	if req.ParentObject != nil {
		d.ParentObject = *req.ParentObject
	}
	if req.ParentField != nil {
		d.ParentField = *req.ParentField
	}
	if (d.ParentObject == "") != (d.ParentField == "") {
		return nil, forge.BadRequest("parent_object and parent_field must be set together")
	}
	d.UpdatedAt = time.Now()

	if err := a.eng.Store().UpdateDefinition(c, d); err != nil {
		return nil, mapError(err)
	}

	return d, ctx.JSON(http.StatusOK, d)
}

func (a *API) deleteObject(ctx forge.Context, req *GetObjectRequest) (*struct{}, error) {
	c := requestContext(ctx, req.TenantID)
	d, err := a.eng.Store().GetDefinitionByName(c, resolveTenant(ctx, req.TenantID), ctx.Param("objectName"))
	if err != nil {
		return nil, mapError(err)
	}

	if err := a.eng.Store().DeleteDefinition(c, d.ID); err != nil {
		return nil, mapError(err)
	}

	return nil, ctx.NoContent(http.StatusNoContent)
}

func (a *API) listObjects(ctx forge.Context, req *ListObjectsRequest) ([]*object.Definition, error) {
	filter := &object.ListFilter{
		TenantID: resolveTenant(ctx, req.TenantID),
		Sharable: req.Sharable,
		Search:   req.Search,
		Limit:    defaultLimit(req.Limit),
		Offset:   req.Offset,
	}

	defs, err := a.eng.Store().ListDefinitions(requestContext(ctx, req.TenantID), filter)
	if err != nil {
		return nil, mapError(err)
	}

	return defs, ctx.JSON(http.StatusOK, defs)
}

func (a *API) upsertRecord(ctx forge.Context, req *UpsertRecordRequest) (*record.Record, error) {
	if req.OwnerID == "" {
		return nil, forge.BadRequest("owner_id is required")
	}

	now := time.Now()
	r := &record.Record{
		TenantID:   resolveTenant(ctx, req.TenantID),
		ObjectName: ctx.Param("objectName"),
		ID:         ctx.Param("recordId"),
		OwnerID:    req.OwnerID,
		ParentID:   req.ParentID,
		Fields:     req.Fields,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := a.eng.Store().UpsertRecord(requestContext(ctx, req.TenantID), r); err != nil {
		return nil, mapError(err)
	}

	return r, ctx.JSON(http.StatusOK, r)
}

func (a *API) getRecord(ctx forge.Context, req *RecordRequest) (*record.Record, error) {
	r, err := a.eng.Store().GetRecord(requestContext(ctx, req.TenantID),
		resolveTenant(ctx, req.TenantID), ctx.Param("objectName"), ctx.Param("recordId"))
	if err != nil {
		return nil, mapError(err)
	}

	return r, ctx.JSON(http.StatusOK, r)
}

func (a *API) deleteRecord(ctx forge.Context, req *RecordRequest) (*struct{}, error) {
	err := a.eng.Store().DeleteRecord(requestContext(ctx, req.TenantID),
		resolveTenant(ctx, req.TenantID), ctx.Param("objectName"), ctx.Param("recordId"))
	if err != nil {
		return nil, mapError(err)
	}

	return nil, ctx.NoContent(http.StatusNoContent)
}
