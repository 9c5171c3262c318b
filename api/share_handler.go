package api

import (
	"net/http"

	"github.com/xraph/forge"

	"github.com/masatokaneko/shareguard/share"
)

func (a *API) registerShareRoutes(router forge.Router) error {
	g := router.Group("/v1", forge.WithGroupTags("shares"))

	if err := g.GET("/objects/:objectName/records/:recordId/shares", a.listRecordShares,
		forge.WithSummary("List record shares"),
		forge.WithDescription("Lists all live share rows on one record."),
		forge.WithOperationID("listRecordShares"),
		forge.WithRequestSchema(RecordRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Share rows", []*share.Share{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.POST("/objects/:objectName/records/:recordId/shares", a.createManualShare,
		forge.WithSummary("Create manual share"),
		forge.WithDescription("Grants a subject explicit access to one record."),
		forge.WithOperationID("createManualShare"),
		forge.WithRequestSchema(CreateManualShareRequest{}),
		forge.WithCreatedResponse(&share.Share{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.DELETE("/objects/:objectName/records/:recordId/shares/manual", a.deleteManualShare,
		forge.WithSummary("Delete manual share"),
		forge.WithDescription("Removes a subject's manual share on one record."),
		forge.WithOperationID("deleteManualShare"),
		forge.WithRequestSchema(DeleteManualShareRequest{}),
		forge.WithNoContentResponse(),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.POST("/objects/:objectName/records/:recordId/shares/calculate", a.calculateShares,
		forge.WithSummary("Materialize shares for a new record"),
		forge.WithDescription("Creates the owner share and applies active sharing rules to a newly created record."),
		forge.WithOperationID("calculateRecordShares"),
		forge.WithRequestSchema(CalculateSharesRequest{}),
		forge.WithNoContentResponse(),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.POST("/objects/:objectName/records/:recordId/shares/recalculate", a.recalculateRecordShares,
		forge.WithSummary("Recalculate record shares"),
		forge.WithDescription("Soft-deletes derived shares on one record and recomputes them; manual shares survive."),
		forge.WithOperationID("recalculateRecordShares"),
		forge.WithRequestSchema(RecordRequest{}),
		forge.WithNoContentResponse(),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.POST("/objects/:objectName/records/:recordId/owner", a.changeOwner,
		forge.WithSummary("Change record owner"),
		forge.WithDescription("Moves the owner share and hierarchy shares to a new owner."),
		forge.WithOperationID("changeRecordOwner"),
		forge.WithRequestSchema(ChangeOwnerRequest{}),
		forge.WithNoContentResponse(),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.DELETE("/objects/:objectName/records/:recordId/shares", a.deleteRecordShares,
		forge.WithSummary("Delete record shares"),
		forge.WithDescription("Soft-deletes every share row on one record, manual shares included."),
		forge.WithOperationID("deleteRecordShares"),
		forge.WithRequestSchema(RecordRequest{}),
		forge.WithNoContentResponse(),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	return g.GET("/shares", a.listShares,
		forge.WithSummary("List shares"),
		forge.WithDescription("Lists share rows with optional filters."),
		forge.WithOperationID("listShares"),
		forge.WithRequestSchema(ListSharesRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Share list", ListResponse[*share.Share]{}),
		forge.WithErrorResponses(),
	)
}

func (a *API) listRecordShares(ctx forge.Context, req *RecordRequest) ([]*share.Share, error) {
	shares, err := a.eng.RecordShares(requestContext(ctx, req.TenantID), ctx.Param("objectName"), ctx.Param("recordId"))
	if err != nil {
		return nil, mapError(err)
	}

	return shares, ctx.JSON(http.StatusOK, shares)
}

func (a *API) createManualShare(ctx forge.Context, req *CreateManualShareRequest) (*share.Share, error) {
	subject, err := parseSubject(req.SubjectType, req.SubjectID)
	if err != nil {
		return nil, mapError(err)
	}

	level := share.AccessLevel(req.AccessLevel)
	s, err := a.eng.CreateManualShare(requestContext(ctx, req.TenantID),
		ctx.Param("objectName"), ctx.Param("recordId"), subject, level)
	if err != nil {
		return nil, mapError(err)
	}

	return s, ctx.JSON(http.StatusCreated, s)
}

func (a *API) deleteManualShare(ctx forge.Context, req *DeleteManualShareRequest) (*struct{}, error) {
	subject, err := parseSubject(req.SubjectType, req.SubjectID)
	if err != nil {
		return nil, mapError(err)
	}

	if err := a.eng.DeleteManualShare(requestContext(ctx, req.TenantID),
		ctx.Param("objectName"), ctx.Param("recordId"), subject); err != nil {
		return nil, mapError(err)
	}

	return nil, ctx.NoContent(http.StatusNoContent)
}

func (a *API) calculateShares(ctx forge.Context, req *CalculateSharesRequest) (*struct{}, error) {
	if req.OwnerID == "" {
		return nil, forge.BadRequest("owner_id is required")
	}

	if err := a.eng.CalculateNewRecordShares(requestContext(ctx, req.TenantID),
		ctx.Param("objectName"), ctx.Param("recordId"), req.OwnerID); err != nil {
		return nil, mapError(err)
	}

	return nil, ctx.NoContent(http.StatusNoContent)
}

func (a *API) recalculateRecordShares(ctx forge.Context, req *RecordRequest) (*struct{}, error) {
	if err := a.eng.RecalculateRecordShares(requestContext(ctx, req.TenantID),
		ctx.Param("objectName"), ctx.Param("recordId")); err != nil {
		return nil, mapError(err)
	}

	return nil, ctx.NoContent(http.StatusNoContent)
}

func (a *API) changeOwner(ctx forge.Context, req *ChangeOwnerRequest) (*struct{}, error) {
	if req.NewOwnerID == "" {
		return nil, forge.BadRequest("new_owner_id is required")
	}

	if err := a.eng.UpdateOwnerShare(requestContext(ctx, req.TenantID),
		ctx.Param("objectName"), ctx.Param("recordId"), req.OldOwnerID, req.NewOwnerID); err != nil {
		return nil, mapError(err)
	}

	return nil, ctx.NoContent(http.StatusNoContent)
}

func (a *API) deleteRecordShares(ctx forge.Context, req *RecordRequest) (*struct{}, error) {
	if err := a.eng.DeleteRecordShares(requestContext(ctx, req.TenantID),
		ctx.Param("objectName"), ctx.Param("recordId")); err != nil {
		return nil, mapError(err)
	}

	return nil, ctx.NoContent(http.StatusNoContent)
}

func (a *API) listShares(ctx forge.Context, req *ListSharesRequest) (*ListResponse[*share.Share], error) {
	c := requestContext(ctx, req.TenantID)
	filter := &share.ListFilter{
		TenantID:       resolveTenant(ctx, req.TenantID),
		ObjectName:     req.ObjectName,
		RecordID:       req.RecordID,
		SubjectType:    share.SubjectType(req.SubjectType),
		SubjectID:      req.SubjectID,
		RowCause:       share.RowCause(req.RowCause),
		IncludeDeleted: req.IncludeDeleted,
		Limit:          defaultLimit(req.Limit),
		Offset:         req.Offset,
	}

	shares, err := a.eng.Store().ListShares(c, filter)
	if err != nil {
		return nil, mapError(err)
	}

	total, err := a.eng.Store().CountShares(c, filter)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &ListResponse[*share.Share]{Items: shares, Total: total, Limit: filter.Limit, Offset: filter.Offset}
	return resp, ctx.JSON(http.StatusOK, resp)
}
