package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xraph/forge"

	"github.com/masatokaneko/shareguard/id"
	"github.com/masatokaneko/shareguard/permset"
)

func (a *API) registerPermissionSetRoutes(router forge.Router) error {
	g := router.Group("/v1", forge.WithGroupTags("permission-sets"))

	if err := g.POST("/permission-sets", a.createPermissionSet,
		forge.WithSummary("Create permission set"),
		forge.WithDescription("Creates an additive permission container."),
		forge.WithOperationID("createPermissionSet"),
		forge.WithRequestSchema(CreatePermissionSetRequest{}),
		forge.WithCreatedResponse(&permset.PermissionSet{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/permission-sets/:setId", a.getPermissionSet,
		forge.WithSummary("Get permission set"),
		forge.WithDescription("Returns details of a specific permission set."),
		forge.WithOperationID("getPermissionSet"),
		forge.WithResponseSchema(http.StatusOK, "Permission set details", &permset.PermissionSet{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.PUT("/permission-sets/:setId", a.updatePermissionSet,
		forge.WithSummary("Update permission set"),
		forge.WithDescription("Updates an existing permission set. Deactivating it removes it from permission resolution without touching assignments."),
		forge.WithOperationID("updatePermissionSet"),
		forge.WithRequestSchema(UpdatePermissionSetRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Updated permission set", &permset.PermissionSet{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.DELETE("/permission-sets/:setId", a.deletePermissionSet,
		forge.WithSummary("Delete permission set"),
		forge.WithDescription("Deletes a permission set and its assignments."),
		forge.WithOperationID("deletePermissionSet"),
		forge.WithNoContentResponse(),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/permission-sets", a.listPermissionSets,
		forge.WithSummary("List permission sets"),
		forge.WithDescription("Lists permission sets with optional filters."),
		forge.WithOperationID("listPermissionSets"),
		forge.WithRequestSchema(ListPermissionSetsRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Permission set list", ListResponse[*permset.PermissionSet]{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.POST("/permission-sets/:setId/assignments", a.createAssignment,
		forge.WithSummary("Assign permission set"),
		forge.WithDescription("Assigns a permission set to a user."),
		forge.WithOperationID("createAssignment"),
		forge.WithRequestSchema(CreateAssignmentRequest{}),
		forge.WithCreatedResponse(&permset.Assignment{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	return g.DELETE("/permission-sets/:setId/assignments/:assignmentId", a.deleteAssignment,
		forge.WithSummary("Unassign permission set"),
		forge.WithDescription("Removes a permission set assignment."),
		forge.WithOperationID("deleteAssignment"),
		forge.WithNoContentResponse(),
		forge.WithErrorResponses(),
	)
}

func (a *API) createPermissionSet(ctx forge.Context, req *CreatePermissionSetRequest) (*permset.PermissionSet, error) {
	if req.Name == "" {
		return nil, forge.BadRequest("name is required")
	}

	now := time.Now()
	ps := &permset.PermissionSet{
		ID:          id.NewPermissionSetID(),
		TenantID:    resolveTenant(ctx, req.TenantID),
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.IsActive != nil {
		ps.IsActive = *req.IsActive
	}

	if err := a.eng.Store().CreatePermissionSet(requestContext(ctx, req.TenantID), ps); err != nil {
		return nil, mapError(err)
	}

	return ps, ctx.JSON(http.StatusCreated, ps)
}

func (a *API) getPermissionSet(ctx forge.Context, _ *GetPermissionSetRequest) (*permset.PermissionSet, error) {
	setID, err := id.ParsePermissionSetID(ctx.Param("setId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid permission set ID: %v", err))
	}

	ps, err := a.eng.Store().GetPermissionSet(ctx.Context(), setID)
	if err != nil {
		return nil, mapError(err)
	}

	return ps, ctx.JSON(http.StatusOK, ps)
}

func (a *API) updatePermissionSet(ctx forge.Context, req *UpdatePermissionSetRequest) (*permset.PermissionSet, error) {
	setID, err := id.ParsePermissionSetID(ctx.Param("setId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid permission set ID: %v", err))
	}

	ps, err := a.eng.Store().GetPermissionSet(ctx.Context(), setID)
	if err != nil {
		return nil, mapError(err)
	}

	if req.Name != "" {
		ps.Name = req.Name
	}
	if req.Description != "" {
		ps.Description = req.Description
	}
	if req.IsActive != nil {
		ps.IsActive = *req.IsActive
	}
	ps.UpdatedAt = time.Now()

	if err := a.eng.Store().UpdatePermissionSet(ctx.Context(), ps); err != nil {
		return nil, mapError(err)
	}

	return ps, ctx.JSON(http.StatusOK, ps)
}

func (a *API) deletePermissionSet(ctx forge.Context, _ *GetPermissionSetRequest) (*struct{}, error) {
	setID, err := id.ParsePermissionSetID(ctx.Param("setId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid permission set ID: %v", err))
	}

	if err := a.eng.Store().DeletePermissionSet(ctx.Context(), setID); err != nil {
		return nil, mapError(err)
	}

	return nil, ctx.NoContent(http.StatusNoContent)
}

func (a *API) listPermissionSets(ctx forge.Context, req *ListPermissionSetsRequest) (*ListResponse[*permset.PermissionSet], error) {
	c := requestContext(ctx, req.TenantID)
	filter := &permset.ListFilter{
		TenantID: resolveTenant(ctx, req.TenantID),
		IsActive: req.IsActive,
		Search:   req.Search,
		Limit:    defaultLimit(req.Limit),
		Offset:   req.Offset,
	}

	sets, err := a.eng.Store().ListPermissionSets(c, filter)
	if err != nil {
		return nil, mapError(err)
	}

	total, err := a.eng.Store().CountPermissionSets(c, filter)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &ListResponse[*permset.PermissionSet]{Items: sets, Total: total, Limit: filter.Limit, Offset: filter.Offset}
	return resp, ctx.JSON(http.StatusOK, resp)
}

func (a *API) createAssignment(ctx forge.Context, req *CreateAssignmentRequest) (*permset.Assignment, error) {
	setID, err := id.ParsePermissionSetID(ctx.Param("setId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid permission set ID: %v", err))
	}
	if req.UserID == "" {
		return nil, forge.BadRequest("user_id is required")
	}

	// Verify the set exists so assignments never dangle.
	ps, err := a.eng.Store().GetPermissionSet(ctx.Context(), setID)
	if err != nil {
		return nil, mapError(err)
	}

	tenantID := resolveTenant(ctx, req.TenantID)
	if tenantID == "" {
		tenantID = ps.TenantID
	}

	assignment := &permset.Assignment{
		ID:              id.NewAssignmentID(),
		TenantID:        tenantID,
		UserID:          req.UserID,
		PermissionSetID: setID,
		CreatedAt:       time.Now(),
	}

	if err := a.eng.Store().CreateAssignment(requestContext(ctx, req.TenantID), assignment); err != nil {
		return nil, mapError(err)
	}

	return assignment, ctx.JSON(http.StatusCreated, assignment)
}

func (a *API) deleteAssignment(ctx forge.Context, _ *struct{}) (*struct{}, error) {
	assignmentID, err := id.ParseAssignmentID(ctx.Param("assignmentId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid assignment ID: %v", err))
	}

	if err := a.eng.Store().DeleteAssignment(ctx.Context(), assignmentID); err != nil {
		return nil, mapError(err)
	}

	return nil, ctx.NoContent(http.StatusNoContent)
}
