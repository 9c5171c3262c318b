package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xraph/forge"

	"github.com/masatokaneko/shareguard/id"
	"github.com/masatokaneko/shareguard/role"
)

func (a *API) registerRoleRoutes(router forge.Router) error {
	g := router.Group("/v1", forge.WithGroupTags("roles"))

	if err := g.POST("/roles", a.createRole,
		forge.WithSummary("Create role"),
		forge.WithDescription("Creates a new role in the hierarchy."),
		forge.WithOperationID("createRole"),
		forge.WithRequestSchema(CreateRoleRequest{}),
		forge.WithCreatedResponse(&role.Role{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/roles/:roleId", a.getRole,
		forge.WithSummary("Get role"),
		forge.WithDescription("Returns details of a specific role."),
		forge.WithOperationID("getRole"),
		forge.WithResponseSchema(http.StatusOK, "Role details", &role.Role{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.PUT("/roles/:roleId", a.updateRole,
		forge.WithSummary("Update role"),
		forge.WithDescription("Updates an existing role."),
		forge.WithOperationID("updateRole"),
		forge.WithRequestSchema(UpdateRoleRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Updated role", &role.Role{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.DELETE("/roles/:roleId", a.deleteRole,
		forge.WithSummary("Delete role"),
		forge.WithDescription("Deletes a role."),
		forge.WithOperationID("deleteRole"),
		forge.WithNoContentResponse(),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/roles", a.listRoles,
		forge.WithSummary("List roles"),
		forge.WithDescription("Lists roles with optional filters."),
		forge.WithOperationID("listRoles"),
		forge.WithRequestSchema(ListRolesRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Role list", ListResponse[*role.Role]{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	return g.GET("/roles/:roleId/children", a.listChildRoles,
		forge.WithSummary("List child roles"),
		forge.WithDescription("Lists the direct children of a role."),
		forge.WithOperationID("listChildRoles"),
		forge.WithResponseSchema(http.StatusOK, "Child roles", []*role.Role{}),
		forge.WithErrorResponses(),
	)
}

func (a *API) createRole(ctx forge.Context, req *CreateRoleRequest) (*role.Role, error) {
	if req.Name == "" {
		return nil, forge.BadRequest("name is required")
	}

	now := time.Now()
	r := &role.Role{
		ID:          id.NewRoleID(),
		TenantID:    resolveTenant(ctx, req.TenantID),
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if req.ParentID != "" {
		pid, err := id.ParseRoleID(req.ParentID)
		if err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid parent_id: %v", err))
		}
		r.ParentID = &pid
	}

	if err := a.eng.Store().CreateRole(requestContext(ctx, req.TenantID), r); err != nil {
		return nil, mapError(err)
	}

	return r, ctx.JSON(http.StatusCreated, r)
}

func (a *API) getRole(ctx forge.Context, _ *GetRoleRequest) (*role.Role, error) {
	roleID, err := id.ParseRoleID(ctx.Param("roleId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid role ID: %v", err))
	}

	r, err := a.eng.Store().GetRole(ctx.Context(), roleID)
	if err != nil {
		return nil, mapError(err)
	}

	return r, ctx.JSON(http.StatusOK, r)
}

func (a *API) updateRole(ctx forge.Context, req *UpdateRoleRequest) (*role.Role, error) {
	roleID, err := id.ParseRoleID(ctx.Param("roleId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid role ID: %v", err))
	}

	r, err := a.eng.Store().GetRole(ctx.Context(), roleID)
	if err != nil {
		return nil, mapError(err)
	}

	if req.Name != "" {
		r.Name = req.Name
	}
	if req.Description != "" {
		r.Description = req.Description
	}
	if req.ParentID != nil {
		if *req.ParentID == "" {
			r.ParentID = nil
		} else {
			pid, err := id.ParseRoleID(*req.ParentID)
			if err != nil {
				return nil, forge.BadRequest(fmt.Sprintf("invalid parent_id: %v", err))
			}
			r.ParentID = &pid
		}
	}
	r.UpdatedAt = time.Now()

	if err := a.eng.Store().UpdateRole(ctx.Context(), r); err != nil {
		return nil, mapError(err)
	}

	// Reparenting moves every cached hierarchy decision under this role.
	a.eng.InvalidateTenant(ctx.Context(), r.TenantID)

	return r, ctx.JSON(http.StatusOK, r)
}

func (a *API) deleteRole(ctx forge.Context, _ *GetRoleRequest) (*struct{}, error) {
	roleID, err := id.ParseRoleID(ctx.Param("roleId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid role ID: %v", err))
	}

	r, err := a.eng.Store().GetRole(ctx.Context(), roleID)
	if err != nil {
		return nil, mapError(err)
	}
	if err := a.eng.Store().DeleteRole(ctx.Context(), roleID); err != nil {
		return nil, mapError(err)
	}
	a.eng.InvalidateTenant(ctx.Context(), r.TenantID)

	return nil, ctx.NoContent(http.StatusNoContent)
}

func (a *API) listRoles(ctx forge.Context, req *ListRolesRequest) (*ListResponse[*role.Role], error) {
	c := requestContext(ctx, req.TenantID)
	filter := &role.ListFilter{
		TenantID: resolveTenant(ctx, req.TenantID),
		Search:   req.Search,
		Limit:    defaultLimit(req.Limit),
		Offset:   req.Offset,
	}
	if req.ParentID != "" {
		pid, err := id.ParseRoleID(req.ParentID)
		if err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid parent_id: %v", err))
		}
		filter.ParentID = &pid
	}

	roles, err := a.eng.Store().ListRoles(c, filter)
	if err != nil {
		return nil, mapError(err)
	}

	total, err := a.eng.Store().CountRoles(c, filter)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &ListResponse[*role.Role]{Items: roles, Total: total, Limit: filter.Limit, Offset: filter.Offset}
	return resp, ctx.JSON(http.StatusOK, resp)
}

func (a *API) listChildRoles(ctx forge.Context, _ *GetRoleRequest) ([]*role.Role, error) {
	roleID, err := id.ParseRoleID(ctx.Param("roleId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid role ID: %v", err))
	}

	children, err := a.eng.Store().ListChildRoles(ctx.Context(), roleID)
	if err != nil {
		return nil, mapError(err)
	}

	return children, ctx.JSON(http.StatusOK, children)
}
