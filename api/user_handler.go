package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xraph/forge"

	"github.com/masatokaneko/shareguard/id"
	"github.com/masatokaneko/shareguard/permset"
	"github.com/masatokaneko/shareguard/user"
)

func (a *API) registerUserRoutes(router forge.Router) error {
	g := router.Group("/v1", forge.WithGroupTags("users"))

	if err := g.PUT("/users/:userId", a.upsertUser,
		forge.WithSummary("Project user"),
		forge.WithDescription("Creates or replaces the engine's projection of a host user."),
		forge.WithOperationID("upsertUser"),
		forge.WithRequestSchema(UpsertUserRequest{}),
		forge.WithResponseSchema(http.StatusOK, "User projection", &user.User{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/users/:userId", a.getUser,
		forge.WithSummary("Get user"),
		forge.WithDescription("Returns the projection of one user."),
		forge.WithOperationID("getUser"),
		forge.WithRequestSchema(GetUserRequest{}),
		forge.WithResponseSchema(http.StatusOK, "User projection", &user.User{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.DELETE("/users/:userId", a.deleteUser,
		forge.WithSummary("Delete user projection"),
		forge.WithDescription("Removes the engine's projection of a host user."),
		forge.WithOperationID("deleteUser"),
		forge.WithRequestSchema(GetUserRequest{}),
		forge.WithNoContentResponse(),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/users", a.listUsers,
		forge.WithSummary("List users"),
		forge.WithDescription("Lists user projections with optional filters."),
		forge.WithOperationID("listUsers"),
		forge.WithRequestSchema(ListUsersRequest{}),
		forge.WithResponseSchema(http.StatusOK, "User list", []*user.User{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/users/:userId/role-path", a.userRolePath,
		forge.WithSummary("Get user role path"),
		forge.WithDescription("Returns the user's role chain from their role up to the hierarchy root."),
		forge.WithOperationID("getUserRolePath"),
		forge.WithRequestSchema(GetUserRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Role path", RolePathResponse{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	return g.GET("/users/:userId/assignments", a.listUserAssignments,
		forge.WithSummary("List user assignments"),
		forge.WithDescription("Lists a user's permission set assignments."),
		forge.WithOperationID("listUserAssignments"),
		forge.WithRequestSchema(GetUserRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Assignments", []*permset.Assignment{}),
		forge.WithErrorResponses(),
	)
}

func (a *API) upsertUser(ctx forge.Context, req *UpsertUserRequest) (*user.User, error) {
	userID := ctx.Param("userId")
	if userID == "" {
		return nil, forge.BadRequest("user id is required")
	}

	now := time.Now()
	u := &user.User{
		ID:        userID,
		TenantID:  resolveTenant(ctx, req.TenantID),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}

	if req.ProfileID != "" {
		pid, err := id.ParseProfileID(req.ProfileID)
		if err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid profile_id: %v", err))
		}
		u.ProfileID = &pid
	}
	if req.RoleID != "" {
		rid, err := id.ParseRoleID(req.RoleID)
		if err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid role_id: %v", err))
		}
		u.RoleID = &rid
	}

	if err := a.eng.Store().UpsertUser(requestContext(ctx, req.TenantID), u); err != nil {
		return nil, mapError(err)
	}

	return u, ctx.JSON(http.StatusOK, u)
}

func (a *API) getUser(ctx forge.Context, req *GetUserRequest) (*user.User, error) {
	u, err := a.eng.Store().GetUser(requestContext(ctx, req.TenantID),
		resolveTenant(ctx, req.TenantID), ctx.Param("userId"))
	if err != nil {
		return nil, mapError(err)
	}

	return u, ctx.JSON(http.StatusOK, u)
}

func (a *API) deleteUser(ctx forge.Context, req *GetUserRequest) (*struct{}, error) {
	err := a.eng.Store().DeleteUser(requestContext(ctx, req.TenantID),
		resolveTenant(ctx, req.TenantID), ctx.Param("userId"))
	if err != nil {
		return nil, mapError(err)
	}

	return nil, ctx.NoContent(http.StatusNoContent)
}

func (a *API) listUsers(ctx forge.Context, req *ListUsersRequest) ([]*user.User, error) {
	filter := &user.ListFilter{
		TenantID: resolveTenant(ctx, req.TenantID),
		IsActive: req.IsActive,
		Limit:    defaultLimit(req.Limit),
		Offset:   req.Offset,
	}
	if req.ProfileID != "" {
		pid, err := id.ParseProfileID(req.ProfileID)
		if err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid profile_id: %v", err))
		}
		filter.ProfileID = &pid
	}
	if req.RoleID != "" {
		rid, err := id.ParseRoleID(req.RoleID)
		if err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid role_id: %v", err))
		}
		filter.RoleID = &rid
	}

	users, err := a.eng.Store().ListUsers(requestContext(ctx, req.TenantID), filter)
	if err != nil {
		return nil, mapError(err)
	}

	return users, ctx.JSON(http.StatusOK, users)
}

func (a *API) userRolePath(ctx forge.Context, req *GetUserRequest) (*RolePathResponse, error) {
	path, err := a.eng.UserRolePath(requestContext(ctx, req.TenantID), ctx.Param("userId"))
	if err != nil {
		return nil, mapError(err)
	}

	resp := &RolePathResponse{RoleIDs: make([]string, 0, len(path))}
	for _, rid := range path {
		resp.RoleIDs = append(resp.RoleIDs, rid.String())
	}
	return resp, ctx.JSON(http.StatusOK, resp)
}

func (a *API) listUserAssignments(ctx forge.Context, req *GetUserRequest) ([]*permset.Assignment, error) {
	assignments, err := a.eng.Store().ListAssignmentsForUser(requestContext(ctx, req.TenantID),
		resolveTenant(ctx, req.TenantID), ctx.Param("userId"))
	if err != nil {
		return nil, mapError(err)
	}

	return assignments, ctx.JSON(http.StatusOK, assignments)
}
