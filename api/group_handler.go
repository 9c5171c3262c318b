package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xraph/forge"

	"github.com/masatokaneko/shareguard/group"
	"github.com/masatokaneko/shareguard/id"
)

func (a *API) registerGroupRoutes(router forge.Router) error {
	g := router.Group("/v1", forge.WithGroupTags("groups"))

	if err := g.POST("/groups", a.createGroup,
		forge.WithSummary("Create group"),
		forge.WithDescription("Creates a public group usable as a sharing grantee."),
		forge.WithOperationID("createGroup"),
		forge.WithRequestSchema(CreateGroupRequest{}),
		forge.WithCreatedResponse(&group.Group{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/groups/:groupId", a.getGroup,
		forge.WithSummary("Get group"),
		forge.WithDescription("Returns details of a specific group."),
		forge.WithOperationID("getGroup"),
		forge.WithResponseSchema(http.StatusOK, "Group details", &group.Group{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.PUT("/groups/:groupId", a.updateGroup,
		forge.WithSummary("Update group"),
		forge.WithDescription("Updates an existing group."),
		forge.WithOperationID("updateGroup"),
		forge.WithRequestSchema(UpdateGroupRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Updated group", &group.Group{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.DELETE("/groups/:groupId", a.deleteGroup,
		forge.WithSummary("Delete group"),
		forge.WithDescription("Deletes a group and its membership rows."),
		forge.WithOperationID("deleteGroup"),
		forge.WithNoContentResponse(),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/groups", a.listGroups,
		forge.WithSummary("List groups"),
		forge.WithDescription("Lists groups with optional filters."),
		forge.WithOperationID("listGroups"),
		forge.WithRequestSchema(ListGroupsRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Group list", ListResponse[*group.Group]{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.POST("/groups/:groupId/members", a.addGroupMember,
		forge.WithSummary("Add group member"),
		forge.WithDescription("Adds a user, role, or nested group to a group."),
		forge.WithOperationID("addGroupMember"),
		forge.WithRequestSchema(AddGroupMemberRequest{}),
		forge.WithCreatedResponse(&group.Member{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/groups/:groupId/members", a.listGroupMembers,
		forge.WithSummary("List group members"),
		forge.WithDescription("Lists the direct members of a group."),
		forge.WithOperationID("listGroupMembers"),
		forge.WithResponseSchema(http.StatusOK, "Group members", []*group.Member{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	return g.DELETE("/groups/:groupId/members/:memberId", a.removeGroupMember,
		forge.WithSummary("Remove group member"),
		forge.WithDescription("Removes a membership row from a group."),
		forge.WithOperationID("removeGroupMember"),
		forge.WithNoContentResponse(),
		forge.WithErrorResponses(),
	)
}

func (a *API) createGroup(ctx forge.Context, req *CreateGroupRequest) (*group.Group, error) {
	if req.Name == "" {
		return nil, forge.BadRequest("name is required")
	}

	now := time.Now()
	g := &group.Group{
		ID:          id.NewGroupID(),
		TenantID:    resolveTenant(ctx, req.TenantID),
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := a.eng.Store().CreateGroup(requestContext(ctx, req.TenantID), g); err != nil {
		return nil, mapError(err)
	}

	return g, ctx.JSON(http.StatusCreated, g)
}

func (a *API) getGroup(ctx forge.Context, _ *GetGroupRequest) (*group.Group, error) {
	groupID, err := id.ParseGroupID(ctx.Param("groupId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid group ID: %v", err))
	}

	g, err := a.eng.Store().GetGroup(ctx.Context(), groupID)
	if err != nil {
		return nil, mapError(err)
	}

	return g, ctx.JSON(http.StatusOK, g)
}

func (a *API) updateGroup(ctx forge.Context, req *UpdateGroupRequest) (*group.Group, error) {
	groupID, err := id.ParseGroupID(ctx.Param("groupId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid group ID: %v", err))
	}

	g, err := a.eng.Store().GetGroup(ctx.Context(), groupID)
	if err != nil {
		return nil, mapError(err)
	}

	if req.Name != "" {
		g.Name = req.Name
	}
	if req.Description != "" {
		g.Description = req.Description
	}
	g.UpdatedAt = time.Now()

	if err := a.eng.Store().UpdateGroup(ctx.Context(), g); err != nil {
		return nil, mapError(err)
	}

	return g, ctx.JSON(http.StatusOK, g)
}

func (a *API) deleteGroup(ctx forge.Context, _ *GetGroupRequest) (*struct{}, error) {
	groupID, err := id.ParseGroupID(ctx.Param("groupId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid group ID: %v", err))
	}

	g, err := a.eng.Store().GetGroup(ctx.Context(), groupID)
	if err != nil {
		return nil, mapError(err)
	}
	if err := a.eng.Store().DeleteGroup(ctx.Context(), groupID); err != nil {
		return nil, mapError(err)
	}
	a.eng.InvalidateTenant(ctx.Context(), g.TenantID)

	return nil, ctx.NoContent(http.StatusNoContent)
}

func (a *API) listGroups(ctx forge.Context, req *ListGroupsRequest) (*ListResponse[*group.Group], error) {
	c := requestContext(ctx, req.TenantID)
	filter := &group.ListFilter{
		TenantID: resolveTenant(ctx, req.TenantID),
		Search:   req.Search,
		Limit:    defaultLimit(req.Limit),
		Offset:   req.Offset,
	}

	groups, err := a.eng.Store().ListGroups(c, filter)
	if err != nil {
		return nil, mapError(err)
	}

	total, err := a.eng.Store().CountGroups(c, filter)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &ListResponse[*group.Group]{Items: groups, Total: total, Limit: filter.Limit, Offset: filter.Offset}
	return resp, ctx.JSON(http.StatusOK, resp)
}

func (a *API) addGroupMember(ctx forge.Context, req *AddGroupMemberRequest) (*group.Member, error) {
	groupID, err := id.ParseGroupID(ctx.Param("groupId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid group ID: %v", err))
	}

	memberType := group.MemberType(req.MemberType)
	if !memberType.Valid() {
		return nil, forge.BadRequest("member_type must be user, group, role, or role_and_subordinates")
	}
	if req.MemberID == "" {
		return nil, forge.BadRequest("member_id is required")
	}

	switch memberType {
	case group.MemberGroup:
		if _, err := id.ParseGroupID(req.MemberID); err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid member_id: %v", err))
		}
	case group.MemberRole, group.MemberRoleAndSubordinates:
		if _, err := id.ParseRoleID(req.MemberID); err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid member_id: %v", err))
		}
	}

	m := &group.Member{
		ID:         id.NewGroupMemberID(),
		TenantID:   resolveTenant(ctx, req.TenantID),
		GroupID:    groupID,
		MemberType: memberType,
		MemberID:   req.MemberID,
		CreatedAt:  time.Now(),
	}

	if err := a.eng.Store().AddMember(requestContext(ctx, req.TenantID), m); err != nil {
		return nil, mapError(err)
	}

	// Membership feeds group-subject share evaluation; cached decisions
	// for the tenant are stale.
	a.eng.InvalidateTenant(ctx.Context(), m.TenantID)

	return m, ctx.JSON(http.StatusCreated, m)
}

func (a *API) listGroupMembers(ctx forge.Context, _ *GetGroupRequest) ([]*group.Member, error) {
	groupID, err := id.ParseGroupID(ctx.Param("groupId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid group ID: %v", err))
	}

	members, err := a.eng.Store().ListMembers(ctx.Context(), groupID)
	if err != nil {
		return nil, mapError(err)
	}

	return members, ctx.JSON(http.StatusOK, members)
}

func (a *API) removeGroupMember(ctx forge.Context, _ *struct{}) (*struct{}, error) {
	memberID, err := id.ParseGroupMemberID(ctx.Param("memberId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid member ID: %v", err))
	}

	if err := a.eng.Store().RemoveMember(ctx.Context(), memberID); err != nil {
		return nil, mapError(err)
	}
	a.eng.InvalidateTenant(ctx.Context(), resolveTenant(ctx, ""))

	return nil, ctx.NoContent(http.StatusNoContent)
}
