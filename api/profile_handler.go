package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xraph/forge"

	"github.com/masatokaneko/shareguard/id"
	"github.com/masatokaneko/shareguard/profile"
)

func (a *API) registerProfileRoutes(router forge.Router) error {
	g := router.Group("/v1", forge.WithGroupTags("profiles"))

	if err := g.POST("/profiles", a.createProfile,
		forge.WithSummary("Create profile"),
		forge.WithDescription("Creates a baseline permission container."),
		forge.WithOperationID("createProfile"),
		forge.WithRequestSchema(CreateProfileRequest{}),
		forge.WithCreatedResponse(&profile.Profile{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/profiles/:profileId", a.getProfile,
		forge.WithSummary("Get profile"),
		forge.WithDescription("Returns details of a specific profile."),
		forge.WithOperationID("getProfile"),
		forge.WithResponseSchema(http.StatusOK, "Profile details", &profile.Profile{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.PUT("/profiles/:profileId", a.updateProfile,
		forge.WithSummary("Update profile"),
		forge.WithDescription("Updates an existing profile. System profiles cannot be renamed."),
		forge.WithOperationID("updateProfile"),
		forge.WithRequestSchema(UpdateProfileRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Updated profile", &profile.Profile{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.DELETE("/profiles/:profileId", a.deleteProfile,
		forge.WithSummary("Delete profile"),
		forge.WithDescription("Deletes a profile and its permission rows. System profiles cannot be deleted."),
		forge.WithOperationID("deleteProfile"),
		forge.WithNoContentResponse(),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	return g.GET("/profiles", a.listProfiles,
		forge.WithSummary("List profiles"),
		forge.WithDescription("Lists profiles with optional filters."),
		forge.WithOperationID("listProfiles"),
		forge.WithRequestSchema(ListProfilesRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Profile list", ListResponse[*profile.Profile]{}),
		forge.WithErrorResponses(),
	)
}

func (a *API) createProfile(ctx forge.Context, req *CreateProfileRequest) (*profile.Profile, error) {
	if req.Name == "" {
		return nil, forge.BadRequest("name is required")
	}

	now := time.Now()
	p := &profile.Profile{
		ID:          id.NewProfileID(),
		TenantID:    resolveTenant(ctx, req.TenantID),
		Name:        req.Name,
		Description: req.Description,
		IsSystem:    req.IsSystem,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := a.eng.Store().CreateProfile(requestContext(ctx, req.TenantID), p); err != nil {
		return nil, mapError(err)
	}

	return p, ctx.JSON(http.StatusCreated, p)
}

func (a *API) getProfile(ctx forge.Context, _ *GetProfileRequest) (*profile.Profile, error) {
	profileID, err := id.ParseProfileID(ctx.Param("profileId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid profile ID: %v", err))
	}

	p, err := a.eng.Store().GetProfile(ctx.Context(), profileID)
	if err != nil {
		return nil, mapError(err)
	}

	return p, ctx.JSON(http.StatusOK, p)
}

func (a *API) updateProfile(ctx forge.Context, req *UpdateProfileRequest) (*profile.Profile, error) {
	profileID, err := id.ParseProfileID(ctx.Param("profileId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid profile ID: %v", err))
	}

	p, err := a.eng.Store().GetProfile(ctx.Context(), profileID)
	if err != nil {
		return nil, mapError(err)
	}

	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Description != "" {
		p.Description = req.Description
	}
	p.UpdatedAt = time.Now()

	if err := a.eng.UpdateProfile(ctx.Context(), p); err != nil {
		return nil, mapError(err)
	}

	return p, ctx.JSON(http.StatusOK, p)
}

func (a *API) deleteProfile(ctx forge.Context, _ *GetProfileRequest) (*struct{}, error) {
	profileID, err := id.ParseProfileID(ctx.Param("profileId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid profile ID: %v", err))
	}

	if err := a.eng.DeleteProfile(ctx.Context(), profileID); err != nil {
		return nil, mapError(err)
	}

	return nil, ctx.NoContent(http.StatusNoContent)
}

func (a *API) listProfiles(ctx forge.Context, req *ListProfilesRequest) (*ListResponse[*profile.Profile], error) {
	c := requestContext(ctx, req.TenantID)
	filter := &profile.ListFilter{
		TenantID: resolveTenant(ctx, req.TenantID),
		IsSystem: req.IsSystem,
		Search:   req.Search,
		Limit:    defaultLimit(req.Limit),
		Offset:   req.Offset,
	}

	profiles, err := a.eng.Store().ListProfiles(c, filter)
	if err != nil {
		return nil, mapError(err)
	}

	total, err := a.eng.Store().CountProfiles(c, filter)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &ListResponse[*profile.Profile]{Items: profiles, Total: total, Limit: filter.Limit, Offset: filter.Offset}
	return resp, ctx.JSON(http.StatusOK, resp)
}
