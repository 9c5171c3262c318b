package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xraph/forge"

	"github.com/masatokaneko/shareguard"
	"github.com/masatokaneko/shareguard/id"
	"github.com/masatokaneko/shareguard/rule"
	"github.com/masatokaneko/shareguard/share"
)

func (a *API) registerRuleRoutes(router forge.Router) error {
	g := router.Group("/v1", forge.WithGroupTags("sharing-rules"))

	if err := g.POST("/rules", a.createRule,
		forge.WithSummary("Create sharing rule"),
		forge.WithDescription("Creates an owner-based or criteria-based sharing rule."),
		forge.WithOperationID("createRule"),
		forge.WithRequestSchema(CreateRuleRequest{}),
		forge.WithCreatedResponse(&rule.SharingRule{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/rules/:ruleId", a.getRule,
		forge.WithSummary("Get sharing rule"),
		forge.WithDescription("Returns details of a specific sharing rule."),
		forge.WithOperationID("getRule"),
		forge.WithResponseSchema(http.StatusOK, "Sharing rule details", &rule.SharingRule{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.PUT("/rules/:ruleId", a.updateRule,
		forge.WithSummary("Update sharing rule"),
		forge.WithDescription("Updates an existing sharing rule. Shares are not recomputed automatically."),
		forge.WithOperationID("updateRule"),
		forge.WithRequestSchema(UpdateRuleRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Updated sharing rule", &rule.SharingRule{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.DELETE("/rules/:ruleId", a.deleteRule,
		forge.WithSummary("Delete sharing rule"),
		forge.WithDescription("Deletes a sharing rule and soft-deletes the shares it produced."),
		forge.WithOperationID("deleteRule"),
		forge.WithNoContentResponse(),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/rules", a.listRules,
		forge.WithSummary("List sharing rules"),
		forge.WithDescription("Lists sharing rules with optional filters."),
		forge.WithOperationID("listRules"),
		forge.WithRequestSchema(ListRulesRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Sharing rule list", ListResponse[*rule.SharingRule]{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	return g.POST("/rules/:ruleId/recalculate", a.recalculateRule,
		forge.WithSummary("Recalculate rule shares"),
		forge.WithDescription("Soft-deletes the rule's shares and reapplies it to every record of its object."),
		forge.WithOperationID("recalculateRule"),
		forge.WithResponseSchema(http.StatusOK, "Recalculation summary", shareguard.RecalcResult{}),
		forge.WithErrorResponses(),
	)
}

func (a *API) createRule(ctx forge.Context, req *CreateRuleRequest) (*rule.SharingRule, error) {
	if req.ObjectName == "" || req.Name == "" {
		return nil, forge.BadRequest("object_name and name are required")
	}

	ruleType := rule.Type(req.Type)
	if !ruleType.Valid() {
		return nil, forge.BadRequest("type must be owner_based or criteria_based")
	}

	targetType := rule.PrincipalType(req.TargetType)
	if !targetType.Valid() || req.TargetID == "" {
		return nil, forge.BadRequest("target_type and target_id are required")
	}

	level := share.AccessLevel(req.AccessLevel)
	if !level.Valid() || level == share.AccessNone {
		return nil, forge.BadRequest("access_level must be read or read_write")
	}

	r := &rule.SharingRule{
		ID:          id.NewRuleID(),
		TenantID:    resolveTenant(ctx, req.TenantID),
		ObjectName:  req.ObjectName,
		Name:        req.Name,
		Description: req.Description,
		Type:        ruleType,
		TargetType:  targetType,
		TargetID:    req.TargetID,
		AccessLevel: level,
		IsActive:    true,
	}
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
	if req.IsActive != nil {
		r.IsActive = *req.IsActive
	}

	switch ruleType {
	case rule.OwnerBased:
		sourceType := rule.PrincipalType(req.SourceType)
		if !sourceType.ValidSource() || req.SourceID == "" {
			return nil, forge.BadRequest("owner-based rules require source_type (group, role, role_and_subordinates) and source_id")
		}
		r.SourceType = sourceType
		r.SourceID = req.SourceID
	case rule.CriteriaBased:
		r.Criteria = req.Criteria
	}

	if err := a.eng.Store().CreateRule(requestContext(ctx, req.TenantID), r); err != nil {
		return nil, mapError(err)
	}

	if a.eng.Plugins() != nil {
		a.eng.Plugins().EmitRuleCreated(ctx.Context(), r)
	}

	return r, ctx.JSON(http.StatusCreated, r)
}

func (a *API) getRule(ctx forge.Context, _ *GetRuleRequest) (*rule.SharingRule, error) {
	ruleID, err := id.ParseRuleID(ctx.Param("ruleId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid rule ID: %v", err))
	}

	r, err := a.eng.Store().GetRule(ctx.Context(), ruleID)
	if err != nil {
		return nil, mapError(err)
	}

	return r, ctx.JSON(http.StatusOK, r)
}

func (a *API) updateRule(ctx forge.Context, req *UpdateRuleRequest) (*rule.SharingRule, error) {
	ruleID, err := id.ParseRuleID(ctx.Param("ruleId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid rule ID: %v", err))
	}

	r, err := a.eng.Store().GetRule(ctx.Context(), ruleID)
	if err != nil {
		return nil, mapError(err)
	}

	if req.Name != "" {
		r.Name = req.Name
	}
	if req.Description != "" {
		r.Description = req.Description
	}
	if req.Criteria != nil {
		if r.Type != rule.CriteriaBased {
			return nil, forge.BadRequest("criteria only apply to criteria-based rules")
		}
		r.Criteria = req.Criteria
	}
	if req.AccessLevel != "" {
		level := share.AccessLevel(req.AccessLevel)
		if !level.Valid() || level == share.AccessNone {
			return nil, forge.BadRequest("access_level must be read or read_write")
		}
		r.AccessLevel = level
	}
	if req.IsActive != nil {
		r.IsActive = *req.IsActive
	}
	r.UpdatedAt = time.Now()

	if err := a.eng.Store().UpdateRule(ctx.Context(), r); err != nil {
		return nil, mapError(err)
	}

	if a.eng.Plugins() != nil {
		a.eng.Plugins().EmitRuleUpdated(ctx.Context(), r)
	}

	return r, ctx.JSON(http.StatusOK, r)
}

func (a *API) deleteRule(ctx forge.Context, _ *GetRuleRequest) (*struct{}, error) {
	ruleID, err := id.ParseRuleID(ctx.Param("ruleId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid rule ID: %v", err))
	}

	r, err := a.eng.Store().GetRule(ctx.Context(), ruleID)
	if err != nil {
		return nil, mapError(err)
	}

	if err := a.eng.Store().DeleteRule(ctx.Context(), ruleID); err != nil {
		return nil, mapError(err)
	}

	// The rule's derived shares outlive it only as soft-deleted rows.
	if _, err := a.eng.Store().SoftDeleteSharesByRule(ctx.Context(), r.TenantID, ruleID); err != nil {
		return nil, mapError(err)
	}

	if a.eng.Plugins() != nil {
		a.eng.Plugins().EmitRuleDeleted(ctx.Context(), ruleID)
	}

	return nil, ctx.NoContent(http.StatusNoContent)
}

func (a *API) listRules(ctx forge.Context, req *ListRulesRequest) (*ListResponse[*rule.SharingRule], error) {
	c := requestContext(ctx, req.TenantID)
	filter := &rule.ListFilter{
		TenantID:   resolveTenant(ctx, req.TenantID),
		ObjectName: req.ObjectName,
		Type:       rule.Type(req.Type),
		IsActive:   req.IsActive,
		Limit:      defaultLimit(req.Limit),
		Offset:     req.Offset,
	}

	rules, err := a.eng.Store().ListRules(c, filter)
	if err != nil {
		return nil, mapError(err)
	}

	total, err := a.eng.Store().CountRules(c, filter)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &ListResponse[*rule.SharingRule]{Items: rules, Total: total, Limit: filter.Limit, Offset: filter.Offset}
	return resp, ctx.JSON(http.StatusOK, resp)
}

func (a *API) recalculateRule(ctx forge.Context, _ *GetRuleRequest) (*shareguard.RecalcResult, error) {
	ruleID, err := id.ParseRuleID(ctx.Param("ruleId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid rule ID: %v", err))
	}

	result, err := a.eng.RecalculateRuleShares(ctx.Context(), ruleID)
	if err != nil {
		return nil, mapError(err)
	}

	return result, ctx.JSON(http.StatusOK, result)
}
