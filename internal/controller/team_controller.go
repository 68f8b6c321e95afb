package controller

import (
	"errors"

	"football_assistance_backend/internal/service"
	"football_assistance_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TeamController struct {
	TeamService *service.TeamService
}

func NewTeamController(teamService *service.TeamService) *TeamController {
	return &TeamController{TeamService: teamService}
}

// ListMembers godoc
// @Summary List team members
// @Tags team
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.TeamMember}
// @Router /api/team/members [get]
func (c *TeamController) ListMembers(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	members, err := c.TeamService.List(ctx.Request.Context(), s.UserID)
	if err != nil {
		util.LogFailure(ctx, "failed to load team members", err)
		return
	}
	util.Success(ctx, members)
}

// CreateMember godoc
// @Summary Add a team member
// @Tags team
// @Security ApiKeyAuth
// @Param body body service.TeamMemberRequest true "member"
// @Success 201 {object} util.Response{data=model.TeamMember}
// @Router /api/team/members [post]
func (c *TeamController) CreateMember(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	var req service.TeamMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	member, err := c.TeamService.Create(ctx.Request.Context(), s.UserID, req)
	if err != nil {
		util.LogFailure(ctx, "failed to save team member", err)
		return
	}
	util.Created(ctx, member)
}

// UpdateMember godoc
// @Summary Edit a team member
// @Tags team
// @Security ApiKeyAuth
// @Param id path string true "member id"
// @Param body body service.TeamMemberRequest true "member"
// @Success 200 {object} util.Response{data=model.TeamMember}
// @Router /api/team/members/{id} [put]
func (c *TeamController) UpdateMember(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	var req service.TeamMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	member, err := c.TeamService.Update(ctx.Request.Context(), s.UserID, ctx.Param("id"), req)
	if err != nil {
		storeFailure(ctx, "failed to save team member", err)
		return
	}
	util.Success(ctx, member)
}

// DeleteMember godoc
// @Summary Remove a team member
// @Tags team
// @Security ApiKeyAuth
// @Param id path string true "member id"
// @Success 200 {object} util.Response
// @Router /api/team/members/{id} [delete]
func (c *TeamController) DeleteMember(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	if err := c.TeamService.Delete(ctx.Request.Context(), s.UserID, ctx.Param("id")); err != nil {
		storeFailure(ctx, "failed to delete team member", err)
		return
	}
	util.Success(ctx, nil)
}

// ListFormations godoc
// @Summary Formation templates
// @Tags team
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Formation}
// @Router /api/team/formations [get]
func (c *TeamController) ListFormations(ctx *gin.Context) {
	util.Success(ctx, c.TeamService.Formations())
}

// Lineup godoc
// @Summary Place members on a formation
// @Description Each slot gets the first member whose position equals the slot label.
// @Tags team
// @Security ApiKeyAuth
// @Param id path string true "formation id, e.g. 4-4-2"
// @Success 200 {object} util.Response{data=[]model.LineupSlot}
// @Router /api/team/formations/{id}/lineup [get]
func (c *TeamController) Lineup(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	lineup, err := c.TeamService.Lineup(ctx.Request.Context(), s.UserID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrUnknownFormation) {
			util.NotFound(ctx)
			return
		}
		util.LogFailure(ctx, "failed to load team members", err)
		return
	}
	util.Success(ctx, lineup)
}
