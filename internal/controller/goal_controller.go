package controller

import (
	"football_assistance_backend/internal/export"
	"football_assistance_backend/internal/service"
	"football_assistance_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GoalController struct {
	GoalService *service.GoalService
}

func NewGoalController(goalService *service.GoalService) *GoalController {
	return &GoalController{GoalService: goalService}
}

type UpdateProgressRequest struct {
	Progress *int `json:"progress" binding:"required"`
}

// ListGoals godoc
// @Summary List goals
// @Tags goals
// @Security ApiKeyAuth
// @Param q query string false "search title and description"
// @Param start query string false "earliest deadline (YYYY-MM-DD)"
// @Param end query string false "latest deadline (YYYY-MM-DD)"
// @Success 200 {object} util.Response{data=[]model.Goal}
// @Router /api/goals [get]
func (c *GoalController) ListGoals(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	criteria, ok := bindCriteria(ctx)
	if !ok {
		return
	}
	goals, err := c.GoalService.List(ctx.Request.Context(), s.UserID, criteria)
	if err != nil {
		util.LogFailure(ctx, "failed to load goals", err)
		return
	}
	util.Success(ctx, goals)
}

// CreateGoal godoc
// @Summary Create a goal
// @Tags goals
// @Security ApiKeyAuth
// @Param body body service.CreateGoalRequest true "goal"
// @Success 201 {object} util.Response{data=model.Goal}
// @Router /api/goals [post]
func (c *GoalController) CreateGoal(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	var req service.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Deadline != nil && *req.Deadline != "" && !util.IsDate(*req.Deadline) {
		util.BadRequest(ctx, "deadline must be YYYY-MM-DD")
		return
	}
	goal, err := c.GoalService.Create(ctx.Request.Context(), s.UserID, req)
	if err != nil {
		util.LogFailure(ctx, "failed to save goal", err)
		return
	}
	util.Created(ctx, goal)
}

// UpdateProgress godoc
// @Summary Set goal progress
// @Description Progress is clamped to 0-100; the goal completes at 100.
// @Tags goals
// @Security ApiKeyAuth
// @Param id path string true "goal id"
// @Param body body UpdateProgressRequest true "progress"
// @Success 200 {object} util.Response{data=model.Goal}
// @Router /api/goals/{id}/progress [patch]
func (c *GoalController) UpdateProgress(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	var req UpdateProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	goal, err := c.GoalService.UpdateProgress(ctx.Request.Context(), s.UserID, ctx.Param("id"), *req.Progress)
	if err != nil {
		storeFailure(ctx, "failed to save goal", err)
		return
	}
	util.Success(ctx, goal)
}

// DeleteGoal godoc
// @Summary Delete a goal
// @Tags goals
// @Security ApiKeyAuth
// @Param id path string true "goal id"
// @Success 200 {object} util.Response
// @Router /api/goals/{id} [delete]
func (c *GoalController) DeleteGoal(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	if err := c.GoalService.Delete(ctx.Request.Context(), s.UserID, ctx.Param("id")); err != nil {
		storeFailure(ctx, "failed to delete goal", err)
		return
	}
	util.Success(ctx, nil)
}

// ExportGoals godoc
// @Summary Download the filtered goals
// @Tags goals
// @Security ApiKeyAuth
// @Param format query string false "csv or json"
// @Success 200 {file} file
// @Success 204 "nothing to export"
// @Router /api/goals/export [get]
func (c *GoalController) ExportGoals(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	criteria, ok := bindCriteria(ctx)
	if !ok {
		return
	}
	goals, err := c.GoalService.List(ctx.Request.Context(), s.UserID, criteria)
	if err != nil {
		util.LogFailure(ctx, "failed to load goals", err)
		return
	}
	writeExport(ctx, "goals", export.GoalRows(goals))
}
