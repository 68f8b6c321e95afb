package controller

import (
	"football_assistance_backend/internal/service"
	"football_assistance_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// GetDashboard godoc
// @Summary Dashboard overview
// @Description Goal counts, this week's sessions, recent reflections, subscription, 30-day training chart and notifications.
// @Tags dashboard
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.DashboardSummary}
// @Router /api/dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	summary, err := c.DashboardService.Summary(ctx.Request.Context(), s.UserID)
	if err != nil {
		util.LogFailure(ctx, "failed to load dashboard", err)
		return
	}
	util.Success(ctx, summary)
}
