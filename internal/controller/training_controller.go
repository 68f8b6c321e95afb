package controller

import (
	"football_assistance_backend/internal/export"
	"football_assistance_backend/internal/service"
	"football_assistance_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TrainingController struct {
	TrainingService *service.TrainingService
}

func NewTrainingController(trainingService *service.TrainingService) *TrainingController {
	return &TrainingController{TrainingService: trainingService}
}

// ListTraining godoc
// @Summary List training records
// @Tags training
// @Security ApiKeyAuth
// @Param q query string false "search title, content and notes"
// @Param start query string false "from date (YYYY-MM-DD)"
// @Param end query string false "to date (YYYY-MM-DD)"
// @Success 200 {object} util.Response{data=[]model.TrainingRecord}
// @Router /api/training [get]
func (c *TrainingController) ListTraining(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	criteria, ok := bindCriteria(ctx)
	if !ok {
		return
	}
	records, err := c.TrainingService.List(ctx.Request.Context(), s.UserID, criteria)
	if err != nil {
		util.LogFailure(ctx, "failed to load training records", err)
		return
	}
	util.Success(ctx, records)
}

// CreateTraining godoc
// @Summary Record a training session
// @Tags training
// @Security ApiKeyAuth
// @Param body body service.CreateTrainingRequest true "training"
// @Success 201 {object} util.Response{data=model.TrainingRecord}
// @Router /api/training [post]
func (c *TrainingController) CreateTraining(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	var req service.CreateTrainingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	record, err := c.TrainingService.Create(ctx.Request.Context(), s.UserID, req)
	if err != nil {
		util.LogFailure(ctx, "failed to save training record", err)
		return
	}
	util.Created(ctx, record)
}

// DeleteTraining godoc
// @Summary Delete a training record
// @Tags training
// @Security ApiKeyAuth
// @Param id path string true "record id"
// @Success 200 {object} util.Response
// @Router /api/training/{id} [delete]
func (c *TrainingController) DeleteTraining(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	if err := c.TrainingService.Delete(ctx.Request.Context(), s.UserID, ctx.Param("id")); err != nil {
		storeFailure(ctx, "failed to delete training record", err)
		return
	}
	util.Success(ctx, nil)
}

// ExportTraining godoc
// @Summary Download the filtered training records
// @Tags training
// @Security ApiKeyAuth
// @Param format query string false "csv or json"
// @Success 200 {file} file
// @Success 204 "nothing to export"
// @Router /api/training/export [get]
func (c *TrainingController) ExportTraining(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	criteria, ok := bindCriteria(ctx)
	if !ok {
		return
	}
	records, err := c.TrainingService.List(ctx.Request.Context(), s.UserID, criteria)
	if err != nil {
		util.LogFailure(ctx, "failed to load training records", err)
		return
	}
	writeExport(ctx, "training-records", export.TrainingRows(records))
}
