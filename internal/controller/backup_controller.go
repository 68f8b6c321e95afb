package controller

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"football_assistance_backend/internal/service"
	"football_assistance_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type BackupController struct {
	BackupService *service.BackupService
}

func NewBackupController(backupService *service.BackupService) *BackupController {
	return &BackupController{BackupService: backupService}
}

// ExportBackup godoc
// @Summary Download a full backup
// @Description Goals, training, reflections, team members and profile as one JSON document.
// @Tags backup
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} model.BackupDocument
// @Router /api/backup/export [get]
func (c *BackupController) ExportBackup(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	doc, err := c.BackupService.Export(ctx.Request.Context(), s.UserID)
	if err != nil {
		util.LogFailure(ctx, "failed to export backup", err)
		return
	}

	filename := service.BackupFilename(c.BackupService.Now())
	ctx.Header("Content-Type", "application/json; charset=utf-8")
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Status(http.StatusOK)
	if err := service.WriteExport(ctx.Writer, doc); err != nil {
		util.LogFailure(ctx, "failed to export backup", err)
	}
}

// ImportBackup godoc
// @Summary Restore a backup
// @Description Adds every record of the backup as new rows. Importing twice creates duplicates. The profile is not restored.
// @Tags backup
// @Security ApiKeyAuth
// @Accept json,mpfd
// @Param file formData file false "backup file"
// @Success 200 {object} util.Response{data=service.ImportResult}
// @Failure 400 {object} util.Response "invalid backup file"
// @Router /api/backup/import [post]
func (c *BackupController) ImportBackup(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}

	var body io.Reader = ctx.Request.Body
	if strings.HasPrefix(ctx.ContentType(), "multipart/") {
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			util.BadRequest(ctx, "invalid backup file")
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			util.LogFailure(ctx, "failed to import backup", err)
			return
		}
		defer file.Close()
		body = file
	}

	result, err := c.BackupService.Import(ctx.Request.Context(), body, s.UserID)
	if err != nil {
		if errors.Is(err, util.ErrInvalidBackup) {
			util.BadRequest(ctx, "invalid backup file")
			return
		}
		util.LogFailure(ctx, "failed to import backup", err)
		return
	}
	util.Success(ctx, result)
}
