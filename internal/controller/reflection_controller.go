package controller

import (
	"io"
	"net/http"
	"strings"

	"football_assistance_backend/internal/export"
	"football_assistance_backend/internal/model"
	"football_assistance_backend/internal/service"
	"football_assistance_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReflectionController struct {
	ReflectionService *service.ReflectionService
}

func NewReflectionController(reflectionService *service.ReflectionService) *ReflectionController {
	return &ReflectionController{ReflectionService: reflectionService}
}

// ReflectionView adds the playable link of the stored video to a reflection.
type ReflectionView struct {
	model.MatchReflection
	VideoLink string `json:"video_link,omitempty"`
}

func (c *ReflectionController) view(r model.MatchReflection) ReflectionView {
	return ReflectionView{MatchReflection: r, VideoLink: c.ReflectionService.VideoLink(&r)}
}

// ListReflections godoc
// @Summary List match reflections
// @Tags reflections
// @Security ApiKeyAuth
// @Param q query string false "search opponent, scene and thoughts"
// @Param start query string false "from match date (YYYY-MM-DD)"
// @Param end query string false "to match date (YYYY-MM-DD)"
// @Success 200 {object} util.Response{data=[]ReflectionView}
// @Router /api/reflections [get]
func (c *ReflectionController) ListReflections(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	criteria, ok := bindCriteria(ctx)
	if !ok {
		return
	}
	reflections, err := c.ReflectionService.List(ctx.Request.Context(), s.UserID, criteria)
	if err != nil {
		util.LogFailure(ctx, "failed to load reflections", err)
		return
	}
	views := make([]ReflectionView, len(reflections))
	for i, r := range reflections {
		views[i] = c.view(r)
	}
	util.Success(ctx, views)
}

// CreateReflection godoc
// @Summary Record a match reflection
// @Description Accepts JSON, or multipart form fields with an optional "video" file. A video starts a background analysis.
// @Tags reflections
// @Security ApiKeyAuth
// @Accept json,mpfd
// @Param video formData file false "match video"
// @Success 201 {object} util.Response{data=ReflectionView}
// @Router /api/reflections [post]
func (c *ReflectionController) CreateReflection(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}

	var req service.CreateReflectionRequest
	if err := ctx.ShouldBind(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var video *service.VideoUpload
	if strings.HasPrefix(ctx.ContentType(), "multipart/") {
		fileHeader, err := ctx.FormFile("video")
		if err != nil && err != http.ErrMissingFile {
			util.BadRequest(ctx, "invalid video upload")
			return
		}
		if fileHeader != nil {
			if _, ok := util.VideoExtension(fileHeader.Filename); !ok {
				util.BadRequest(ctx, "unsupported video type")
				return
			}
			if fileHeader.Size > util.MaxVideoSize {
				util.Error(ctx, http.StatusRequestEntityTooLarge, "video too large")
				return
			}
			file, err := fileHeader.Open()
			if err != nil {
				util.LogFailure(ctx, "failed to read video", err)
				return
			}
			defer file.Close()

			mimeType, err := util.ValidateMimeType(file, []string{util.MimeVideo, util.MimeOctetStream})
			if err != nil {
				util.BadRequest(ctx, "unsupported video type")
				return
			}
			if _, err := file.Seek(0, io.SeekStart); err != nil {
				util.LogFailure(ctx, "failed to read video", err)
				return
			}
			contentType := fileHeader.Header.Get("Content-Type")
			if !util.IsVideo(contentType) {
				contentType = mimeType
			}
			video = &service.VideoUpload{
				Reader:      file,
				Size:        fileHeader.Size,
				Filename:    fileHeader.Filename,
				ContentType: contentType,
			}
		}
	}

	reflection, err := c.ReflectionService.Create(ctx.Request.Context(), s.UserID, req, video)
	if err != nil {
		util.LogFailure(ctx, "failed to save reflection", err)
		return
	}
	util.Created(ctx, c.view(*reflection))
}

// DeleteReflection godoc
// @Summary Delete a reflection and its video
// @Tags reflections
// @Security ApiKeyAuth
// @Param id path string true "reflection id"
// @Success 200 {object} util.Response
// @Router /api/reflections/{id} [delete]
func (c *ReflectionController) DeleteReflection(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	if err := c.ReflectionService.Delete(ctx.Request.Context(), s.UserID, ctx.Param("id")); err != nil {
		storeFailure(ctx, "failed to delete reflection", err)
		return
	}
	util.Success(ctx, nil)
}

// ExportReflections godoc
// @Summary Download the filtered reflections
// @Tags reflections
// @Security ApiKeyAuth
// @Param format query string false "csv or json"
// @Success 200 {file} file
// @Success 204 "nothing to export"
// @Router /api/reflections/export [get]
func (c *ReflectionController) ExportReflections(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	criteria, ok := bindCriteria(ctx)
	if !ok {
		return
	}
	reflections, err := c.ReflectionService.List(ctx.Request.Context(), s.UserID, criteria)
	if err != nil {
		util.LogFailure(ctx, "failed to load reflections", err)
		return
	}
	writeExport(ctx, "match-reflections", export.ReflectionRows(reflections))
}
