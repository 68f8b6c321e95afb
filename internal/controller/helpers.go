package controller

import (
	"errors"
	"fmt"
	"net/http"

	"football_assistance_backend/internal/export"
	"football_assistance_backend/internal/filter"
	"football_assistance_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// session returns the signed-in identity, answering 401 when there is none.
func session(ctx *gin.Context) (*util.Session, bool) {
	s := util.GetSession(ctx)
	if s == nil {
		util.Unauthorized(ctx)
		return nil, false
	}
	return s, true
}

// storeFailure answers 404 for a missing (or foreign) record and a logged 500 otherwise.
func storeFailure(ctx *gin.Context, message string, err error) {
	if errors.Is(err, util.ErrNotFound) {
		util.NotFound(ctx)
		return
	}
	util.LogFailure(ctx, message, err)
}

func bindCriteria(ctx *gin.Context) (filter.Criteria, bool) {
	var c filter.Criteria
	if err := ctx.ShouldBindQuery(&c); err != nil {
		util.BadRequest(ctx, err.Error())
		return c, false
	}
	for _, d := range []string{c.Start, c.End} {
		if d != "" && !util.IsDate(d) {
			util.BadRequest(ctx, "dates must be YYYY-MM-DD")
			return c, false
		}
	}
	return c, true
}

// writeExport sends rows as a downloadable file. An empty export sends 204 and no attachment.
func writeExport(ctx *gin.Context, stem string, rows []export.Row) {
	format, err := export.ParseFormat(ctx.Query("format"))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if len(rows) == 0 {
		ctx.Status(http.StatusNoContent)
		return
	}

	ctx.Header("Content-Type", format.ContentType())
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.Filename(stem, format)))
	ctx.Status(http.StatusOK)
	if err := export.Write(ctx.Writer, format, rows); err != nil {
		util.LogFailure(ctx, "failed to export", err)
	}
}
