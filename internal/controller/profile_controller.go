package controller

import (
	"errors"

	"football_assistance_backend/internal/model"
	"football_assistance_backend/internal/service"
	"football_assistance_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	ProfileService *service.ProfileService
}

func NewProfileController(profileService *service.ProfileService) *ProfileController {
	return &ProfileController{ProfileService: profileService}
}

type ThemeRequest struct {
	Theme string `json:"theme" binding:"required,oneof=light dark"`
}

// GetProfile godoc
// @Summary Current player's profile
// @Tags profile
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.Profile}
// @Router /api/profile [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	profile, err := c.ProfileService.Get(ctx.Request.Context(), s.UserID)
	if err != nil {
		storeFailure(ctx, "failed to load profile", err)
		return
	}
	util.Success(ctx, profile)
}

// UpdateProfile godoc
// @Summary Edit the profile
// @Description The username is fixed at sign-up and cannot be changed here.
// @Tags profile
// @Security ApiKeyAuth
// @Param body body service.ProfileUpdate true "profile"
// @Success 200 {object} util.Response{data=model.Profile}
// @Router /api/profile [put]
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	var req service.ProfileUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	profile, err := c.ProfileService.Update(ctx.Request.Context(), s.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrInvalidSkill) || errors.Is(err, util.ErrInvalidPosition) {
			util.BadRequest(ctx, err.Error())
			return
		}
		storeFailure(ctx, "failed to save profile", err)
		return
	}
	util.Success(ctx, profile)
}

// UpdateTheme godoc
// @Summary Switch between light and dark theme
// @Tags profile
// @Security ApiKeyAuth
// @Param body body ThemeRequest true "theme"
// @Success 200 {object} util.Response
// @Router /api/profile/theme [put]
func (c *ProfileController) UpdateTheme(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	var req ThemeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.ProfileService.SetTheme(ctx.Request.Context(), s.UserID, model.Theme(req.Theme)); err != nil {
		storeFailure(ctx, "failed to save profile", err)
		return
	}
	util.Success(ctx, gin.H{"theme": req.Theme})
}

// ProfileOptions godoc
// @Summary Positions and skills a profile may use
// @Tags profile
// @Success 200 {object} util.Response
// @Router /api/profile/options [get]
func (c *ProfileController) ProfileOptions(ctx *gin.Context) {
	util.Success(ctx, gin.H{
		"positions": model.Positions,
		"skills":    model.SkillOptions,
	})
}
