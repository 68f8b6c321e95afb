package controller

import (
	"errors"
	"net/http"

	"football_assistance_backend/internal/service"
	"football_assistance_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	ChatService *service.ChatService
}

func NewChatController(chatService *service.ChatService) *ChatController {
	return &ChatController{ChatService: chatService}
}

type ChatRequest struct {
	Message string `json:"message" binding:"required,max=4000"`
}

// Chat godoc
// @Summary Ask the AI coach
// @Description The coach sees the player's profile and recent conversation. Both turns are stored.
// @Tags chat
// @Security ApiKeyAuth
// @Param body body ChatRequest true "message"
// @Success 200 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /api/chat [post]
func (c *ChatController) Chat(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	var req ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	answer, err := c.ChatService.Chat(ctx.Request.Context(), s.UserID, req.Message)
	if err != nil {
		if errors.Is(err, util.ErrUpstream) {
			util.LogError(ctx, http.StatusBadGateway, "the coach is unavailable, please retry later", err)
			return
		}
		util.LogFailure(ctx, "failed to save conversation", err)
		return
	}
	util.Success(ctx, gin.H{"response": answer})
}

// History godoc
// @Summary Conversation with the coach, oldest first
// @Tags chat
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.ChatMessage}
// @Router /api/chat/history [get]
func (c *ChatController) History(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	msgs, err := c.ChatService.History(ctx.Request.Context(), s.UserID)
	if err != nil {
		util.LogFailure(ctx, "failed to load conversation", err)
		return
	}
	util.Success(ctx, msgs)
}

// ClearHistory godoc
// @Summary Forget the conversation
// @Tags chat
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/chat/history [delete]
func (c *ChatController) ClearHistory(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	if err := c.ChatService.Clear(ctx.Request.Context(), s.UserID); err != nil {
		util.LogFailure(ctx, "failed to delete conversation", err)
		return
	}
	util.Success(ctx, nil)
}
