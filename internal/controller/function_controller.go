package controller

import (
	"errors"
	"io"
	"net/http"

	"football_assistance_backend/internal/service"
	"football_assistance_backend/internal/util"
	"football_assistance_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxWebhookBody caps Stripe payloads the way Stripe's own examples do.
const maxWebhookBody = 65536

// FunctionController serves the stateless proxy endpoints under /functions/v1.
// Their bodies are plain JSON objects, not the util.Response envelope.
type FunctionController struct {
	ChatService     *service.ChatService
	AnalysisService *service.VideoAnalysisService
	PaymentService  *service.PaymentService
}

func NewFunctionController(chatService *service.ChatService, analysisService *service.VideoAnalysisService, paymentService *service.PaymentService) *FunctionController {
	return &FunctionController{
		ChatService:     chatService,
		AnalysisService: analysisService,
		PaymentService:  paymentService,
	}
}

type ConsultationRequest struct {
	Message string                `json:"message"`
	Profile *service.CoachProfile `json:"profile"`
	UserID  string                `json:"userId"`
}

type VideoAnalysisRequest struct {
	VideoURL     string                  `json:"videoUrl"`
	ReflectionID string                  `json:"reflectionId"`
	Context      service.AnalysisContext `json:"context"`
}

type CheckoutSessionRequest struct {
	PriceID string `json:"priceId"`
	UserID  string `json:"userId"`
}

func functionError(ctx *gin.Context, code int, message string) {
	ctx.JSON(code, gin.H{"error": message})
}

// AIConsultation godoc
// @Summary AI coach proxy
// @Tags functions
// @Param body body ConsultationRequest true "message and profile"
// @Success 200 {object} map[string]string
// @Router /functions/v1/ai-consultation [post]
func (c *FunctionController) AIConsultation(ctx *gin.Context) {
	var req ConsultationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Message == "" {
		functionError(ctx, http.StatusBadRequest, "message is required")
		return
	}

	answer, err := c.ChatService.Consult(ctx.Request.Context(), req.Message, req.Profile)
	if err != nil {
		logger.Log.Error("AI consultation failed", zap.String("user_id", req.UserID), zap.Error(err))
		functionError(ctx, http.StatusInternalServerError, "AI service error, please retry later")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"response": answer})
}

// AIVideoAnalysis godoc
// @Summary Analyse a match scene and store the result on the reflection
// @Description Only the reflection's owner may start its analysis.
// @Tags functions
// @Security ApiKeyAuth
// @Param body body VideoAnalysisRequest true "reflection and context"
// @Success 200 {object} map[string]string
// @Router /functions/v1/ai-video-analysis [post]
func (c *FunctionController) AIVideoAnalysis(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	var req VideoAnalysisRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.VideoURL == "" || req.ReflectionID == "" {
		functionError(ctx, http.StatusBadRequest, "Missing videoUrl or reflectionId")
		return
	}

	summary, err := c.AnalysisService.AnalyzeFor(ctx.Request.Context(), s.UserID, req.ReflectionID, req.Context)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNotFound):
			functionError(ctx, http.StatusNotFound, "reflection not found")
		case errors.Is(err, util.ErrInvalidTransition):
			functionError(ctx, http.StatusConflict, "analysis already started")
		case errors.Is(err, util.ErrAnalysisSuperseded):
			functionError(ctx, http.StatusInternalServerError, "analysis timed out")
		default:
			logger.Log.Error("Video analysis failed", zap.String("reflection_id", req.ReflectionID), zap.Error(err))
			functionError(ctx, http.StatusInternalServerError, "analysis failed, please retry later")
		}
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"summary": summary})
}

// CreateCheckoutSession godoc
// @Summary Stripe checkout proxy
// @Tags functions
// @Param body body CheckoutSessionRequest true "price and user"
// @Success 200 {object} map[string]string
// @Router /functions/v1/create-checkout-session [post]
func (c *FunctionController) CreateCheckoutSession(ctx *gin.Context) {
	var req CheckoutSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.PriceID == "" || req.UserID == "" {
		functionError(ctx, http.StatusBadRequest, "Missing priceId or userId")
		return
	}

	url, err := c.PaymentService.CreateCheckoutSession(ctx.Request.Context(), req.UserID, req.PriceID)
	if err != nil {
		logger.Log.Error("Checkout session failed", zap.String("user_id", req.UserID), zap.Error(err))
		functionError(ctx, paymentStatus(err), "Failed to create checkout session")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"url": url})
}

// StripeWebhook godoc
// @Summary Stripe webhook receiver
// @Tags functions
// @Param Stripe-Signature header string true "signature"
// @Success 200 {object} map[string]bool
// @Router /functions/v1/stripe-webhook [post]
func (c *FunctionController) StripeWebhook(ctx *gin.Context) {
	signature := ctx.GetHeader("Stripe-Signature")
	if signature == "" {
		functionError(ctx, http.StatusBadRequest, "No signature")
		return
	}

	payload, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxWebhookBody))
	if err != nil {
		functionError(ctx, http.StatusBadRequest, "unreadable body")
		return
	}

	event, err := c.PaymentService.VerifyEvent(payload, signature)
	if err != nil {
		logger.Log.Warn("Rejected webhook", zap.Error(err))
		functionError(ctx, http.StatusBadRequest, "invalid signature")
		return
	}

	if err := c.PaymentService.HandleEvent(ctx.Request.Context(), event); err != nil {
		logger.Log.Error("Webhook handling failed", zap.String("event_id", event.ID), zap.String("type", string(event.Type)), zap.Error(err))
		functionError(ctx, http.StatusBadRequest, "webhook handling failed")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"received": true})
}
