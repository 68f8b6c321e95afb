package controller

import (
	"errors"
	"net/http"

	"football_assistance_backend/internal/service"
	"football_assistance_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	PaymentService *service.PaymentService
}

func NewPaymentController(paymentService *service.PaymentService) *PaymentController {
	return &PaymentController{PaymentService: paymentService}
}

type CheckoutRequest struct {
	PriceID string `json:"priceId" binding:"required"`
}

// ListPlans godoc
// @Summary Subscription plans
// @Tags pricing
// @Success 200 {object} util.Response{data=[]service.Plan}
// @Router /api/plans [get]
func (c *PaymentController) ListPlans(ctx *gin.Context) {
	util.Success(ctx, c.PaymentService.Plans())
}

// Checkout godoc
// @Summary Start a subscription checkout for the signed-in user
// @Tags pricing
// @Security ApiKeyAuth
// @Param body body CheckoutRequest true "price"
// @Success 200 {object} util.Response
// @Router /api/checkout [post]
func (c *PaymentController) Checkout(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	url, err := c.PaymentService.CreateCheckoutSession(ctx.Request.Context(), s.UserID, req.PriceID)
	if err != nil {
		if errors.Is(err, util.ErrUnknownPlan) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogError(ctx, http.StatusBadGateway, "failed to create checkout session, please retry later", err)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}

// paymentStatus maps checkout failures for the serverless-style endpoint.
func paymentStatus(err error) int {
	if errors.Is(err, util.ErrUnknownPlan) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
