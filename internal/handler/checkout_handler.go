package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/malshehri/groupbuy-checkout/internal/dto"
	"github.com/malshehri/groupbuy-checkout/internal/model"
	"github.com/malshehri/groupbuy-checkout/internal/service"
)

type CheckoutHandler struct {
	svc             *service.CheckoutService
	defaultDiscount float64
}

func NewCheckoutHandler(svc *service.CheckoutService, defaultDiscount float64) *CheckoutHandler {
	return &CheckoutHandler{svc: svc, defaultDiscount: defaultDiscount}
}

// Checkout runs one charge attempt. Expected failures come back as a 402
// with the normalized result; only malformed requests get a 400.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "validation failed: " + err.Error()})
		return
	}

	method, err := model.ParseMethod(req.Method)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	platform, err := model.ParsePlatform(req.Platform)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	discount := h.defaultDiscount
	if req.DiscountPct != nil {
		discount = *req.DiscountPct
	}

	res := h.svc.Checkout(c.Request.Context(), service.CheckoutInput{
		ProductID:   req.ProductID,
		Method:      method,
		Platform:    platform,
		DiscountPct: discount,
		UserID:      req.UserID,
		Metadata:    req.Metadata,
	})

	status := http.StatusOK
	if !res.Settled() {
		status = http.StatusPaymentRequired
	}
	c.JSON(status, dto.NewCheckoutResponse(method, res))
}
