package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/malshehri/groupbuy-checkout/internal/dto"
	"github.com/malshehri/groupbuy-checkout/internal/model"
	"github.com/malshehri/groupbuy-checkout/internal/service"
)

type PaymentMethodHandler struct {
	svc *service.PaymentMethodService
}

func NewPaymentMethodHandler(svc *service.PaymentMethodService) *PaymentMethodHandler {
	return &PaymentMethodHandler{svc: svc}
}

// Save stores the user's preferred payment method, overwriting any prior
// one. Storage failures are reported as such but never affect checkouts.
func (h *PaymentMethodHandler) Save(c *gin.Context) {
	var req dto.SavePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "validation failed: " + err.Error()})
		return
	}

	method, err := model.ParseMethod(req.Method)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.svc.Save(c.Request.Context(), c.Param("user_id"), method, req.IsDefault); err != nil {
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Error: "could not save payment method",
			Kind:  string(model.KindStorageFailure),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved": true})
}

// Load returns the user's saved payment method, or 404 before the first
// save.
func (h *PaymentMethodHandler) Load(c *gin.Context) {
	saved, found, err := h.svc.Load(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Error: "could not load payment method",
			Kind:  string(model.KindStorageFailure),
		})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "no saved payment method"})
		return
	}

	c.JSON(http.StatusOK, dto.SavedPaymentMethodResponse{
		Method:    string(saved.Method),
		IsDefault: saved.IsDefault,
		SavedAt:   saved.SavedAt,
	})
}
