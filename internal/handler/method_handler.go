package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/malshehri/groupbuy-checkout/internal/dto"
	"github.com/malshehri/groupbuy-checkout/internal/model"
	"github.com/malshehri/groupbuy-checkout/internal/service"
)

type MethodHandler struct {
	registry        *service.RegistryService
	pricing         *service.PricingService
	defaultDiscount float64
}

func NewMethodHandler(registry *service.RegistryService, pricing *service.PricingService, defaultDiscount float64) *MethodHandler {
	return &MethodHandler{registry: registry, pricing: pricing, defaultDiscount: defaultDiscount}
}

// AvailableMethods lists the payment methods usable from the requested
// platform.
func (h *MethodHandler) AvailableMethods(c *gin.Context) {
	platform, err := model.ParsePlatform(c.Query("platform"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	methods := h.registry.AvailableMethods(platform)
	resp := dto.AvailableMethodsResponse{
		Platform: string(platform),
		Methods:  make([]dto.PaymentMethodResponse, len(methods)),
	}
	for i, m := range methods {
		resp.Methods[i] = dto.PaymentMethodResponse{ID: string(m), Name: m.DisplayName()}
	}

	c.JSON(http.StatusOK, resp)
}

// Price quotes the discounted deal price for a product. Unknown products
// quote at the default price, same as checkout would charge.
func (h *MethodHandler) Price(c *gin.Context) {
	productID := c.Param("id")

	discount := h.defaultDiscount
	if raw := c.Query("discount_pct"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid discount_pct"})
			return
		}
		discount = parsed
	}

	policy, err := service.NewDiscountPolicy(discount)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	base := h.pricing.Price(productID)
	c.JSON(http.StatusOK, dto.PriceResponse{
		ProductID:   productID,
		BasePrice:   base,
		DiscountPct: policy.Percentage,
		FinalPrice:  policy.Apply(base),
		Currency:    h.pricing.Currency(),
	})
}
