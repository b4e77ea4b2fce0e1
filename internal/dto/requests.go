package dto

type CheckoutRequest struct {
	ProductID   string            `json:"product_id" binding:"required"`
	Method      string            `json:"method" binding:"required"`
	Platform    string            `json:"platform" binding:"required,oneof=ios android"`
	DiscountPct *float64          `json:"discount_pct" binding:"omitempty,gte=0,lte=100"`
	UserID      string            `json:"user_id"`
	Metadata    map[string]string `json:"metadata"`
}

type SavePaymentMethodRequest struct {
	Method    string `json:"method" binding:"required"`
	IsDefault bool   `json:"is_default"`
}
