package dto

import (
	"time"

	"github.com/malshehri/groupbuy-checkout/internal/model"
)

type InstallmentPlanResponse struct {
	Count             int     `json:"count"`
	InstallmentAmount float64 `json:"installment_amount"`
	FirstInstallment  float64 `json:"first_installment"`
}

type CheckoutResponse struct {
	Status        string                   `json:"status"`
	TransactionID string                   `json:"transaction_id,omitempty"`
	Method        string                   `json:"method"`
	Amount        float64                  `json:"amount,omitempty"`
	Currency      string                   `json:"currency,omitempty"`
	Installments  *InstallmentPlanResponse `json:"installments,omitempty"`
	Timestamp     *time.Time               `json:"timestamp,omitempty"`
	FailureKind   string                   `json:"failure_kind,omitempty"`
	FailureReason string                   `json:"failure_reason,omitempty"`
}

// NewCheckoutResponse flattens a ChargeResult for the wire.
func NewCheckoutResponse(method model.Method, res model.ChargeResult) CheckoutResponse {
	resp := CheckoutResponse{
		Status: res.Status(),
		Method: string(method),
	}
	if res.Settled() {
		s := res.Settlement
		resp.TransactionID = s.TransactionID
		resp.Amount = s.Amount
		resp.Currency = s.Currency
		resp.Timestamp = &s.Timestamp
		if s.Installments != nil {
			resp.Installments = &InstallmentPlanResponse{
				Count:             s.Installments.Count,
				InstallmentAmount: float64(s.Installments.AmountMinor) / 100,
				FirstInstallment:  float64(s.Installments.FirstAmountMinor) / 100,
			}
		}
	} else {
		resp.FailureKind = string(res.Failure.Kind)
		resp.FailureReason = res.Failure.Message
	}
	return resp
}

type PaymentMethodResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type AvailableMethodsResponse struct {
	Platform string                  `json:"platform"`
	Methods  []PaymentMethodResponse `json:"methods"`
}

type PriceResponse struct {
	ProductID   string  `json:"product_id"`
	BasePrice   float64 `json:"base_price"`
	DiscountPct float64 `json:"discount_pct"`
	FinalPrice  float64 `json:"final_price"`
	Currency    string  `json:"currency"`
}

type SavedPaymentMethodResponse struct {
	Method    string    `json:"method"`
	IsDefault bool      `json:"is_default"`
	SavedAt   time.Time `json:"saved_at"`
}

type ChargeListResponse struct {
	Charges    []model.Charge `json:"charges"`
	Pagination Pagination     `json:"pagination"`
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}
