package model

import (
	"fmt"
	"time"
)

// Platform identifies the client device family making a checkout request.
// It is always supplied explicitly by the caller, never inferred from
// ambient process state.
type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
)

func ParsePlatform(s string) (Platform, error) {
	switch Platform(s) {
	case PlatformIOS, PlatformAndroid:
		return Platform(s), nil
	}
	return "", fmt.Errorf("unknown platform %q", s)
}

// MethodFamily groups payment methods by the gateway integration that
// serves them.
type MethodFamily string

const (
	FamilyCard           MethodFamily = "CARD"
	FamilyPlatformWallet MethodFamily = "PLATFORM_WALLET"
	FamilyCarrierWallet  MethodFamily = "CARRIER_WALLET"
	FamilyBNPL           MethodFamily = "BNPL"
)

// Method is one of the closed set of payment methods the storefront offers.
type Method string

const (
	MethodCreditCard Method = "credit-card"
	MethodMada       Method = "mada"
	MethodApplePay   Method = "apple-pay"
	MethodGooglePay  Method = "google-pay"
	MethodSTCPay     Method = "stc-pay"
	MethodTabby      Method = "tabby"
)

// AllMethods lists every method in a stable order.
func AllMethods() []Method {
	return []Method{
		MethodCreditCard,
		MethodMada,
		MethodApplePay,
		MethodGooglePay,
		MethodSTCPay,
		MethodTabby,
	}
}

func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodCreditCard, MethodMada, MethodApplePay, MethodGooglePay, MethodSTCPay, MethodTabby:
		return Method(s), nil
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}

func (m Method) Family() MethodFamily {
	switch m {
	case MethodCreditCard, MethodMada:
		return FamilyCard
	case MethodApplePay, MethodGooglePay:
		return FamilyPlatformWallet
	case MethodSTCPay:
		return FamilyCarrierWallet
	case MethodTabby:
		return FamilyBNPL
	}
	return ""
}

// AvailableOn reports whether the method can be used from the given
// platform. Platform wallets are exclusive to their own OS; everything
// else works on both.
func (m Method) AvailableOn(p Platform) bool {
	switch m {
	case MethodApplePay:
		return p == PlatformIOS
	case MethodGooglePay:
		return p == PlatformAndroid
	}
	return true
}

// DisplayName is the storefront label for the method.
func (m Method) DisplayName() string {
	switch m {
	case MethodCreditCard:
		return "Credit/Debit Card"
	case MethodMada:
		return "Mada"
	case MethodApplePay:
		return "Apple Pay"
	case MethodGooglePay:
		return "Google Pay"
	case MethodSTCPay:
		return "STC Pay"
	case MethodTabby:
		return "Tabby - Pay Later"
	}
	return string(m)
}

// Product is a catalog entry. Products are loaded once at startup and
// never mutated afterwards.
type Product struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	BasePrice float64 `json:"base_price"`
	Currency  string  `json:"currency"`
}

// ChargeRequest is built once per checkout attempt and handed to exactly
// one gateway adapter.
type ChargeRequest struct {
	Method      Method
	Platform    Platform
	Amount      float64
	Currency    string
	Description string
	Metadata    map[string]string
}

// ErrorKind classifies every expected charge failure.
type ErrorKind string

const (
	KindInvalidRequest  ErrorKind = "INVALID_REQUEST"
	KindUnsupported     ErrorKind = "UNSUPPORTED"
	KindGatewayRejected ErrorKind = "GATEWAY_REJECTED"
	KindTimeout         ErrorKind = "TIMEOUT"
	KindStorageFailure  ErrorKind = "STORAGE_FAILURE"
)

// ChargeFailure is a terminal, expected failure of a charge attempt.
type ChargeFailure struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (f *ChargeFailure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// InstallmentPlan describes a buy-now-pay-later split. Amounts are in
// minor currency units so the split is exact; any remainder lands on the
// first installment.
type InstallmentPlan struct {
	Count            int   `json:"count"`
	AmountMinor      int64 `json:"amount_minor"`
	FirstAmountMinor int64 `json:"first_amount_minor"`
}

// Settlement records a successful charge.
type Settlement struct {
	TransactionID string           `json:"transaction_id"`
	Method        Method           `json:"method"`
	Amount        float64          `json:"amount"`
	Currency      string           `json:"currency"`
	Installments  *InstallmentPlan `json:"installments,omitempty"`
	Timestamp     time.Time        `json:"timestamp"`
}

// ChargeResult is the single outcome type for a charge attempt: either a
// settlement or a failure, never both. Use Settled/Failed to construct.
type ChargeResult struct {
	Settlement *Settlement
	Failure    *ChargeFailure
}

func Settled(s Settlement) ChargeResult {
	return ChargeResult{Settlement: &s}
}

func Failed(kind ErrorKind, format string, args ...interface{}) ChargeResult {
	return ChargeResult{Failure: &ChargeFailure{Kind: kind, Message: fmt.Sprintf(format, args...)}}
}

func (r ChargeResult) Settled() bool { return r.Settlement != nil }

// Status returns the terminal checkout state for the result.
func (r ChargeResult) Status() string {
	if r.Settled() {
		return "SETTLED"
	}
	return "FAILED"
}

// SavedPaymentMethod is a user's stored method preference. Absent until
// the first save; overwritten on every re-save.
type SavedPaymentMethod struct {
	Method    Method    `json:"method"`
	IsDefault bool      `json:"is_default"`
	SavedAt   time.Time `json:"saved_at"`
}

// Charge is a persisted record of a terminal checkout attempt.
type Charge struct {
	ID            string    `json:"id"`
	TransactionID string    `json:"transaction_id,omitempty"`
	ProductID     string    `json:"product_id"`
	UserID        string    `json:"user_id,omitempty"`
	Method        Method    `json:"method"`
	Platform      Platform  `json:"platform"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	FailureKind   string    `json:"failure_kind,omitempty"`
	FailureReason string    `json:"failure_reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
