package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/malshehri/groupbuy-checkout/internal/gateway"
	"github.com/malshehri/groupbuy-checkout/internal/model"
)

// ChargeRecorder persists terminal checkout attempts. Recording is
// best-effort: an error here never changes a checkout outcome.
type ChargeRecorder interface {
	Insert(ctx context.Context, c *model.Charge) error
}

// CheckoutInput is one checkout attempt as the caller describes it.
type CheckoutInput struct {
	ProductID   string
	Method      model.Method
	Platform    model.Platform
	DiscountPct float64
	UserID      string
	Metadata    map[string]string
}

// CheckoutService sequences pricing, validation, and charge dispatch into
// one attempt: Pricing -> Validating -> Charging -> Settled/Failed. It is
// stateless across calls; at most one adapter invocation happens per call,
// and concurrent calls are independent. There is no implicit retry and no
// idempotency key, so a timed-out charge must be treated as unknown-state
// by the caller.
type CheckoutService struct {
	pricing  *PricingService
	registry *RegistryService
	adapters map[model.MethodFamily]gateway.Adapter
	recorder ChargeRecorder
	timeout  time.Duration
}

func NewCheckoutService(
	pricing *PricingService,
	registry *RegistryService,
	adapters []gateway.Adapter,
	recorder ChargeRecorder,
	timeout time.Duration,
) (*CheckoutService, error) {
	byFamily := make(map[model.MethodFamily]gateway.Adapter, len(adapters))
	for _, a := range adapters {
		if _, dup := byFamily[a.Family()]; dup {
			return nil, fmt.Errorf("duplicate adapter for family %s", a.Family())
		}
		byFamily[a.Family()] = a
	}

	// Every method the registry can ever offer must have an adapter;
	// failing at construction beats a silent fallthrough at dispatch.
	for _, m := range model.AllMethods() {
		if _, ok := byFamily[m.Family()]; !ok {
			return nil, fmt.Errorf("no adapter for method %s (family %s)", m, m.Family())
		}
	}

	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &CheckoutService{
		pricing:  pricing,
		registry: registry,
		adapters: byFamily,
		recorder: recorder,
		timeout:  timeout,
	}, nil
}

// Checkout runs a single charge attempt and returns its normalized
// outcome. Expected failures come back as a failed ChargeResult, never as
// an error.
func (s *CheckoutService) Checkout(ctx context.Context, in CheckoutInput) model.ChargeResult {
	// Pricing
	policy, err := NewDiscountPolicy(in.DiscountPct)
	if err != nil {
		return s.finish(ctx, in, 0, model.Failed(model.KindInvalidRequest, "%v", err))
	}
	amount := policy.Apply(s.pricing.Price(in.ProductID))

	// Validating
	if !s.registry.IsAvailable(in.Method, in.Platform) {
		return s.finish(ctx, in, amount,
			model.Failed(model.KindUnsupported, "%s is not available on %s", in.Method, in.Platform))
	}
	if amount <= 0 {
		return s.finish(ctx, in, amount,
			model.Failed(model.KindInvalidRequest, "charge amount must be positive, got %v", amount))
	}

	// Charging
	req := model.ChargeRequest{
		Method:      in.Method,
		Platform:    in.Platform,
		Amount:      amount,
		Currency:    s.pricing.Currency(),
		Description: s.describe(in.ProductID),
		Metadata:    in.Metadata,
	}

	adapter, ok := s.adapters[in.Method.Family()]
	if !ok {
		return s.finish(ctx, in, amount,
			model.Failed(model.KindUnsupported, "no adapter registered for method %q", in.Method))
	}
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res := adapter.Charge(cctx, req)
	return s.finish(ctx, in, amount, res)
}

func (s *CheckoutService) describe(productID string) string {
	if p, ok := s.pricing.Product(productID); ok {
		return fmt.Sprintf("Group buy deal: %s", p.Name)
	}
	return fmt.Sprintf("Group buy deal: %s", productID)
}

// finish records the terminal outcome and hands the result back
// unchanged.
func (s *CheckoutService) finish(ctx context.Context, in CheckoutInput, amount float64, res model.ChargeResult) model.ChargeResult {
	charge := &model.Charge{
		ProductID: in.ProductID,
		UserID:    in.UserID,
		Method:    in.Method,
		Platform:  in.Platform,
		Amount:    amount,
		Currency:  s.pricing.Currency(),
		Status:    res.Status(),
	}
	if res.Settled() {
		charge.TransactionID = res.Settlement.TransactionID
	} else {
		charge.FailureKind = string(res.Failure.Kind)
		charge.FailureReason = res.Failure.Message
	}

	if err := s.recorder.Insert(ctx, charge); err != nil {
		log.Warn().Err(err).
			Str("product_id", in.ProductID).
			Str("method", string(in.Method)).
			Str("status", charge.Status).
			Msg("failed to record charge attempt")
	}

	return res
}
