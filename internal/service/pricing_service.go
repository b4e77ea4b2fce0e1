package service

import (
	"fmt"
	"math"

	"github.com/malshehri/groupbuy-checkout/internal/model"
)

// PricingService is the single source of truth for deal amounts. It holds
// the product price table loaded at startup; lookups are side-effect-free
// and unknown products fall back to the configured default price, matching
// the storefront's behaviour.
type PricingService struct {
	products     map[string]model.Product
	defaultPrice float64
	currency     string
}

func NewPricingService(products []model.Product, defaultPrice float64, currency string) *PricingService {
	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &PricingService{products: byID, defaultPrice: defaultPrice, currency: currency}
}

// Price returns the canonical base price for the product, or the default
// price for unknown IDs. Never errors.
func (s *PricingService) Price(productID string) float64 {
	if p, ok := s.products[productID]; ok {
		return p.BasePrice
	}
	return s.defaultPrice
}

// Product returns the catalog entry if the ID is known.
func (s *PricingService) Product(productID string) (model.Product, bool) {
	p, ok := s.products[productID]
	return p, ok
}

func (s *PricingService) Currency() string {
	return s.currency
}

// DiscountPolicy applies a single percentage discount per checkout.
// Deal prices are whole currency units, so the result rounds half-up to
// the nearest unit: 799 at 15% charges 679.
type DiscountPolicy struct {
	Percentage float64
}

func NewDiscountPolicy(pct float64) (DiscountPolicy, error) {
	if pct < 0 || pct > 100 {
		return DiscountPolicy{}, fmt.Errorf("discount percentage must be within [0,100], got %v", pct)
	}
	return DiscountPolicy{Percentage: pct}, nil
}

func (p DiscountPolicy) Apply(base float64) float64 {
	return math.Round(base * (1 - p.Percentage/100))
}
