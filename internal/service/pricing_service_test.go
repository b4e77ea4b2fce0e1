package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malshehri/groupbuy-checkout/internal/model"
)

func testCatalog() *PricingService {
	return NewPricingService([]model.Product{
		{ID: "iphone-16", Name: "iPhone 16", BasePrice: 799, Currency: "SAR"},
		{ID: "samsung-s25", Name: "Samsung Galaxy S25", BasePrice: 799, Currency: "SAR"},
		{ID: "samsung-fold6", Name: "Samsung Galaxy Z Fold6", BasePrice: 1799, Currency: "SAR"},
	}, 799, "SAR")
}

func TestPricingService_Price(t *testing.T) {
	pricing := testCatalog()

	t.Run("happy: known product", func(t *testing.T) {
		assert.Equal(t, 799.0, pricing.Price("samsung-s25"))
		assert.Equal(t, 1799.0, pricing.Price("samsung-fold6"))
	})

	t.Run("happy: unknown product falls back to default", func(t *testing.T) {
		assert.Equal(t, 799.0, pricing.Price("nokia-3310"))
		assert.Equal(t, 799.0, pricing.Price(""))
	})

	t.Run("happy: lookup is read-only", func(t *testing.T) {
		before := pricing.Price("iphone-16")
		pricing.Price("something-else")
		assert.Equal(t, before, pricing.Price("iphone-16"))
	})
}

func TestDiscountPolicy_Apply(t *testing.T) {
	t.Run("happy: storefront default discount", func(t *testing.T) {
		policy, err := NewDiscountPolicy(15)
		require.NoError(t, err)
		// 799 * 0.85 = 679.15, deal prices round to whole SAR
		assert.Equal(t, 679.0, policy.Apply(799))
	})

	t.Run("happy: zero and full discount", func(t *testing.T) {
		zero, err := NewDiscountPolicy(0)
		require.NoError(t, err)
		assert.Equal(t, 799.0, zero.Apply(799))

		full, err := NewDiscountPolicy(100)
		require.NoError(t, err)
		assert.Equal(t, 0.0, full.Apply(799))
	})

	t.Run("happy: output stays within [0, base]", func(t *testing.T) {
		for pct := 0.0; pct <= 100; pct += 5 {
			policy, err := NewDiscountPolicy(pct)
			require.NoError(t, err)
			for _, base := range []float64{1, 799, 999, 1199, 1799} {
				got := policy.Apply(base)
				assert.GreaterOrEqual(t, got, 0.0, fmt.Sprintf("pct=%v base=%v", pct, base))
				assert.LessOrEqual(t, got, base, fmt.Sprintf("pct=%v base=%v", pct, base))
			}
		}
	})

	t.Run("happy: rounds half up", func(t *testing.T) {
		policy, err := NewDiscountPolicy(50)
		require.NoError(t, err)
		assert.Equal(t, 400.0, policy.Apply(799)) // 399.5 rounds up
	})

	t.Run("bad: percentage outside range", func(t *testing.T) {
		_, err := NewDiscountPolicy(-1)
		assert.Error(t, err)

		_, err = NewDiscountPolicy(100.5)
		assert.Error(t, err)
	})
}
