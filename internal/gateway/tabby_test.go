package gateway

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malshehri/groupbuy-checkout/internal/model"
)

func TestSplitInstallments(t *testing.T) {
	t.Run("happy: splits sum to the amount exactly", func(t *testing.T) {
		for _, amount := range []float64{799, 679, 100.01, 0.03, 1199} {
			plan := SplitInstallments(amount)
			minor := int64(amount*100 + 0.5)

			require.Equal(t, 4, plan.Count)
			total := plan.FirstAmountMinor + int64(plan.Count-1)*plan.AmountMinor
			assert.Equal(t, minor, total, "amount %v", amount)
		}
	})

	t.Run("happy: even split has no remainder", func(t *testing.T) {
		plan := SplitInstallments(799)
		assert.Equal(t, int64(19975), plan.AmountMinor)
		assert.Equal(t, plan.AmountMinor, plan.FirstAmountMinor)
	})

	t.Run("happy: remainder lands on the first installment", func(t *testing.T) {
		plan := SplitInstallments(100.01) // 10001 minor units
		assert.Equal(t, int64(2500), plan.AmountMinor)
		assert.Equal(t, int64(2501), plan.FirstAmountMinor)
	})
}

func TestBNPLAdapter_Charge(t *testing.T) {
	t.Run("happy: settlement carries the installment plan", func(t *testing.T) {
		gw := &fakeGateway{}
		adapter := NewBNPLAdapter(gw)

		req := cardRequest(799)
		req.Method = model.MethodTabby
		res := adapter.Charge(context.Background(), req)

		require.True(t, res.Settled())
		require.NotNil(t, res.Settlement.Installments)
		assert.Equal(t, 4, res.Settlement.Installments.Count)
		assert.Equal(t, int64(19975), res.Settlement.Installments.AmountMinor)
	})

	t.Run("bad: no plan on a rejected charge", func(t *testing.T) {
		gw := &fakeGateway{err: assert.AnError}
		adapter := NewBNPLAdapter(gw)

		req := cardRequest(799)
		req.Method = model.MethodTabby
		res := adapter.Charge(context.Background(), req)

		require.False(t, res.Settled())
		assert.Equal(t, model.KindGatewayRejected, res.Failure.Kind)
	})
}
