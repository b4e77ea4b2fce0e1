package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malshehri/groupbuy-checkout/internal/gateway"
	"github.com/malshehri/groupbuy-checkout/internal/model"
)

// mockAdapter settles every valid request and counts invocations.
type mockAdapter struct {
	family model.MethodFamily
	calls  int32
	stall  bool
}

func (a *mockAdapter) Family() model.MethodFamily { return a.family }

func (a *mockAdapter) Charge(ctx context.Context, req model.ChargeRequest) model.ChargeResult {
	atomic.AddInt32(&a.calls, 1)
	if a.stall {
		<-ctx.Done()
		return model.Failed(model.KindTimeout, "no gateway response for %s within deadline", req.Method)
	}
	return model.Settled(model.Settlement{
		TransactionID: "mock_" + string(req.Method),
		Method:        req.Method,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Timestamp:     time.Now().UTC(),
	})
}

// memRecorder collects charges in memory; optionally fails every insert.
type memRecorder struct {
	mu      sync.Mutex
	charges []model.Charge
	fail    bool
}

func (r *memRecorder) Insert(ctx context.Context, c *model.Charge) error {
	if r.fail {
		return errors.New("storage unavailable")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = "mem-1"
	c.CreatedAt = time.Now().UTC()
	r.charges = append(r.charges, *c)
	return nil
}

func (r *memRecorder) last(t *testing.T) model.Charge {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.charges)
	return r.charges[len(r.charges)-1]
}

func allMockAdapters() []gateway.Adapter {
	return []gateway.Adapter{
		&mockAdapter{family: model.FamilyCard},
		&mockAdapter{family: model.FamilyPlatformWallet},
		&mockAdapter{family: model.FamilyCarrierWallet},
		&mockAdapter{family: model.FamilyBNPL},
	}
}

func newTestCheckout(t *testing.T, adapters []gateway.Adapter, rec ChargeRecorder) *CheckoutService {
	t.Helper()
	svc, err := NewCheckoutService(testCatalog(), NewRegistryService(), adapters, rec, time.Second)
	require.NoError(t, err)
	return svc
}

func TestNewCheckoutService(t *testing.T) {
	t.Run("bad: missing adapter family fails construction", func(t *testing.T) {
		_, err := NewCheckoutService(testCatalog(), NewRegistryService(), []gateway.Adapter{
			&mockAdapter{family: model.FamilyCard},
		}, &memRecorder{}, time.Second)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no adapter")
	})

	t.Run("bad: duplicate adapter family fails construction", func(t *testing.T) {
		_, err := NewCheckoutService(testCatalog(), NewRegistryService(), []gateway.Adapter{
			&mockAdapter{family: model.FamilyCard},
			&mockAdapter{family: model.FamilyCard},
		}, &memRecorder{}, time.Second)
		require.Error(t, err)
	})
}

func TestCheckoutService_Checkout(t *testing.T) {
	t.Run("happy: credit card checkout settles at the discounted price", func(t *testing.T) {
		rec := &memRecorder{}
		svc := newTestCheckout(t, allMockAdapters(), rec)

		res := svc.Checkout(context.Background(), CheckoutInput{
			ProductID:   "samsung-s25",
			Method:      model.MethodCreditCard,
			Platform:    model.PlatformAndroid,
			DiscountPct: 15,
		})

		require.True(t, res.Settled())
		assert.NotEmpty(t, res.Settlement.TransactionID)
		// 799 * 0.85 = 679.15, charged as whole SAR
		assert.Equal(t, 679.0, res.Settlement.Amount)
		assert.Equal(t, "SAR", res.Settlement.Currency)

		charge := rec.last(t)
		assert.Equal(t, "SETTLED", charge.Status)
		assert.Equal(t, 679.0, charge.Amount)
		assert.Equal(t, res.Settlement.TransactionID, charge.TransactionID)
	})

	t.Run("happy: unknown product charges the default price", func(t *testing.T) {
		rec := &memRecorder{}
		svc := newTestCheckout(t, allMockAdapters(), rec)

		res := svc.Checkout(context.Background(), CheckoutInput{
			ProductID:   "no-such-deal",
			Method:      model.MethodSTCPay,
			Platform:    model.PlatformIOS,
			DiscountPct: 0,
		})

		require.True(t, res.Settled())
		assert.Equal(t, 799.0, res.Settlement.Amount)
	})

	t.Run("bad: platform-mismatched wallet never reaches an adapter", func(t *testing.T) {
		adapters := allMockAdapters()
		rec := &memRecorder{}
		svc := newTestCheckout(t, adapters, rec)

		res := svc.Checkout(context.Background(), CheckoutInput{
			ProductID:   "samsung-s25",
			Method:      model.MethodApplePay,
			Platform:    model.PlatformAndroid,
			DiscountPct: 15,
		})

		require.False(t, res.Settled())
		assert.Equal(t, model.KindUnsupported, res.Failure.Kind)
		for _, a := range adapters {
			assert.Zero(t, atomic.LoadInt32(&a.(*mockAdapter).calls), "no adapter may be invoked on a mismatch")
		}

		charge := rec.last(t)
		assert.Equal(t, "FAILED", charge.Status)
		assert.Equal(t, string(model.KindUnsupported), charge.FailureKind)
	})

	t.Run("bad: unknown method value fails instead of panicking", func(t *testing.T) {
		adapters := allMockAdapters()
		rec := &memRecorder{}
		svc := newTestCheckout(t, adapters, rec)

		res := svc.Checkout(context.Background(), CheckoutInput{
			ProductID:   "iphone-16",
			Method:      model.Method("cash-on-delivery"),
			Platform:    model.PlatformIOS,
			DiscountPct: 15,
		})

		require.False(t, res.Settled())
		assert.Equal(t, model.KindUnsupported, res.Failure.Kind)
		for _, a := range adapters {
			assert.Zero(t, atomic.LoadInt32(&a.(*mockAdapter).calls))
		}
	})

	t.Run("bad: out-of-range discount is an invalid request", func(t *testing.T) {
		adapters := allMockAdapters()
		svc := newTestCheckout(t, adapters, &memRecorder{})

		res := svc.Checkout(context.Background(), CheckoutInput{
			ProductID:   "samsung-s25",
			Method:      model.MethodCreditCard,
			Platform:    model.PlatformAndroid,
			DiscountPct: 120,
		})

		require.False(t, res.Settled())
		assert.Equal(t, model.KindInvalidRequest, res.Failure.Kind)
		for _, a := range adapters {
			assert.Zero(t, atomic.LoadInt32(&a.(*mockAdapter).calls))
		}
	})

	t.Run("bad: stalled adapter times out within the bound", func(t *testing.T) {
		adapters := []gateway.Adapter{
			&mockAdapter{family: model.FamilyCard, stall: true},
			&mockAdapter{family: model.FamilyPlatformWallet},
			&mockAdapter{family: model.FamilyCarrierWallet},
			&mockAdapter{family: model.FamilyBNPL},
		}
		svc, err := NewCheckoutService(testCatalog(), NewRegistryService(), adapters, &memRecorder{}, 50*time.Millisecond)
		require.NoError(t, err)

		start := time.Now()
		res := svc.Checkout(context.Background(), CheckoutInput{
			ProductID:   "samsung-s25",
			Method:      model.MethodCreditCard,
			Platform:    model.PlatformAndroid,
			DiscountPct: 15,
		})

		require.False(t, res.Settled())
		assert.Equal(t, model.KindTimeout, res.Failure.Kind)
		assert.Less(t, time.Since(start), 500*time.Millisecond)
	})

	t.Run("happy: recorder failure never flips a settled outcome", func(t *testing.T) {
		svc := newTestCheckout(t, allMockAdapters(), &memRecorder{fail: true})

		res := svc.Checkout(context.Background(), CheckoutInput{
			ProductID:   "samsung-s25",
			Method:      model.MethodTabby,
			Platform:    model.PlatformIOS,
			DiscountPct: 15,
		})

		require.True(t, res.Settled())
	})

	t.Run("happy: concurrent checkouts are independent", func(t *testing.T) {
		rec := &memRecorder{}
		svc := newTestCheckout(t, allMockAdapters(), rec)

		var wg sync.WaitGroup
		results := make([]model.ChargeResult, 2)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = svc.Checkout(context.Background(), CheckoutInput{
					ProductID:   "samsung-s25",
					Method:      model.MethodSTCPay,
					Platform:    model.PlatformAndroid,
					DiscountPct: 15,
				})
			}(i)
		}
		wg.Wait()

		assert.True(t, results[0].Settled())
		assert.True(t, results[1].Settled())
	})
}
