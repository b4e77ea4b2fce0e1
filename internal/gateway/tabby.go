package gateway

import (
	"context"
	"math"

	"github.com/malshehri/groupbuy-checkout/internal/model"
)

const installmentCount = 4

// BNPLAdapter charges through Tabby and attaches the pay-later split to
// the settlement. The split is computed in minor currency units so the
// four installments sum to the charged amount exactly; the remainder of
// the division goes on the first installment.
type BNPLAdapter struct {
	gw Gateway
}

func NewBNPLAdapter(gw Gateway) *BNPLAdapter {
	return &BNPLAdapter{gw: gw}
}

func (a *BNPLAdapter) Family() model.MethodFamily {
	return model.FamilyBNPL
}

func (a *BNPLAdapter) Charge(ctx context.Context, req model.ChargeRequest) model.ChargeResult {
	if res, rejected := validate(req); rejected {
		return res
	}

	res := invoke(ctx, a.gw, req)
	if res.Settled() {
		plan := SplitInstallments(req.Amount)
		res.Settlement.Installments = &plan
	}
	return res
}

// SplitInstallments divides amount into four minor-unit exact
// installments.
func SplitInstallments(amount float64) model.InstallmentPlan {
	minor := int64(math.Round(amount * 100))
	per := minor / installmentCount
	rem := minor % installmentCount
	return model.InstallmentPlan{
		Count:            installmentCount,
		AmountMinor:      per,
		FirstAmountMinor: per + rem,
	}
}
