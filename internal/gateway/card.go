package gateway

import (
	"context"

	"github.com/malshehri/groupbuy-checkout/internal/model"
)

// CardAdapter charges credit/debit and mada cards through a
// Moyasar-shaped gateway. Both card schemes share one integration and
// work on every platform.
type CardAdapter struct {
	gw Gateway
}

func NewCardAdapter(gw Gateway) *CardAdapter {
	return &CardAdapter{gw: gw}
}

func (a *CardAdapter) Family() model.MethodFamily {
	return model.FamilyCard
}

func (a *CardAdapter) Charge(ctx context.Context, req model.ChargeRequest) model.ChargeResult {
	if res, rejected := validate(req); rejected {
		return res
	}
	return invoke(ctx, a.gw, req)
}
