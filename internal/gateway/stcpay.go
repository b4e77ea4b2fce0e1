package gateway

import (
	"context"

	"github.com/malshehri/groupbuy-checkout/internal/model"
)

// CarrierWalletAdapter charges STC Pay. The carrier exposes distinct
// endpoints per mobile OS, so the adapter picks the gateway from the
// request's platform; the method itself is available on both.
type CarrierWalletAdapter struct {
	ios     Gateway
	android Gateway
}

func NewCarrierWalletAdapter(ios, android Gateway) *CarrierWalletAdapter {
	return &CarrierWalletAdapter{ios: ios, android: android}
}

func (a *CarrierWalletAdapter) Family() model.MethodFamily {
	return model.FamilyCarrierWallet
}

func (a *CarrierWalletAdapter) Charge(ctx context.Context, req model.ChargeRequest) model.ChargeResult {
	if res, rejected := validate(req); rejected {
		return res
	}

	gw := a.android
	if req.Platform == model.PlatformIOS {
		gw = a.ios
	}
	return invoke(ctx, gw, req)
}
