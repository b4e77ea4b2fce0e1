package gateway

import (
	"context"

	"github.com/malshehri/groupbuy-checkout/internal/model"
)

// PlatformWalletAdapter serves the OS-exclusive wallets. Apple Pay and
// Google Pay have separate upstream integrations, so the adapter routes
// by method after the shared platform check rejects mismatches.
type PlatformWalletAdapter struct {
	applePay  Gateway
	googlePay Gateway
}

func NewPlatformWalletAdapter(applePay, googlePay Gateway) *PlatformWalletAdapter {
	return &PlatformWalletAdapter{applePay: applePay, googlePay: googlePay}
}

func (a *PlatformWalletAdapter) Family() model.MethodFamily {
	return model.FamilyPlatformWallet
}

func (a *PlatformWalletAdapter) Charge(ctx context.Context, req model.ChargeRequest) model.ChargeResult {
	if res, rejected := validate(req); rejected {
		return res
	}

	switch req.Method {
	case model.MethodApplePay:
		return invoke(ctx, a.applePay, req)
	case model.MethodGooglePay:
		return invoke(ctx, a.googlePay, req)
	}
	return model.Failed(model.KindUnsupported, "%s is not a platform wallet", req.Method)
}
