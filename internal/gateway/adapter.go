package gateway

import (
	"context"
	"strings"

	"github.com/malshehri/groupbuy-checkout/internal/model"
)

// Adapter executes a charge for one family of payment methods. The
// contract every implementation honours:
//
//   - Charge never panics across the boundary and never returns later
//     than ctx allows; a gateway that stalls past the deadline yields
//     Failure{TIMEOUT}.
//   - Malformed requests fail with INVALID_REQUEST before any upstream
//     call; platform-mismatched requests fail with UNSUPPORTED likewise.
//   - Every failure path resolves to a ChargeFailure, never an error.
type Adapter interface {
	Family() model.MethodFamily
	Charge(ctx context.Context, req model.ChargeRequest) model.ChargeResult
}

// validate runs the pre-call checks shared by all adapters. Returns a
// terminal result and true when the request must be rejected without
// touching the gateway.
func validate(req model.ChargeRequest) (model.ChargeResult, bool) {
	if req.Amount <= 0 {
		return model.Failed(model.KindInvalidRequest, "amount must be positive, got %v", req.Amount), true
	}
	if strings.TrimSpace(req.Description) == "" {
		return model.Failed(model.KindInvalidRequest, "description must not be empty"), true
	}
	if !req.Method.AvailableOn(req.Platform) {
		return model.Failed(model.KindUnsupported, "%s is not available on %s", req.Method, req.Platform), true
	}
	return model.ChargeResult{}, false
}

// invoke calls the gateway without trusting it to honour ctx: the call
// runs in its own goroutine and the deadline wins regardless.
func invoke(ctx context.Context, g Gateway, req model.ChargeRequest) model.ChargeResult {
	type outcome struct {
		resp *Response
		err  error
	}

	ch := make(chan outcome, 1)
	go func() {
		resp, err := g.Charge(ctx, req.Amount, req.Currency, req.Description, req.Metadata)
		ch <- outcome{resp: resp, err: err}
	}()

	select {
	case <-ctx.Done():
		return model.Failed(model.KindTimeout, "no gateway response for %s within deadline", req.Method)
	case out := <-ch:
		if out.err != nil {
			if ctx.Err() != nil {
				return model.Failed(model.KindTimeout, "no gateway response for %s within deadline", req.Method)
			}
			return model.Failed(model.KindGatewayRejected, "gateway declined %s charge: %v", req.Method, out.err)
		}
		return model.Settled(model.Settlement{
			TransactionID: out.resp.TransactionID,
			Method:        req.Method,
			Amount:        req.Amount,
			Currency:      req.Currency,
			Timestamp:     out.resp.Timestamp,
		})
	}
}
