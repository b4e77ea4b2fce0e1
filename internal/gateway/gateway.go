package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Response is what an upstream payment gateway reports for an accepted
// charge.
type Response struct {
	TransactionID string
	Timestamp     time.Time
}

// Gateway is the single call each upstream collaborator exposes. A nil
// error means the charge was accepted upstream.
type Gateway interface {
	Charge(ctx context.Context, amount float64, currency, description string, metadata map[string]string) (*Response, error)
}

// SimulatedGateway stands in for a real gateway integration. It accepts
// every charge after a fixed latency and issues prefix-tagged transaction
// IDs, mirroring the sandbox behaviour of the real providers.
type SimulatedGateway struct {
	name    string
	prefix  string
	latency time.Duration
}

func NewSimulatedGateway(name, prefix string, latency time.Duration) *SimulatedGateway {
	return &SimulatedGateway{name: name, prefix: prefix, latency: latency}
}

func (g *SimulatedGateway) Charge(ctx context.Context, amount float64, currency, description string, metadata map[string]string) (*Response, error) {
	log.Debug().
		Str("gateway", g.name).
		Float64("amount", amount).
		Str("currency", currency).
		Msg("simulated gateway charge")

	select {
	case <-time.After(g.latency):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return &Response{
		TransactionID: fmt.Sprintf("%s_%s", g.prefix, uuid.NewString()),
		Timestamp:     time.Now().UTC(),
	}, nil
}

// DefaultGateways wires one simulated gateway per integration, with
// latencies proportional to the sandbox delays of the real providers.
// unit is the base latency (1s in production, microseconds in tests).
type DefaultGateways struct {
	Moyasar       Gateway
	ApplePay      Gateway
	GooglePay     Gateway
	STCPayIOS     Gateway
	STCPayAndroid Gateway
	Tabby         Gateway
}

func NewDefaultGateways(unit time.Duration) *DefaultGateways {
	return &DefaultGateways{
		Moyasar:       NewSimulatedGateway("moyasar", "moyasar", 2*unit),
		ApplePay:      NewSimulatedGateway("apple-pay", "apple_pay", unit*3/2),
		GooglePay:     NewSimulatedGateway("google-pay", "google_pay", unit*3/2),
		STCPayIOS:     NewSimulatedGateway("stc-pay-ios", "stc_pay_ios", unit*9/5),
		STCPayAndroid: NewSimulatedGateway("stc-pay-android", "stc_pay_android", unit*9/5),
		Tabby:         NewSimulatedGateway("tabby", "tabby", unit*11/5),
	}
}
