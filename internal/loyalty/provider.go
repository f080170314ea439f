package loyalty

import (
	"context"
	"time"
)

// Charge describes a settlement attempt sent to the payment provider.
type Charge struct {
	TransactionID string
	Type          Type
	Amount        int64
	PaymentMethod string
}

// Provider is the external settlement collaborator. Implementations decide
// whether a charge settles; the ledger records the outcome either way.
type Provider interface {
	Attempt(ctx context.Context, charge Charge) error
}

// StaticProvider approves every charge after an optional delay, standing in
// for a real gateway round trip.
type StaticProvider struct {
	Delay time.Duration
}

// Attempt waits out the configured delay and approves the charge.
func (p StaticProvider) Attempt(ctx context.Context, _ Charge) error {
	if p.Delay <= 0 {
		return nil
	}
	select {
	case <-time.After(p.Delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
