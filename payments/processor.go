package payments

import (
	"context"
	"fmt"
)

// Intent is the processor's handle for an in-progress charge attempt.
type Intent struct {
	ID            string
	ClientSecret  string
	Status        string
	PaymentMethod string
}

const IntentStatusSucceeded = "succeeded"

// Processor abstracts the external payment provider. Amounts are minor units
// (cents); metadata tags the intent with booking/user/session identifiers so
// charges stay traceable on the provider's side.
type Processor interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (*Intent, error)
	RetrieveIntent(ctx context.Context, intentID string) (*Intent, error)
}

type ProviderConfig struct {
	SecretKey string
}

var providers = map[string]func(ProviderConfig) Processor{
	"stripe": func(cfg ProviderConfig) Processor { return NewStripeClient(cfg.SecretKey) },
}

// NewProcessor resolves a provider by name from the dispatch table.
func NewProcessor(name string, cfg ProviderConfig) (Processor, error) {
	factory, ok := providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown payment provider %q", name)
	}
	return factory(cfg), nil
}
