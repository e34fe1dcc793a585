package payment

import (
	"fmt"

	"github.com/localhy/credit-ledger/internal/domain/entity"
	errs "github.com/localhy/credit-ledger/internal/domain/error"
	port "github.com/localhy/credit-ledger/internal/domain/port/payment"
)

// Registry maps envelope provider tags to gateways
type Registry map[entity.PaymentProvider]port.Gateway

// NewRegistry indexes gateways by provider
func NewRegistry(gateways ...port.Gateway) Registry {
	r := make(Registry, len(gateways))
	for _, g := range gateways {
		r[g.Provider()] = g
	}
	return r
}

// Lookup returns the gateway for provider
func (r Registry) Lookup(provider string) (port.Gateway, error) {
	p, err := entity.ParsePaymentProvider(provider)
	if err != nil {
		return nil, err
	}
	g, ok := r[p]
	if !ok {
		return nil, fmt.Errorf("%w: %q has no gateway", errs.ErrUnknownProvider, provider)
	}
	return g, nil
}
