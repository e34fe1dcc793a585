package metrics

import "github.com/localhy/credit-ledger/internal/domain/port/core"

// Noop discards all measurements
type Noop struct{}

var _ core.Metrics = Noop{}

// ObserveMutation does nothing
func (Noop) ObserveMutation(string, string, core.Duration) {}

// IncWebhook does nothing
func (Noop) IncWebhook(string, string) {}

// IncPaidAction does nothing
func (Noop) IncPaidAction(string, string) {}

// IncFeedDropped does nothing
func (Noop) IncFeedDropped(string) {}
