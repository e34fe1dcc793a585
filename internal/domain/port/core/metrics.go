package core

// Metrics records business-level measurements
type Metrics interface {
	// ObserveMutation records one mutator call by reason and outcome
	ObserveMutation(reason string, outcome string, elapsed Duration)
	// IncWebhook counts webhook deliveries by provider and final state
	IncWebhook(provider string, state string)
	// IncPaidAction counts paid-action confirmations by action and outcome
	IncPaidAction(action string, outcome string)
	// IncFeedDropped counts change-feed events dropped for a slow subscriber
	IncFeedDropped(eventType string)
}
