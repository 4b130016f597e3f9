// Package analytics carries the telemetry side-channel of the conversation
// core. Handlers return events instead of firing them, so the decision logic
// stays pure; the reporter ships a whole turn's batch at once.
package analytics

import "time"

// Event is one telemetry data point produced by a handler.
type Event struct {
	Category       string `json:"category"`
	Action         string `json:"action"`
	Label          string `json:"label"`
	NonInteractive bool   `json:"nonInteractive,omitempty"`
}

// Batch is everything a single conversation turn emitted, stamped with the
// user and the state the turn started in. ID lets the sink deduplicate
// batches delivered more than once.
type Batch struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	State      string    `json:"state"`
	Events     []Event   `json:"events"`
	OccurredAt time.Time `json:"occurredAt"`
}
