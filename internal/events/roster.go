// Package events defines roster event payloads shared with downstream consumers.
package events

import "time"

// RosterAction enumerates the roster mutations that emit events.
type RosterAction string

const (
	ActionSignup     RosterAction = "signup"
	ActionUnregister RosterAction = "unregister"
)

// RosterChanged is emitted after a roster mutation commits to the store.
type RosterChanged struct {
	EventID        string       `json:"event_id"`
	Activity       string       `json:"activity"`
	Email          string       `json:"email"`
	Action         RosterAction `json:"action"`
	SpotsRemaining int          `json:"spots_remaining"`
	OccurredAt     time.Time    `json:"occurred_at"`
}
