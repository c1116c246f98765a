package announce

import (
	"context"

	"example.com/extracurricular/internal/events"
)

// Noop discards roster events. Used when no brokers are configured.
type Noop struct{}

// Publish performs no action.
func (Noop) Publish(context.Context, events.RosterChanged) error { return nil }
