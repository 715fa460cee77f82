package log

import (
	"time"

	"github.com/mash-protocol/typestate-go/pkg/typestate"
)

// Observer records typed transitions as typestate-layer events.
type Observer struct {
	logger       Logger
	sessionID    string
	peripheralID string
	now          func() time.Time
}

// NewObserver returns an Observer logging transitions of the peripheral
// instance id under session.
func NewObserver(logger Logger, session, id string) *Observer {
	return &Observer{
		logger:       OrNoop(logger),
		sessionID:    session,
		peripheralID: id,
		now:          time.Now,
	}
}

// Observe implements typestate.Observer.
func (o *Observer) Observe(c typestate.Change) {
	o.logger.Log(Event{
		Timestamp:    o.now(),
		SessionID:    o.sessionID,
		Layer:        LayerTypestate,
		Category:     CategoryState,
		PeripheralID: o.peripheralID,
		Peripheral:   c.Peripheral,
		StateChange: &StateChangeEvent{
			Edge:     c.Edge,
			OldState: c.From,
			NewState: c.To,
		},
	})
}

// Compile-time interface satisfaction check.
var _ typestate.Observer = (*Observer)(nil)
