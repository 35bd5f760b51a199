// Package status composes the device state into snapshots for polling clients.
package status

import (
	"github.com/iammorganparry/relaypanel/internal/models"
)

type PressReader interface {
	Pressed() [models.ButtonCount]bool
}

type RelayReader interface {
	AutoMode() bool
	RelayOn() bool
	CurrentSession() string
}

// Aggregator reads, never mutates. It does not refresh the buttons: the loop
// refreshes exactly once per tick so the reported buttons match what the
// relay controller evaluated.
type Aggregator struct {
	presses PressReader
	relay   RelayReader
}

func New(presses PressReader, relay RelayReader) *Aggregator {
	return &Aggregator{presses: presses, relay: relay}
}

func (a *Aggregator) Snapshot() models.StatusSnapshot {
	return models.StatusSnapshot{
		AutoMode:       a.relay.AutoMode(),
		CurrentSession: a.relay.CurrentSession(),
		Pressed:        a.presses.Pressed(),
		RelayOn:        a.relay.RelayOn(),
	}
}
