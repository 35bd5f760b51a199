// Package relay owns the relay output and the auto/manual mode state machine.
//
// In manual mode the operator sets the relay directly. In auto mode a press
// edge on a button with a configured session makes that session current and
// turns the relay on. The session stays latched until another configured
// button is pressed or auto mode is switched off; releasing a button never
// turns the relay off.
package relay

import (
	"log/slog"

	"github.com/iammorganparry/relaypanel/internal/hardware"
	"github.com/iammorganparry/relaypanel/internal/models"
)

// PressReader exposes the pressed flags sampled for the current tick.
type PressReader interface {
	Pressed() [models.ButtonCount]bool
}

// SessionLookup resolves the session assigned to a button ("" when unconfigured).
type SessionLookup interface {
	Lookup(i int) string
}

// Controller is not safe for concurrent use; the device loop serializes access.
type Controller struct {
	out      hardware.Relay
	presses  PressReader
	sessions SessionLookup
	logger   *slog.Logger

	on      bool
	auto    bool
	current string

	// previouslyPressed holds the flags seen at the last evaluation.
	previouslyPressed [models.ButtonCount]bool
}

// New returns a controller in manual mode with the relay driven off.
func New(out hardware.Relay, presses PressReader, sessions SessionLookup, logger *slog.Logger) *Controller {
	c := &Controller{
		out:      out,
		presses:  presses,
		sessions: sessions,
		logger:   logger,
	}
	c.drive(false)
	return c
}

// SetRelay applies an operator command. It is applied in either mode.
func (c *Controller) SetRelay(on bool) {
	c.drive(on)
}

// SetAutoMode switches between auto and manual mode. Entering auto mode
// seeds the edge memory from the current flags so a button already held
// down does not fire. Leaving it clears the session and forces the relay off.
// Calls that do not change the mode are no-ops.
func (c *Controller) SetAutoMode(enabled bool) {
	if enabled == c.auto {
		return
	}
	c.auto = enabled

	if enabled {
		c.previouslyPressed = c.presses.Pressed()
		c.logger.Info("auto relay enabled")
		return
	}

	c.current = ""
	c.drive(false)
	c.logger.Info("auto relay disabled, relay forced off")
}

// Evaluate runs the auto-mode transition rule once. Call it after the button
// state was refreshed for this tick.
func (c *Controller) Evaluate() {
	if !c.auto {
		return
	}

	pressed := c.presses.Pressed()
	fired := false
	for i := range pressed {
		if fired || !pressed[i] || c.previouslyPressed[i] {
			continue
		}
		session := c.sessions.Lookup(i)
		if session == "" {
			continue
		}
		fired = true
		if session != c.current {
			c.logger.Info("session activated", "button", i, "session", session, "previous", c.current)
		}
		c.current = session
		c.drive(true)
	}
	c.previouslyPressed = pressed
}

func (c *Controller) AutoMode() bool { return c.auto }

func (c *Controller) RelayOn() bool { return c.on }

// CurrentSession is "" whenever no session is active, including all of manual mode.
func (c *Controller) CurrentSession() string { return c.current }

func (c *Controller) drive(on bool) {
	c.on = on
	if err := c.out.Drive(on); err != nil {
		c.logger.Error("drive relay failed", "on", on, "error", err)
	}
}
