// Package buttons tracks the live pressed state of the panel buttons.
package buttons

import (
	"fmt"

	"github.com/iammorganparry/relaypanel/internal/hardware"
	"github.com/iammorganparry/relaypanel/internal/models"
)

// State holds the pressed flags from the most recent Refresh. Reads never
// sample the hardware, so every read within one tick sees the same values.
type State struct {
	in      hardware.Inputs
	pressed [models.ButtonCount]bool
}

func New(in hardware.Inputs) *State {
	return &State{in: in}
}

// Refresh samples the inputs. Inputs are active-low: a low pin is a press.
// On error the previous flags are kept.
func (s *State) Refresh() error {
	levels, err := s.in.ReadLevels()
	if err != nil {
		return fmt.Errorf("read button levels: %w", err)
	}
	for i, high := range levels {
		s.pressed[i] = !high
	}
	return nil
}

func (s *State) IsPressed(i int) (bool, error) {
	if err := models.ValidIndex(i); err != nil {
		return false, err
	}
	return s.pressed[i], nil
}

// Pressed returns a copy of all flags in button order.
func (s *State) Pressed() [models.ButtonCount]bool {
	return s.pressed
}
