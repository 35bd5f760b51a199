// Package hardware defines the boundary to the GPIO driver. Button inputs are
// reported as raw electrical levels; the buttons package owns the active-low
// inversion.
package hardware

import "github.com/iammorganparry/relaypanel/internal/models"

// Inputs samples the button pins. true means the pin reads electrical high.
type Inputs interface {
	ReadLevels() ([models.ButtonCount]bool, error)
}

// Relay drives the relay output.
type Relay interface {
	Drive(on bool) error
}
