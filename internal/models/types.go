package models

import (
	"errors"
	"fmt"
)

// ButtonCount is the number of momentary buttons wired to the panel.
const ButtonCount = 5

var (
	// ErrInvalidIndex is returned when a button index is outside [0, ButtonCount).
	ErrInvalidIndex = errors.New("invalid button index")
	// ErrStorage is returned when the persistence layer could not commit a write.
	ErrStorage = errors.New("storage failure")
)

// ValidIndex returns ErrInvalidIndex (wrapped with the index) when i is out of range.
func ValidIndex(i int) error {
	if i < 0 || i >= ButtonCount {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, i)
	}
	return nil
}

// StatusSnapshot is a point-in-time view of the device, built fresh per query.
type StatusSnapshot struct {
	AutoMode       bool
	CurrentSession string
	Pressed        [ButtonCount]bool
	RelayOn        bool
}

// Wire encoding of a button at the API boundary (active-low).
const (
	WirePressed  = 0
	WireReleased = 1
)

// StatusResponse is returned from GET /api/status.
type StatusResponse struct {
	AutoRelay      bool             `json:"autoRelay"`
	CurrentSession string           `json:"currentSession,omitempty"`
	Buttons        [ButtonCount]int `json:"buttons"`
	Relay          bool             `json:"relay"`
}

// NewStatusResponse converts a snapshot to its wire form.
func NewStatusResponse(s StatusSnapshot) StatusResponse {
	resp := StatusResponse{
		AutoRelay:      s.AutoMode,
		CurrentSession: s.CurrentSession,
		Relay:          s.RelayOn,
	}
	for i, pressed := range s.Pressed {
		if pressed {
			resp.Buttons[i] = WirePressed
		} else {
			resp.Buttons[i] = WireReleased
		}
	}
	return resp
}

// AutoRelayRequest is the body for POST /api/auto-relay.
type AutoRelayRequest struct {
	Enabled *bool `json:"enabled"`
}

// ButtonConfigResponse is returned from GET /api/button-config.
type ButtonConfigResponse struct {
	Sessions [ButtonCount]string `json:"sessions"`
}

// ButtonConfigRequest is the body for POST /api/button-config.
type ButtonConfigRequest struct {
	Button  *int   `json:"button"`
	Session string `json:"session"`
}

// RelayRequest is the body for POST /api/relay.
type RelayRequest struct {
	On *bool `json:"on"`
}

// SimButtonRequest is the body for POST /api/sim/buttons/{index}.
type SimButtonRequest struct {
	Pressed bool `json:"pressed"`
}

// HealthResponse is returned from GET /health.
type HealthResponse struct {
	Status string       `json:"status"`
	DB     ServiceCheck `json:"db"`
	Loop   ServiceCheck `json:"loop"`
}

type ServiceCheck struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the JSON body written for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}
