package hardware

import (
	"sync"

	"github.com/iammorganparry/relaypanel/internal/models"
)

// Sim is an in-memory board. Buttons idle high (pull-ups) and the relay starts off.
type Sim struct {
	mu      sync.Mutex
	levels  [models.ButtonCount]bool
	relay   bool
	drives  int
	readErr error
}

func NewSim() *Sim {
	s := &Sim{}
	for i := range s.levels {
		s.levels[i] = true
	}
	return s
}

func (s *Sim) ReadLevels() ([models.ButtonCount]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return [models.ButtonCount]bool{}, s.readErr
	}
	return s.levels, nil
}

func (s *Sim) Drive(on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.relay = on
	s.drives++
	return nil
}

// SetLevel sets the electrical level of button i.
func (s *Sim) SetLevel(i int, high bool) error {
	if err := models.ValidIndex(i); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.levels[i] = high
	return nil
}

// Press pulls button i low.
func (s *Sim) Press(i int) error { return s.SetLevel(i, false) }

// Release lets button i float back high.
func (s *Sim) Release(i int) error { return s.SetLevel(i, true) }

// Relay reports the last driven relay state.
func (s *Sim) Relay() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.relay
}

// Drives counts Drive calls.
func (s *Sim) Drives() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drives
}

// FailReads makes ReadLevels return err until called again with nil.
func (s *Sim) FailReads(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readErr = err
}
