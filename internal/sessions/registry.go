// Package sessions maps each button index to the operator-assigned session
// label and persists the mapping through a key-value store.
package sessions

import (
	"fmt"
	"sync"

	"github.com/iammorganparry/relaypanel/internal/models"
)

// KV is the persistence collaborator. Put must be durable when it returns nil.
type KV interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
}

// Key returns the store key holding the session for button i.
func Key(i int) string {
	return fmt.Sprintf("button%d", i)
}

// Registry owns the session label of every button.
type Registry struct {
	kv    KV
	mu    sync.RWMutex
	slots [models.ButtonCount]string
}

// Load reads all persisted slots. Missing keys are unconfigured buttons.
func Load(kv KV) (*Registry, error) {
	r := &Registry{kv: kv}
	for i := range r.slots {
		v, ok, err := kv.Get(Key(i))
		if err != nil {
			return nil, fmt.Errorf("load session %d: %w", i, err)
		}
		if ok {
			r.slots[i] = string(v)
		}
	}
	return r, nil
}

// All returns the five session labels in button order.
func (r *Registry) All() [models.ButtonCount]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.slots
}

// Lookup returns the session for button i, or "" when i is out of range.
func (r *Registry) Lookup(i int) string {
	if models.ValidIndex(i) != nil {
		return ""
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.slots[i]
}

// Set assigns session to button i. The value is written to the store first;
// the in-memory slot only changes once the write succeeded. An empty session
// clears the slot.
func (r *Registry) Set(i int, session string) error {
	if err := models.ValidIndex(i); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.kv.Put(Key(i), []byte(session)); err != nil {
		return fmt.Errorf("%w: set session %d: %w", models.ErrStorage, i, err)
	}
	r.slots[i] = session
	return nil
}
