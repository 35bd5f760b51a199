// Package device runs the control loop that owns all live device state.
//
// One goroutine (Run) refreshes the buttons and evaluates the relay every
// tick. Client requests are handed to that goroutine and applied between
// ticks, one at a time, so a status read always sees fully applied
// mutations and the relay edge memory is never touched concurrently.
package device

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/iammorganparry/relaypanel/internal/buttons"
	"github.com/iammorganparry/relaypanel/internal/models"
	"github.com/iammorganparry/relaypanel/internal/relay"
	"github.com/iammorganparry/relaypanel/internal/sessions"
	"github.com/iammorganparry/relaypanel/internal/status"
)

// ErrStopped is returned to requests submitted after Run has returned.
var ErrStopped = errors.New("device loop stopped")

type request struct {
	fn     func() error
	result chan error
}

type Loop struct {
	registry *sessions.Registry
	buttons  *buttons.State
	relay    *relay.Controller
	status   *status.Aggregator
	interval time.Duration
	logger   *slog.Logger

	requests chan request
	done     chan struct{}
	started  atomic.Bool
	lastTick atomic.Int64

	readFailing bool
}

func New(
	registry *sessions.Registry,
	btns *buttons.State,
	ctrl *relay.Controller,
	agg *status.Aggregator,
	interval time.Duration,
	logger *slog.Logger,
) *Loop {
	return &Loop{
		registry: registry,
		buttons:  btns,
		relay:    ctrl,
		status:   agg,
		interval: interval,
		logger:   logger,
		requests: make(chan request),
		done:     make(chan struct{}),
	}
}

// Run blocks until ctx is cancelled. It must be called at most once.
func (l *Loop) Run(ctx context.Context) error {
	if !l.started.CompareAndSwap(false, true) {
		return fmt.Errorf("device loop already running")
	}
	defer close(l.done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.logger.Info("device loop started", "interval", l.interval)
	l.Tick()

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("device loop stopped")
			return ctx.Err()
		case <-ticker.C:
			l.Tick()
		case req := <-l.requests:
			req.result <- req.fn()
		}
	}
}

// Tick refreshes the buttons then evaluates auto mode. Outside of tests it is
// only called from Run.
func (l *Loop) Tick() {
	if err := l.buttons.Refresh(); err != nil {
		if !l.readFailing {
			l.logger.Warn("button sampling failed, keeping previous state", "error", err)
		}
		l.readFailing = true
	} else if l.readFailing {
		l.logger.Info("button sampling recovered")
		l.readFailing = false
	}
	l.relay.Evaluate()
	l.lastTick.Store(time.Now().UnixNano())
}

// Exec runs fn on the loop goroutine and returns its error. If ctx ends after
// the loop accepted the request, fn still runs to completion.
func (l *Loop) Exec(ctx context.Context, fn func() error) error {
	req := request{fn: fn, result: make(chan error, 1)}
	select {
	case l.requests <- req:
	case <-l.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-req.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Loop) Status(ctx context.Context) (models.StatusSnapshot, error) {
	var snap models.StatusSnapshot
	err := l.Exec(ctx, func() error {
		snap = l.status.Snapshot()
		return nil
	})
	return snap, err
}

func (l *Loop) Sessions(ctx context.Context) ([models.ButtonCount]string, error) {
	var all [models.ButtonCount]string
	err := l.Exec(ctx, func() error {
		all = l.registry.All()
		return nil
	})
	return all, err
}

func (l *Loop) SetSession(ctx context.Context, button int, session string) error {
	return l.Exec(ctx, func() error {
		if err := l.registry.Set(button, session); err != nil {
			return err
		}
		l.logger.Info("button session configured", "button", button, "session", session)
		return nil
	})
}

func (l *Loop) SetAutoMode(ctx context.Context, enabled bool) error {
	return l.Exec(ctx, func() error {
		l.relay.SetAutoMode(enabled)
		return nil
	})
}

func (l *Loop) SetRelay(ctx context.Context, on bool) error {
	return l.Exec(ctx, func() error {
		l.relay.SetRelay(on)
		return nil
	})
}

// Check reports whether the loop is running and ticked recently.
func (l *Loop) Check() error {
	select {
	case <-l.done:
		return ErrStopped
	default:
	}
	if !l.started.Load() {
		return fmt.Errorf("device loop not started")
	}
	last := time.Unix(0, l.lastTick.Load())
	if stale := time.Since(last); stale > 10*l.interval+time.Second {
		return fmt.Errorf("last tick %s ago", stale.Round(time.Millisecond))
	}
	return nil
}
