package api

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iammorganparry/relaypanel/internal/device"
	"github.com/iammorganparry/relaypanel/internal/hardware"
	"github.com/iammorganparry/relaypanel/internal/store"
)

// NewRouter creates the Chi router with all routes and middleware. sim may be
// nil; the simulation routes are only mounted for the simulated board.
func NewRouter(
	db *store.DB,
	loop *device.Loop,
	sim *hardware.Sim,
	requestTimeout time.Duration,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (runs on ALL routes including /health)
	r.Use(CORS)
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	// Handlers
	healthH := NewHealthHandler(db, loop)
	controlH := NewControlHandler(loop)
	configH := NewButtonConfigHandler(loop)

	r.Get("/health", healthH.Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(Deadline(requestTimeout))

		r.Get("/status", controlH.Status)
		r.Post("/auto-relay", controlH.AutoRelay)
		r.Post("/relay", controlH.Relay)

		r.Get("/button-config", configH.Get)
		r.Post("/button-config", configH.Set)

		if sim != nil {
			simH := NewSimHandler(sim)
			r.Post("/sim/buttons/{index}", simH.Button)
		}
	})

	return r
}
