package api

import (
	"net/http"

	"github.com/iammorganparry/relaypanel/internal/device"
	"github.com/iammorganparry/relaypanel/internal/models"
	"github.com/iammorganparry/relaypanel/internal/store"
)

type HealthHandler struct {
	db   *store.DB
	loop *device.Loop
}

func NewHealthHandler(db *store.DB, loop *device.Loop) *HealthHandler {
	return &HealthHandler{db: db, loop: loop}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthResponse{
		Status: "ok",
	}

	// Check DB
	if err := h.db.Check(); err != nil {
		resp.DB = models.ServiceCheck{Status: "error", Message: err.Error()}
		resp.Status = "degraded"
	} else {
		resp.DB = models.ServiceCheck{Status: "ok"}
	}

	// Check control loop
	if err := h.loop.Check(); err != nil {
		resp.Loop = models.ServiceCheck{Status: "error", Message: err.Error()}
		resp.Status = "degraded"
	} else {
		resp.Loop = models.ServiceCheck{Status: "ok"}
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}
