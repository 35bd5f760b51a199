package api

import (
	"net/http"

	"github.com/iammorganparry/relaypanel/internal/device"
	"github.com/iammorganparry/relaypanel/internal/models"
)

// ControlHandler serves the status poll and the relay controls.
type ControlHandler struct {
	loop *device.Loop
}

func NewControlHandler(loop *device.Loop) *ControlHandler {
	return &ControlHandler{loop: loop}
}

// Status handles GET /api/status
func (h *ControlHandler) Status(w http.ResponseWriter, r *http.Request) {
	snap, err := h.loop.Status(r.Context())
	if err != nil {
		writeDeviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewStatusResponse(snap))
}

// AutoRelay handles POST /api/auto-relay
func (h *ControlHandler) AutoRelay(w http.ResponseWriter, r *http.Request) {
	var req models.AutoRelayRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Enabled == nil {
		writeError(w, http.StatusBadRequest, "enabled is required")
		return
	}

	if err := h.loop.SetAutoMode(r.Context(), *req.Enabled); err != nil {
		writeDeviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Relay handles POST /api/relay. The command is applied in auto mode too;
// the panel disables the buttons while auto mode is on.
func (h *ControlHandler) Relay(w http.ResponseWriter, r *http.Request) {
	var req models.RelayRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.On == nil {
		writeError(w, http.StatusBadRequest, "on is required")
		return
	}

	if err := h.loop.SetRelay(r.Context(), *req.On); err != nil {
		writeDeviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
