package api

import (
	"net/http"

	"github.com/iammorganparry/relaypanel/internal/device"
	"github.com/iammorganparry/relaypanel/internal/models"
)

// ButtonConfigHandler reads and writes the button to session mapping.
type ButtonConfigHandler struct {
	loop *device.Loop
}

func NewButtonConfigHandler(loop *device.Loop) *ButtonConfigHandler {
	return &ButtonConfigHandler{loop: loop}
}

// Get handles GET /api/button-config
func (h *ButtonConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	all, err := h.loop.Sessions(r.Context())
	if err != nil {
		writeDeviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.ButtonConfigResponse{Sessions: all})
}

// Set handles POST /api/button-config
func (h *ButtonConfigHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req models.ButtonConfigRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Button == nil {
		writeError(w, http.StatusBadRequest, "button is required")
		return
	}

	if err := h.loop.SetSession(r.Context(), *req.Button, req.Session); err != nil {
		writeDeviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
