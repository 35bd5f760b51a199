package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/iammorganparry/relaypanel/internal/hardware"
	"github.com/iammorganparry/relaypanel/internal/models"
)

// SimHandler lets an operator press buttons on the simulated board.
type SimHandler struct {
	board *hardware.Sim
}

func NewSimHandler(board *hardware.Sim) *SimHandler {
	return &SimHandler{board: board}
}

// Button handles POST /api/sim/buttons/{index}
func (h *SimHandler) Button(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "index must be an integer")
		return
	}

	var req models.SimButtonRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	// Active-low: a pressed button reads low.
	if err := h.board.SetLevel(index, !req.Pressed); err != nil {
		writeDeviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
