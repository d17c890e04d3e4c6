package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/otabekj/dukon/internal/http/httpx"
	"github.com/otabekj/dukon/internal/ledger"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/reset", h.reset)
}

// reset wipes every collection. There is no undo, so the UI gates this
// behind a confirmation.
func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Reset(r.Context()); err != nil {
		httpx.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
