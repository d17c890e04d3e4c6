package staff

import (
	"encoding/json"
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
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Delete("/{id}", h.delete)

	r.Route("/advances", func(r chi.Router) {
		r.Get("/", h.listAdvances)
		r.Post("/", h.createAdvance)
		r.Delete("/{id}", h.deleteAdvance)
	})
}

type createEmployeeRequest struct {
	Name     string `json:"name"`
	Position string `json:"position"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	employees, err := h.svc.ListEmployees(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, employees)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	employee, err := h.svc.CreateEmployee(r.Context(), ledger.EmployeeParams{
		Name:     req.Name,
		Position: req.Position,
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, employee)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteEmployee(r.Context(), id); err != nil {
		httpx.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type createAdvanceRequest struct {
	EmployeeID int64   `json:"employee_id"`
	Amount     float64 `json:"amount"`
}

func (h *Handler) listAdvances(w http.ResponseWriter, r *http.Request) {
	advances, err := h.svc.ListAdvances(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, advances)
}

func (h *Handler) createAdvance(w http.ResponseWriter, r *http.Request) {
	var req createAdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	advance, err := h.svc.CreateAdvance(r.Context(), ledger.AdvanceParams{
		EmployeeID: req.EmployeeID,
		Amount:     req.Amount,
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, advance)
}

func (h *Handler) deleteAdvance(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.ID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteAdvance(r.Context(), id); err != nil {
		httpx.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
