package reports

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/otabekj/dukon/internal/http/httpx"
	"github.com/otabekj/dukon/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/dashboard", h.dashboard)
	r.Get("/supplier-debts", h.supplierDebts)
	r.Get("/employee-debts", h.employeeDebts)
	r.Get("/financial-summary", h.financialSummary)
	r.Get("/todays-financial-summary", h.todaysFinancialSummary)
	r.Get("/transactions", h.transactions)
	r.Get("/sales", h.salesReport)
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	debts, err := h.svc.Dashboard(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, debts)
}

func (h *Handler) supplierDebts(w http.ResponseWriter, r *http.Request) {
	debts, err := h.svc.SupplierDebts(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, debts)
}

func (h *Handler) employeeDebts(w http.ResponseWriter, r *http.Request) {
	debts, err := h.svc.EmployeeDebts(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, debts)
}

func (h *Handler) financialSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.FinancialSummary(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, summary)
}

func (h *Handler) todaysFinancialSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.TodaysFinancialSummary(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, summary)
}

// dateRange reads start_date and end_date query params as YYYY-MM-DD.
func dateRange(r *http.Request) (time.Time, time.Time, bool) {
	start, err := time.Parse(time.DateOnly, r.URL.Query().Get("start_date"))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}

	end, err := time.Parse(time.DateOnly, r.URL.Query().Get("end_date"))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}

	return start, end, true
}

func (h *Handler) transactions(w http.ResponseWriter, r *http.Request) {
	start, end, ok := dateRange(r)
	if !ok {
		http.Error(w, "start_date and end_date are required", http.StatusBadRequest)
		return
	}

	entries, err := h.svc.Transactions(r.Context(), start, end)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, entries)
}

func (h *Handler) salesReport(w http.ResponseWriter, r *http.Request) {
	start, end, ok := dateRange(r)
	if !ok {
		http.Error(w, "start_date and end_date are required", http.StatusBadRequest)
		return
	}

	rows, err := h.svc.SalesReport(r.Context(), start, end)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, rows)
}
