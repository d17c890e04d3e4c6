package importcsv

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/otabekj/dukon/internal/http/httpx"
	"github.com/otabekj/dukon/internal/importer"
	"github.com/otabekj/dukon/internal/ledger"
)

type Handler struct {
	importSvc *importer.Service
	ledgerSvc *ledger.Service
}

func NewHandler(importSvc *importer.Service, ledgerSvc *ledger.Service) *Handler {
	return &Handler{
		importSvc: importSvc,
		ledgerSvc: ledgerSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type clientResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	InitialDebt float64 `json:"initial_debt"`
}

type importSuccessResponse struct {
	Imported int              `json:"imported"`
	Clients  []clientResponse `json:"clients"`
}

// importCSV takes a multipart debt-book upload and creates one client per
// row, opening debts included.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	source := importer.Source(r.FormValue("source"))
	if source == "" {
		source = importer.SourceDaftar
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(source, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	clients, err := h.ledgerSvc.CreateClients(r.Context(), params)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	responses := make([]clientResponse, 0, len(clients))
	for _, c := range clients {
		responses = append(responses, clientResponse{
			ID:          c.ID,
			Name:        c.Name,
			InitialDebt: c.InitialDebt,
		})
	}

	httpx.JSON(w, http.StatusCreated, importSuccessResponse{
		Imported: len(clients),
		Clients:  responses,
	})
}
