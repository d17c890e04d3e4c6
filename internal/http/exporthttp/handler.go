package exporthttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/otabekj/dukon/internal/export"
	"github.com/otabekj/dukon/internal/http/httpx"
	"github.com/otabekj/dukon/internal/ledger"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.metadata)
	r.Post("/download", h.download)
}

type exportRequest struct {
	Format export.Format `json:"format"`
	Period export.Period `json:"period"`
}

type exportMetadataResponse struct {
	ExportID    uuid.UUID `json:"export_id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Size        int       `json:"size"`
}

// metadata renders the report and describes it without sending the bytes,
// so a caller can confirm the size before downloading.
func (h *Handler) metadata(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	artifact, err := h.svc.Export(r.Context(), req.Format, req.Period)
	if err != nil {
		exportError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, exportMetadataResponse{
		ExportID:    uuid.New(),
		Filename:    artifact.Filename,
		ContentType: artifact.ContentType,
		Size:        len(artifact.Data),
	})
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	artifact, err := h.svc.Export(r.Context(), req.Format, req.Period)
	if err != nil {
		exportError(w, err)
		return
	}

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", artifact.Filename))

	if _, err := w.Write(artifact.Data); err != nil {
		// Client went away mid-download; nothing to clean up.
		return
	}
}

// exportError treats a broken data file as 503 and everything else, such as
// an unknown format or period, as the caller's mistake.
func exportError(w http.ResponseWriter, err error) {
	if errors.Is(err, ledger.ErrStorageUnavailable) {
		http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
		return
	}

	http.Error(w, err.Error(), http.StatusBadRequest)
}
