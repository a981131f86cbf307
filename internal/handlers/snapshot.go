package handlers

import (
	"io"
	"net/http"

	"github.com/odemir/go-teklif/internal/httpx"
	"github.com/odemir/go-teklif/internal/repository"
)

type SnapshotHandler struct {
	repo *repository.Repository
}

func NewSnapshotHandler(repo *repository.Repository) *SnapshotHandler {
	return &SnapshotHandler{repo: repo}
}

// Export hands out the full data set as a downloadable JSON file.
func (h *SnapshotHandler) Export(w http.ResponseWriter, r *http.Request) {
	snap, err := h.repo.ExportSnapshot(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	filename := "teklif-verileri-" + snap.ExportDate.Format("2006-01-02") + ".json"
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	httpx.JSON(w, http.StatusOK, snap)
}

// Import replaces the collections present in the uploaded snapshot.
// A payload that fails to parse changes nothing.
func (h *SnapshotHandler) Import(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	if err := h.repo.ImportSnapshot(r.Context(), raw); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
