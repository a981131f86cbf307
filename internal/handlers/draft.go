package handlers

import (
	"net/http"

	"github.com/odemir/go-teklif/internal/httpx"
	"github.com/odemir/go-teklif/internal/models"
	"github.com/odemir/go-teklif/internal/repository"
)

type DraftHandler struct {
	repo *repository.Repository
}

func NewDraftHandler(repo *repository.Repository) *DraftHandler {
	return &DraftHandler{repo: repo}
}

func (h *DraftHandler) Get(w http.ResponseWriter, r *http.Request) {
	draft, ok, err := h.repo.Draft(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "no_draft", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, draft)
}

// Save overwrites the draft on every autosave-worthy change.
func (h *DraftHandler) Save(w http.ResponseWriter, r *http.Request) {
	var in models.Offer
	if err := httpx.Decode(r, &in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	if err := h.repo.SaveDraft(r.Context(), in); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *DraftHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.ClearDraft(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
