package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/odemir/go-teklif/internal/document"
	"github.com/odemir/go-teklif/internal/httpx"
	"github.com/odemir/go-teklif/internal/models"
	"github.com/odemir/go-teklif/internal/pdf"
	"github.com/odemir/go-teklif/internal/repository"
)

type OfferHandler struct {
	repo *repository.Repository
}

func NewOfferHandler(repo *repository.Repository) *OfferHandler {
	return &OfferHandler{repo: repo}
}

func (h *OfferHandler) List(w http.ResponseWriter, r *http.Request) {
	offers, err := h.repo.Offers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, offers)
}

func (h *OfferHandler) Get(w http.ResponseWriter, r *http.Request) {
	offer, err := h.repo.Offer(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, offer)
}

// Create saves a new offer and clears the draft: a successful save is
// what ends the drafting session.
func (h *OfferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.Offer
	if err := httpx.Decode(r, &in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	created, err := h.repo.AddOffer(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.repo.ClearDraft(r.Context()); err != nil {
		logrus.WithError(err).Warn("draft not cleared after save")
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *OfferHandler) Update(w http.ResponseWriter, r *http.Request) {
	var upd models.OfferUpdate
	if err := httpx.Decode(r, &upd); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	updated, err := h.repo.UpdateOffer(r.Context(), r.PathValue("id"), upd)
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *OfferHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.DeleteOffer(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PDF renders the offer as a downloadable document. A renderer
// failure degrades to the minimal fallback document instead of an
// empty response.
func (h *OfferHandler) PDF(w http.ResponseWriter, r *http.Request) {
	offer, err := h.repo.Offer(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	company, err := h.repo.Company(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	doc := document.Assemble(company, offer)
	data, err := pdf.Render(doc)
	if err != nil {
		logrus.WithError(err).WithField("offer", offer.OfferNo).Error("pdf render failed, using fallback")
		data, err = pdf.Fallback("PDF oluşturmada hata oluştu. Lütfen tekrar deneyin.")
		if err != nil {
			writeError(w, err)
			return
		}
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+pdf.Filename(offer)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
