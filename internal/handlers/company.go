package handlers

import (
	"net/http"

	"github.com/odemir/go-teklif/internal/httpx"
	"github.com/odemir/go-teklif/internal/models"
	"github.com/odemir/go-teklif/internal/repository"
	"github.com/odemir/go-teklif/internal/validation"
)

type CompanyHandler struct {
	repo *repository.Repository
}

func NewCompanyHandler(repo *repository.Repository) *CompanyHandler {
	return &CompanyHandler{repo: repo}
}

// Get returns the company profile, an empty one on first run.
func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	company, err := h.repo.Company(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, company)
}

// Update replaces the company profile. The name is required; an
// omitted logo keeps the stored one so a profile edit does not wipe
// the uploaded image.
func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in models.Company
	if err := httpx.Decode(r, &in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "validation_failed", v)
		return
	}
	if in.Logo == "" {
		current, err := h.repo.Company(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		in.Logo = current.Logo
	}
	if err := h.repo.SaveCompany(r.Context(), in); err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, in)
}
