// Package handlers exposes the repository over a JSON API. Handlers
// translate the repository's error taxonomy to status codes:
// validation 422, unknown id 404, malformed payload 400.
package handlers

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/odemir/go-teklif/internal/httpx"
	"github.com/odemir/go-teklif/internal/repository"
)

func writeError(w http.ResponseWriter, err error) {
	var ve *repository.ValidationError
	switch {
	case errors.As(err, &ve):
		httpx.JSONError(w, http.StatusUnprocessableEntity, "validation_failed", ve.Violations)
	case errors.Is(err, repository.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
	case errors.Is(err, repository.ErrInvalidSnapshot):
		httpx.JSONError(w, http.StatusBadRequest, "invalid_snapshot", err.Error())
	default:
		logrus.WithError(err).Error("request failed")
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}
