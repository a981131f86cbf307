package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/odemir/go-teklif/internal/models"
)

// snapshotVersion travels inside every export so future readers can
// tell what they are looking at.
const snapshotVersion = "1.0"

// ErrInvalidSnapshot marks an import payload that failed to parse or
// whose present keys do not have the expected shapes. Nothing is
// applied in that case.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Snapshot is the portable export of the full data set.
type Snapshot struct {
	Company    models.Company   `json:"company"`
	Products   []models.Product `json:"products"`
	Offers     []models.Offer   `json:"offers"`
	ExportDate time.Time        `json:"exportDate"`
	Version    string           `json:"version"`
}

// importPayload mirrors Snapshot with optional keys: a partial import
// only replaces the collections that are present. Unknown extra keys
// in the payload are ignored.
type importPayload struct {
	Company  *models.Company   `json:"company"`
	Products *[]models.Product `json:"products"`
	Offers   *[]models.Offer   `json:"offers"`
}

// ExportSnapshot captures company, catalog and history in one object.
// It never fails on domain grounds and is idempotent.
func (r *Repository) ExportSnapshot(ctx context.Context) (Snapshot, error) {
	company, err := r.Company(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	products, err := r.readProducts(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	offers, err := r.readOffers(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Company:    company,
		Products:   products,
		Offers:     offers,
		ExportDate: r.now(),
		Version:    snapshotVersion,
	}, nil
}

// ImportSnapshot parses and validates the payload as a whole before
// touching the store, then replaces each present collection wholesale.
// A malformed payload aborts with ErrInvalidSnapshot and zero changes.
func (r *Repository) ImportSnapshot(ctx context.Context, raw []byte) error {
	var payload importPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return errors.Wrap(ErrInvalidSnapshot, err.Error())
	}
	if payload.Company != nil {
		if err := r.writeJSON(ctx, keyCompany, *payload.Company); err != nil {
			return err
		}
	}
	if payload.Products != nil {
		if err := r.writeJSON(ctx, keyProducts, *payload.Products); err != nil {
			return err
		}
	}
	if payload.Offers != nil {
		if err := r.writeJSON(ctx, keyOffers, *payload.Offers); err != nil {
			return err
		}
	}
	return nil
}
