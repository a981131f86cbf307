// Package repository is the typed CRUD façade over the key-value
// store: the company singleton, the product catalog, the offer history
// and the draft. It exclusively owns all persisted state. Every write
// is a synchronous whole-collection read-modify-write, so concurrent
// writers against a shared backend are last-write-wins.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/odemir/go-teklif/internal/kvstore"
	"github.com/odemir/go-teklif/internal/models"
	"github.com/odemir/go-teklif/internal/validation"
)

// Storage keys, kept identical to the original data set so existing
// stores and snapshots remain readable.
const (
	keyCompany  = "quotation_company"
	keyProducts = "quotation_products"
	keyOffers   = "quotation_offers"
	keyDraft    = "quotation_current_offer"
)

// ErrNotFound is returned by update/delete-style operations when the
// target id is absent from its collection.
var ErrNotFound = errors.New("not found")

// ValidationError aborts an operation before any state change.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Violations)
}

type Repository struct {
	store kvstore.Store
	now   func() time.Time
}

func New(store kvstore.Store) *Repository {
	return &Repository{store: store, now: time.Now}
}

// ─────────────────────────────────────────────────────────────────────────────
// Company
// ─────────────────────────────────────────────────────────────────────────────

// Company returns the singleton company profile, materializing an
// empty one on first read.
func (r *Repository) Company(ctx context.Context) (models.Company, error) {
	raw, ok, err := r.store.Get(ctx, keyCompany)
	if err != nil {
		return models.Company{}, err
	}
	var c models.Company
	if !ok {
		if err := r.writeJSON(ctx, keyCompany, c); err != nil {
			return models.Company{}, err
		}
		return c, nil
	}
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		logrus.WithError(err).Warn("corrupt company record, using defaults")
		return models.Company{}, nil
	}
	return c, nil
}

func (r *Repository) SaveCompany(ctx context.Context, c models.Company) error {
	return r.writeJSON(ctx, keyCompany, c)
}

// ─────────────────────────────────────────────────────────────────────────────
// Products
// ─────────────────────────────────────────────────────────────────────────────

func (r *Repository) Products(ctx context.Context) ([]models.Product, error) {
	return r.readProducts(ctx)
}

// AddProduct validates the fields, assigns a fresh id and appends the
// product to the catalog.
func (r *Repository) AddProduct(ctx context.Context, p models.Product) (models.Product, error) {
	if v := p.Validate(); !v.Empty() {
		return models.Product{}, &ValidationError{Violations: v}
	}
	products, err := r.readProducts(ctx)
	if err != nil {
		return models.Product{}, err
	}
	p.ID = newProductID()
	products = append(products, p)
	if err := r.writeJSON(ctx, keyProducts, products); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// EnsureProduct returns the catalog product with the given name, or
// creates it from the supplied fields. The second result reports
// whether a new product was created. Matching is by exact name.
func (r *Repository) EnsureProduct(ctx context.Context, p models.Product) (models.Product, bool, error) {
	products, err := r.readProducts(ctx)
	if err != nil {
		return models.Product{}, false, err
	}
	for _, existing := range products {
		if existing.Name == p.Name {
			return existing, false, nil
		}
	}
	created, err := r.AddProduct(ctx, p)
	if err != nil {
		return models.Product{}, false, err
	}
	return created, true, nil
}

func (r *Repository) UpdateProduct(ctx context.Context, id string, upd models.ProductUpdate) (models.Product, error) {
	products, err := r.readProducts(ctx)
	if err != nil {
		return models.Product{}, err
	}
	for i := range products {
		if products[i].ID != id {
			continue
		}
		merged := products[i]
		upd.Apply(&merged)
		if v := merged.Validate(); !v.Empty() {
			return models.Product{}, &ValidationError{Violations: v}
		}
		products[i] = merged
		if err := r.writeJSON(ctx, keyProducts, products); err != nil {
			return models.Product{}, err
		}
		return merged, nil
	}
	return models.Product{}, ErrNotFound
}

// DeleteProduct removes the product from the catalog. Deleting an
// unknown id is a no-op; offers keep their item snapshots either way.
func (r *Repository) DeleteProduct(ctx context.Context, id string) error {
	products, err := r.readProducts(ctx)
	if err != nil {
		return err
	}
	kept := products[:0]
	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	return r.writeJSON(ctx, keyProducts, kept)
}

// ─────────────────────────────────────────────────────────────────────────────
// Offers
// ─────────────────────────────────────────────────────────────────────────────

// Offers lists the history most-recent-first.
func (r *Repository) Offers(ctx context.Context) ([]models.Offer, error) {
	offers, err := r.readOffers(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(offers, func(i, j int) bool {
		return offers[i].Date.After(offers[j].Date)
	})
	return offers, nil
}

func (r *Repository) Offer(ctx context.Context, id string) (models.Offer, error) {
	offers, err := r.readOffers(ctx)
	if err != nil {
		return models.Offer{}, err
	}
	for _, o := range offers {
		if o.ID == id {
			return o, nil
		}
	}
	return models.Offer{}, ErrNotFound
}

// AddOffer validates the offer, assigns id, creation date and the next
// year-scoped offer number, recomputes the totals from the items and
// prepends the offer to the history.
func (r *Repository) AddOffer(ctx context.Context, o models.Offer) (models.Offer, error) {
	if v := o.Validate(); !v.Empty() {
		return models.Offer{}, &ValidationError{Violations: v}
	}
	offers, err := r.readOffers(ctx)
	if err != nil {
		return models.Offer{}, err
	}
	now := r.now()
	o.ID = newOfferID()
	o.Date = now
	o.UpdatedAt = nil
	o.OfferNo = nextOfferNumber(offers, now.Year())
	o.Items = append([]models.OfferItem(nil), o.Items...)
	o.Totals = models.ComputeTotals(o.Items)
	for i := range o.Items {
		if o.Items[i].ID == "" {
			o.Items[i].ID = newItemID()
		}
	}
	offers = append([]models.Offer{o}, offers...)
	if err := r.writeJSON(ctx, keyOffers, offers); err != nil {
		return models.Offer{}, err
	}
	return o, nil
}

// UpdateOffer merges the changed fields into an existing offer and
// refreshes the update timestamp. Identity and offer number never
// change; totals are recomputed whenever the item list does.
func (r *Repository) UpdateOffer(ctx context.Context, id string, upd models.OfferUpdate) (models.Offer, error) {
	offers, err := r.readOffers(ctx)
	if err != nil {
		return models.Offer{}, err
	}
	for i := range offers {
		if offers[i].ID != id {
			continue
		}
		merged := offers[i]
		itemsChanged := upd.Apply(&merged)
		if v := merged.Validate(); !v.Empty() {
			return models.Offer{}, &ValidationError{Violations: v}
		}
		if itemsChanged {
			for j := range merged.Items {
				if merged.Items[j].ID == "" {
					merged.Items[j].ID = newItemID()
				}
			}
			merged.Totals = models.ComputeTotals(merged.Items)
		}
		now := r.now()
		merged.UpdatedAt = &now
		offers[i] = merged
		if err := r.writeJSON(ctx, keyOffers, offers); err != nil {
			return models.Offer{}, err
		}
		return merged, nil
	}
	return models.Offer{}, ErrNotFound
}

func (r *Repository) DeleteOffer(ctx context.Context, id string) error {
	offers, err := r.readOffers(ctx)
	if err != nil {
		return err
	}
	kept := offers[:0]
	for _, o := range offers {
		if o.ID != id {
			kept = append(kept, o)
		}
	}
	return r.writeJSON(ctx, keyOffers, kept)
}

// ─────────────────────────────────────────────────────────────────────────────
// Draft
// ─────────────────────────────────────────────────────────────────────────────

// Draft returns the unsaved in-progress offer, if any.
func (r *Repository) Draft(ctx context.Context) (models.Offer, bool, error) {
	raw, ok, err := r.store.Get(ctx, keyDraft)
	if err != nil || !ok {
		return models.Offer{}, false, err
	}
	var o models.Offer
	if err := json.Unmarshal([]byte(raw), &o); err != nil {
		logrus.WithError(err).Warn("corrupt draft record, discarding")
		return models.Offer{}, false, nil
	}
	return o, true, nil
}

// SaveDraft overwrites the draft. Drafts carry no identity or number
// and are not validated: a half-finished offer is the point.
func (r *Repository) SaveDraft(ctx context.Context, o models.Offer) error {
	o.Totals = models.ComputeTotals(o.Items)
	return r.writeJSON(ctx, keyDraft, o)
}

func (r *Repository) ClearDraft(ctx context.Context) error {
	return r.store.Remove(ctx, keyDraft)
}

// ─────────────────────────────────────────────────────────────────────────────
// Collection plumbing
// ─────────────────────────────────────────────────────────────────────────────

// readProducts treats an absent or corrupt collection as empty so a
// damaged store never takes the whole application down.
func (r *Repository) readProducts(ctx context.Context) ([]models.Product, error) {
	raw, ok, err := r.store.Get(ctx, keyProducts)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Product{}, nil
	}
	var products []models.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		logrus.WithError(err).Warn("corrupt products collection, treating as empty")
		return []models.Product{}, nil
	}
	return products, nil
}

func (r *Repository) readOffers(ctx context.Context) ([]models.Offer, error) {
	raw, ok, err := r.store.Get(ctx, keyOffers)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Offer{}, nil
	}
	var offers []models.Offer
	if err := json.Unmarshal([]byte(raw), &offers); err != nil {
		logrus.WithError(err).Warn("corrupt offers collection, treating as empty")
		return []models.Offer{}, nil
	}
	return offers, nil
}

func (r *Repository) writeJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encode %s", key)
	}
	return r.store.Set(ctx, key, string(raw))
}
