package models

import (
	"fmt"
	"time"

	"github.com/odemir/go-teklif/internal/validation"
)

// Customer is the snapshot of the buyer embedded in an offer. Only the
// name is required.
type Customer struct {
	Name    string `json:"name"`
	TaxNo   string `json:"taxNo"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// OfferItem is one line on an offer. Items are value snapshots, never
// references into the product catalog.
type OfferItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
	Tax      float64 `json:"tax"`
}

// Subtotal is the line amount before tax.
func (it OfferItem) Subtotal() float64 {
	return it.Quantity * it.Price
}

// TaxAmount is the tax due on this line.
func (it OfferItem) TaxAmount() float64 {
	return it.Subtotal() * it.Tax / 100
}

// Total is the line amount including tax.
func (it OfferItem) Total() float64 {
	return it.Subtotal() + it.TaxAmount()
}

// Validate checks a line item before it may enter an offer or draft.
func (it OfferItem) Validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("name", it.Name, v)
	validation.PositiveFloat("quantity", it.Quantity, v)
	validation.NonNegativeFloat("price", it.Price, v)
	validation.RangeFloat("tax", it.Tax, 0, 100, v)
	return v
}

// Totals is the cached aggregate of an offer's items. It is recomputed
// from the items on every save; the stored copy is a cache, not a
// source of truth.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Offer is a saved quotation. ID and OfferNo are assigned once at
// creation and never change afterwards.
type Offer struct {
	ID        string      `json:"id"`
	OfferNo   string      `json:"offerNo"`
	Date      time.Time   `json:"date"`
	UpdatedAt *time.Time  `json:"updatedAt,omitempty"`
	Customer  Customer    `json:"customer"`
	Items     []OfferItem `json:"items"`
	Notes     string      `json:"notes"`
	Totals    Totals      `json:"totals"`
}

// OfferUpdate lists the fields that may change on a saved offer.
// Identity and offer number are deliberately absent.
type OfferUpdate struct {
	Customer *Customer    `json:"customer,omitempty"`
	Items    *[]OfferItem `json:"items,omitempty"`
	Notes    *string      `json:"notes,omitempty"`
}

// Apply merges the non-nil fields into o. It reports whether the item
// list changed, in which case the caller must recompute the totals.
func (u OfferUpdate) Apply(o *Offer) bool {
	if u.Customer != nil {
		o.Customer = *u.Customer
	}
	if u.Notes != nil {
		o.Notes = *u.Notes
	}
	if u.Items != nil {
		o.Items = append([]OfferItem(nil), (*u.Items)...)
		return true
	}
	return false
}

// Validate checks an offer before it is persisted: customer name is
// required, at least one item, and every item must be valid.
func (o Offer) Validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("customer.name", o.Customer.Name, v)
	if len(o.Items) == 0 {
		v["items"] = "required"
	}
	for i, it := range o.Items {
		for field, msg := range it.Validate() {
			v[fmt.Sprintf("items.%d.%s", i, field)] = msg
		}
	}
	return v
}

// ComputeTotals derives the aggregate totals from a list of items.
// It is pure and linear: the totals of a concatenation equal the sum of
// the totals of the parts. An empty list yields all zeros.
func ComputeTotals(items []OfferItem) Totals {
	var t Totals
	for _, it := range items {
		t.Subtotal += it.Subtotal()
		t.Tax += it.TaxAmount()
	}
	t.Total = t.Subtotal + t.Tax
	return t
}
