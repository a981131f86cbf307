package models

import "github.com/odemir/go-teklif/internal/validation"

// Product is a reusable catalog entry. Offers copy product fields into
// their line items, so deleting a product never touches past offers.
type Product struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Unit  string  `json:"unit"`
	Price float64 `json:"price"`
	Tax   float64 `json:"tax"`
}

// ProductUpdate lists the fields that may change on an existing
// product. Nil fields are left as they are.
type ProductUpdate struct {
	Name  *string  `json:"name,omitempty"`
	Unit  *string  `json:"unit,omitempty"`
	Price *float64 `json:"price,omitempty"`
	Tax   *float64 `json:"tax,omitempty"`
}

// Apply merges the non-nil fields into p.
func (u ProductUpdate) Apply(p *Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Unit != nil {
		p.Unit = *u.Unit
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Tax != nil {
		p.Tax = *u.Tax
	}
}

// Validate checks catalog fields with the same rules applied to offer
// line items: name required, price not negative, tax rate 0-100.
func (p Product) Validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("name", p.Name, v)
	validation.NonNegativeFloat("price", p.Price, v)
	validation.RangeFloat("tax", p.Tax, 0, 100, v)
	return v
}
