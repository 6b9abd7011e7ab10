package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Product is a catalog record as returned by a data provider.
// Optional string fields use the empty string for "absent".
type Product struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Category    string              `json:"category,omitempty"`
	Price       decimal.NullDecimal `json:"price"`
	Description string              `json:"description,omitempty"`
	Image       string              `json:"image,omitempty"`
	Stock       *int                `json:"stock,omitempty"`
	Brand       string              `json:"brand,omitempty"`
}

// PriceOrZero returns the price, treating an absent price as zero.
func (p Product) PriceOrZero() decimal.Decimal {
	if !p.Price.Valid {
		return decimal.Zero
	}
	return p.Price.Decimal
}

// DisplayPrice formats the price for display, e.g. "$129.00".
// Absent prices render as "$0.00".
func (p Product) DisplayPrice() string {
	return "$" + p.PriceOrZero().StringFixed(2)
}

// InStock reports whether a known, positive stock level is recorded.
func (p Product) InStock() bool {
	return p.Stock != nil && *p.Stock > 0
}

// Validate rejects records no catalog should hold. Absent price and stock
// are allowed.
func (p Product) Validate() error {
	if p.Price.Valid && p.Price.Decimal.IsNegative() {
		return fmt.Errorf("product %d: %w", p.ID, ErrNegativePrice)
	}
	if p.Stock != nil && *p.Stock < 0 {
		return fmt.Errorf("product %d: %w", p.ID, ErrNegativeStock)
	}
	return nil
}

// NewPrice is a convenience for building a present price.
func NewPrice(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}
