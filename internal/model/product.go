package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a catalogue item. The barcode and the product ID are
// interchangeable identifiers: older records carry only one of the two.
type Product struct {
	ID          string          `json:"product_id" db:"product_id"`
	Name        string          `json:"name" db:"name"`
	Barcode     string          `json:"barcode" db:"barcode"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	StockQty    int             `json:"stock_qty" db:"stock_qty"`
	DiscountID  *uuid.UUID      `json:"discount_id,omitempty" db:"discount_id"`
	ImageURL    string          `json:"image_url" db:"image_url"`
	IsActive    bool            `json:"is_active" db:"is_active"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// EffectiveBarcode returns the identifier used for barcode-based discount
// matching, falling back to the product ID when no barcode is stored.
func (p *Product) EffectiveBarcode() string {
	if p.Barcode != "" {
		return p.Barcode
	}
	return p.ID
}

// ProductDetail is the response shape for a single product lookup,
// including resolved discount information.
type ProductDetail struct {
	Product
	DiscountPrice      decimal.Decimal `json:"discount_price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	DiscountName       *string         `json:"discount_name"`
}
