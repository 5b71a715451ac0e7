package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Discount status values.
const (
	DiscountStatusActive   = "Active"
	DiscountStatusInactive = "Inactive"
)

// Discount represents a percentage discount targeting a single product,
// valid within an inclusive [StartDate, EndDate] window.
type Discount struct {
	ID             uuid.UUID       `json:"discount_id" db:"id"`
	Name           string          `json:"name" db:"name"`
	Percentage     decimal.Decimal `json:"percentage" db:"percentage"`
	ProductBarcode string          `json:"product_barcode" db:"product_barcode"`
	Status         string          `json:"status" db:"status"`
	StartDate      time.Time       `json:"start_date" db:"start_date"`
	EndDate        time.Time       `json:"end_date" db:"end_date"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
}

// IsActive reports whether the discount's status is Active.
func (d *Discount) IsActive() bool {
	return d.Status == DiscountStatusActive
}

// DiscountListing is the response shape for the active-discount listing,
// joining a valid discount with its target product.
type DiscountListing struct {
	DiscountID      uuid.UUID       `json:"discount_id"`
	Name            string          `json:"name"`
	Percentage      decimal.Decimal `json:"percentage"`
	StartDate       string          `json:"start_date"`
	EndDate         string          `json:"end_date"`
	ProductName     string          `json:"product_name"`
	ProductBarcode  string          `json:"product_barcode"`
	OriginalPrice   decimal.Decimal `json:"original_price"`
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
	Savings         decimal.Decimal `json:"savings"`
}
