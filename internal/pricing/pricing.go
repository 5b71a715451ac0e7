// Package pricing implements discount resolution and cart pricing. It is a
// pure read layer: nothing in this package mutates stock or cart contents.
package pricing

import (
	"context"

	"smartmart/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DiscountSource provides the discount lookups the resolver needs.
type DiscountSource interface {
	// GetByID retrieves a discount by identity, regardless of status.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Discount, error)

	// GetActiveByBarcode retrieves an Active discount targeting the given
	// product barcode.
	GetActiveByBarcode(ctx context.Context, barcode string) (*model.Discount, error)
}

// CatalogSource provides the product lookups the aggregator needs.
type CatalogSource interface {
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)
}

// CartSource provides the cart lines the aggregator needs. A missing cart
// yields no lines, not an error.
type CartSource interface {
	GetItems(ctx context.Context, cartID string) ([]model.CartItem, error)
}

// Quote is the outcome of discount resolution for a single product.
// EffectivePrice is kept exact; callers round at output points.
type Quote struct {
	EffectivePrice decimal.Decimal
	Percentage     decimal.Decimal
	DiscountName   *string
}

// EffectiveRounded returns the effective price rounded half-up to 2 decimal
// places, the form used in responses and snapshots.
func (q Quote) EffectiveRounded() decimal.Decimal {
	return q.EffectivePrice.Round(2)
}

// Discounted reports whether any discount applied.
func (q Quote) Discounted() bool {
	return q.DiscountName != nil
}

// LineItem is one priced cart line.
type LineItem struct {
	ProductID          string          `json:"product_id"`
	Name               string          `json:"name"`
	Price              decimal.Decimal `json:"price"`
	DiscountPrice      decimal.Decimal `json:"discount_price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	DiscountName       *string         `json:"discount_name"`
	Quantity           int             `json:"quantity"`
	TotalPrice         decimal.Decimal `json:"total_price"`
	OriginalTotal      decimal.Decimal `json:"original_total"`
}

// PricedCart is the aggregated result of pricing an entire cart.
type PricedCart struct {
	Items         []LineItem      `json:"products"`
	Total         decimal.Decimal `json:"total"`
	OriginalTotal decimal.Decimal `json:"original_total"`
	TotalSavings  decimal.Decimal `json:"total_savings"`
}

// IsEmpty reports whether the cart had no priceable lines.
func (p *PricedCart) IsEmpty() bool {
	return len(p.Items) == 0
}
