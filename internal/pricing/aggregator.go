package pricing

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Aggregator prices a full cart by resolving each line through the Resolver
// and summing the results.
type Aggregator struct {
	catalog  CatalogSource
	cart     CartSource
	resolver *Resolver
	logger   zerolog.Logger
}

// NewAggregator creates a cart pricing aggregator.
func NewAggregator(catalog CatalogSource, cart CartSource, resolver *Resolver, logger zerolog.Logger) *Aggregator {
	return &Aggregator{
		catalog:  catalog,
		cart:     cart,
		resolver: resolver,
		logger:   logger.With().Str("component", "cart-aggregator").Logger(),
	}
}

// PriceCart prices the cart owned by the given customer. A missing or empty
// cart yields an empty result, not an error: reads are lenient, only
// mutations validate strictly.
func (a *Aggregator) PriceCart(ctx context.Context, cartID string) (*PricedCart, error) {
	priced := &PricedCart{
		Items:         []LineItem{},
		Total:         decimal.Zero,
		OriginalTotal: decimal.Zero,
		TotalSavings:  decimal.Zero,
	}

	lines, err := a.cart.GetItems(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart items: %w", err)
	}
	if len(lines) == 0 {
		return priced, nil
	}

	ids := make([]string, len(lines))
	quantities := make(map[string]int, len(lines))
	for i, line := range lines {
		ids[i] = line.ProductID
		quantities[line.ProductID] = line.Quantity
	}

	products, err := a.catalog.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart products: %w", err)
	}

	for i := range products {
		product := &products[i]
		quantity := quantities[product.ID]
		if quantity <= 0 {
			continue
		}

		quote, err := a.resolver.Resolve(ctx, product)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve discount for product %s: %w", product.ID, err)
		}

		qty := decimal.NewFromInt(int64(quantity))
		// Rounding happens after the multiplication, not per unit, so line
		// totals match the snapshot written at order time.
		lineTotal := quote.EffectivePrice.Mul(qty).Round(2)
		originalTotal := product.Price.Mul(qty).Round(2)

		priced.Items = append(priced.Items, LineItem{
			ProductID:          product.ID,
			Name:               product.Name,
			Price:              product.Price,
			DiscountPrice:      quote.EffectiveRounded(),
			DiscountPercentage: quote.Percentage,
			DiscountName:       quote.DiscountName,
			Quantity:           quantity,
			TotalPrice:         lineTotal,
			OriginalTotal:      originalTotal,
		})

		priced.Total = priced.Total.Add(lineTotal)
		priced.OriginalTotal = priced.OriginalTotal.Add(originalTotal)
	}

	savings := priced.OriginalTotal.Sub(priced.Total)
	if savings.IsNegative() {
		savings = decimal.Zero
	}
	priced.TotalSavings = savings

	a.logger.Debug().
		Str("cart_id", cartID).
		Int("line_count", len(priced.Items)).
		Str("total", priced.Total.String()).
		Msg("cart priced")

	return priced, nil
}
