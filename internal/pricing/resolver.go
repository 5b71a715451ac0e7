package pricing

import (
	"context"
	"time"

	"smartmart/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Resolver determines the single applicable discount for a product and
// computes its effective price.
type Resolver struct {
	discounts DiscountSource
	now       func() time.Time
	logger    zerolog.Logger
}

// NewResolver creates a discount resolver. The clock defaults to time.Now
// when nil; tests inject a fixed clock.
func NewResolver(discounts DiscountSource, now func() time.Time, logger zerolog.Logger) *Resolver {
	if now == nil {
		now = time.Now
	}
	return &Resolver{
		discounts: discounts,
		now:       now,
		logger:    logger.With().Str("component", "discount-resolver").Logger(),
	}
}

// strategy is one way of linking a product to its discount. The schema
// drifted over time, so linkage is tried over an ordered list of strategies
// and the first hit wins deterministically.
type strategy func(ctx context.Context, p *model.Product) (*model.Discount, error)

func (r *Resolver) strategies() []strategy {
	// Priority order: the by-reference lookup always beats the barcode match.
	return []strategy{r.byReference, r.byBarcode}
}

// byReference looks up the discount the product points at directly.
func (r *Resolver) byReference(ctx context.Context, p *model.Product) (*model.Discount, error) {
	if p.DiscountID == nil {
		return nil, nil
	}
	return r.discounts.GetByID(ctx, *p.DiscountID)
}

// byBarcode searches for an Active discount targeting the product's barcode.
func (r *Resolver) byBarcode(ctx context.Context, p *model.Product) (*model.Discount, error) {
	return r.discounts.GetActiveByBarcode(ctx, p.EffectiveBarcode())
}

// Resolve returns the product's effective price quote at the current instant.
// When no discount applies, the quote carries the original price, a zero
// percentage and no name.
func (r *Resolver) Resolve(ctx context.Context, product *model.Product) (Quote, error) {
	for _, find := range r.strategies() {
		discount, err := find(ctx, product)
		if err != nil {
			return Quote{}, err
		}
		if discount == nil {
			continue
		}

		if !discount.IsActive() {
			r.logger.Debug().
				Str("product_id", product.ID).
				Str("discount", discount.Name).
				Msg("linked discount is not active")
			break
		}

		if !WindowContains(discount, r.now()) {
			r.logger.Debug().
				Str("product_id", product.ID).
				Str("discount", discount.Name).
				Time("start", discount.StartDate).
				Time("end", discount.EndDate).
				Msg("linked discount is outside its validity window")
			break
		}

		name := discount.Name
		return Quote{
			EffectivePrice: product.Price.Mul(hundred.Sub(discount.Percentage)).Div(hundred),
			Percentage:     discount.Percentage,
			DiscountName:   &name,
		}, nil
	}

	return Quote{
		EffectivePrice: product.Price,
		Percentage:     decimal.Zero,
	}, nil
}

// WindowContains reports whether now falls within the discount's inclusive
// validity window. Date-only boundaries (a midnight time component) are
// expanded so the discount stays valid through its entire last calendar day.
// A malformed window never applies: fail closed, not open.
func WindowContains(d *model.Discount, now time.Time) bool {
	if d.StartDate.IsZero() || d.EndDate.IsZero() {
		return false
	}

	start := d.StartDate
	end := d.EndDate
	if isDateOnly(end) {
		end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	if end.Before(start) {
		return false
	}

	return !now.Before(start) && !now.After(end)
}

// isDateOnly reports whether the timestamp carries no time-of-day component,
// which is how calendar dates from older discount records round-trip.
func isDateOnly(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}
