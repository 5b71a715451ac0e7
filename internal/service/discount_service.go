package service

import (
	"context"
	"fmt"
	"time"

	"smartmart/internal/model"
	"smartmart/internal/pricing"
	"smartmart/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// discountService implements DiscountService.
type discountService struct {
	discountRepo repository.DiscountRepository
	productRepo  repository.ProductRepository
	now          func() time.Time
	logger       zerolog.Logger
}

// NewDiscountService creates a new discount service. The clock defaults to
// time.Now when nil.
func NewDiscountService(
	discountRepo repository.DiscountRepository,
	productRepo repository.ProductRepository,
	now func() time.Time,
	logger zerolog.Logger,
) DiscountService {
	if now == nil {
		now = time.Now
	}
	return &discountService{
		discountRepo: discountRepo,
		productRepo:  productRepo,
		now:          now,
		logger:       logger.With().Str("service", "discount").Logger(),
	}
}

// ListActive retrieves all currently valid Active discounts joined with
// their target products. Validity uses the same window policy as the
// resolver, so a date-only discount still lists on its final day. Discounts
// whose product cannot be found are skipped.
func (s *discountService) ListActive(ctx context.Context) ([]model.DiscountListing, error) {
	discounts, err := s.discountRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list discounts: %w", err)
	}

	now := s.now()
	listings := make([]model.DiscountListing, 0, len(discounts))
	for i := range discounts {
		d := &discounts[i]
		if !pricing.WindowContains(d, now) {
			continue
		}

		product, err := s.findTargetProduct(ctx, d)
		if err != nil {
			return nil, err
		}
		if product == nil {
			s.logger.Debug().Str("discount", d.Name).Msg("no product linked to discount")
			continue
		}

		discounted := product.Price.Mul(hundred.Sub(d.Percentage)).Div(hundred).Round(2)
		listings = append(listings, model.DiscountListing{
			DiscountID:      d.ID,
			Name:            d.Name,
			Percentage:      d.Percentage,
			StartDate:       d.StartDate.Format("2006-01-02"),
			EndDate:         d.EndDate.Format("2006-01-02"),
			ProductName:     product.Name,
			ProductBarcode:  product.EffectiveBarcode(),
			OriginalPrice:   product.Price,
			DiscountedPrice: discounted,
			Savings:         product.Price.Mul(d.Percentage).Div(hundred).Round(2),
		})
	}

	return listings, nil
}

// findTargetProduct locates the product a discount applies to. The barcode
// link is tried first, then the reverse discount-reference link, mirroring
// the drifted linkage the resolver handles in the other direction.
func (s *discountService) findTargetProduct(ctx context.Context, d *model.Discount) (*model.Product, error) {
	if d.ProductBarcode != "" {
		product, err := s.productRepo.GetByIDOrBarcode(ctx, d.ProductBarcode)
		if err != nil {
			return nil, fmt.Errorf("failed to find product for discount %s: %w", d.Name, err)
		}
		if product != nil {
			return product, nil
		}
	}

	product, err := s.productRepo.GetByDiscountID(ctx, d.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product for discount %s: %w", d.Name, err)
	}
	return product, nil
}
