package service

import (
	"context"
	"fmt"
	"time"

	"smartmart/internal/model"
	"smartmart/internal/pricing"
	"smartmart/internal/repository"

	"github.com/rs/zerolog"
)

// cartService implements CartService.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	aggregator  *pricing.Aggregator
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	aggregator *pricing.Aggregator,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		aggregator:  aggregator,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

// CreateCart provisions an empty cart for the customer.
func (s *cartService) CreateCart(ctx context.Context, phoneNumber string) error {
	if err := s.cartRepo.Create(ctx, phoneNumber, time.Now()); err != nil {
		return err
	}

	s.logger.Info().Str("cart_id", phoneNumber).Msg("cart created")

	return nil
}

// AddProduct takes one unit of stock and adds the product to the cart. The
// stock decrement is a single conditional update so concurrent adds for the
// last unit cannot both succeed. If the cart turns out not to exist, the
// taken unit is returned.
func (s *cartService) AddProduct(ctx context.Context, phoneNumber, productID string) error {
	ok, err := s.productRepo.DecrementStock(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to reserve stock: %w", err)
	}
	if !ok {
		s.logger.Debug().Str("product_id", productID).Msg("product missing or out of stock")
		return model.ErrOutOfStock
	}

	cart, err := s.cartRepo.Get(ctx, phoneNumber)
	if err != nil || cart == nil {
		// Compensate the decrement; the rollback is best-effort.
		if rbErr := s.productRepo.IncrementStock(ctx, productID); rbErr != nil {
			s.logger.Error().
				Err(rbErr).
				Str("product_id", productID).
				Msg("failed to roll back stock decrement")
		}
		if err != nil {
			return fmt.Errorf("failed to load cart: %w", err)
		}
		s.logger.Warn().Str("cart_id", phoneNumber).Msg("cart not found, stock restored")
		return model.ErrCartNotFound
	}

	if err := s.cartRepo.AddItem(ctx, phoneNumber, productID); err != nil {
		return fmt.Errorf("failed to add product to cart: %w", err)
	}

	s.logger.Debug().
		Str("cart_id", phoneNumber).
		Str("product_id", productID).
		Msg("product added to cart")

	return nil
}

// RemoveProduct removes one unit of the product from the cart and returns
// its stock.
func (s *cartService) RemoveProduct(ctx context.Context, phoneNumber, productID string) error {
	cart, err := s.cartRepo.Get(ctx, phoneNumber)
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}
	if cart == nil {
		return model.ErrCartNotFound
	}

	removed, err := s.cartRepo.RemoveItem(ctx, phoneNumber, productID)
	if err != nil {
		return fmt.Errorf("failed to remove product from cart: %w", err)
	}
	if !removed {
		s.logger.Debug().
			Str("cart_id", phoneNumber).
			Str("product_id", productID).
			Msg("product not in cart, stock untouched")
		return model.ErrProductNotInCart
	}

	if err := s.productRepo.IncrementStock(ctx, productID); err != nil {
		s.logger.Error().
			Err(err).
			Str("product_id", productID).
			Msg("failed to return stock after cart removal")
		return fmt.Errorf("failed to return stock: %w", err)
	}

	s.logger.Debug().
		Str("cart_id", phoneNumber).
		Str("product_id", productID).
		Msg("product removed from cart")

	return nil
}

// PriceCart prices the customer's cart without mutating anything.
func (s *cartService) PriceCart(ctx context.Context, phoneNumber string) (*pricing.PricedCart, error) {
	priced, err := s.aggregator.PriceCart(ctx, phoneNumber)
	if err != nil {
		s.logger.Error().Err(err).Str("cart_id", phoneNumber).Msg("failed to price cart")
		return nil, fmt.Errorf("failed to price cart: %w", err)
	}

	return priced, nil
}
