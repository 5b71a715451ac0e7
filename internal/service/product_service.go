package service

import (
	"context"
	"fmt"

	"smartmart/internal/model"
	"smartmart/internal/pricing"
	"smartmart/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	resolver    *pricing.Resolver
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, resolver *pricing.Resolver, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		resolver:    resolver,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// GetAll retrieves all products with pagination.
func (s *productService) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	products, err := s.productRepo.GetAll(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to get all products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	s.logger.Debug().
		Int("count", len(products)).
		Int("limit", limit).
		Int("offset", offset).
		Msg("retrieved products")

	return products, nil
}

// GetDetail retrieves a product by ID or barcode with its resolved discount.
func (s *productService) GetDetail(ctx context.Context, id string) (*model.ProductDetail, error) {
	if id == "" {
		s.logger.Warn().Msg("product ID is empty")
		return nil, model.ErrProductNotFound
	}

	product, err := s.productRepo.GetByIDOrBarcode(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		s.logger.Debug().Str("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	quote, err := s.resolver.Resolve(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", product.ID).Msg("failed to resolve discount")
		return nil, fmt.Errorf("failed to resolve discount: %w", err)
	}

	return &model.ProductDetail{
		Product:            *product,
		DiscountPrice:      quote.EffectiveRounded(),
		DiscountPercentage: quote.Percentage,
		DiscountName:       quote.DiscountName,
	}, nil
}
