package repository

import (
	"context"
	"errors"
	"fmt"

	"smartmart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const productColumns = `product_id, name, barcode, description, price, stock_qty, discount_id, image_url, is_active, created_at`

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

func scanProduct(row pgx.Row, p *model.Product) error {
	return row.Scan(
		&p.ID,
		&p.Name,
		&p.Barcode,
		&p.Description,
		&p.Price,
		&p.StockQty,
		&p.DiscountID,
		&p.ImageURL,
		&p.IsActive,
		&p.CreatedAt,
	)
}

// GetAll retrieves all products with pagination support.
func (r *productRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		ORDER BY name
		LIMIT $1 OFFSET $2
	`, productColumns)

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows, r.logger)
}

// GetByIDOrBarcode retrieves a single product matching either identifier.
func (r *productRepository) GetByIDOrBarcode(ctx context.Context, id string) (*model.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE product_id = $1 OR barcode = $1
		LIMIT 1
	`, productColumns)

	var p model.Product
	err := scanProduct(r.pool.QueryRow(ctx, query, id), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// GetByIDs retrieves multiple products by their IDs.
func (r *productRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE product_id = ANY($1)
		ORDER BY name
	`, productColumns)

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query products by IDs")
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows, r.logger)
}

// GetByDiscountID retrieves the product referencing the given discount.
func (r *productRepository) GetByDiscountID(ctx context.Context, discountID uuid.UUID) (*model.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE discount_id = $1
		LIMIT 1
	`, productColumns)

	var p model.Product
	err := scanProduct(r.pool.QueryRow(ctx, query, discountID), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("discount_id", discountID.String()).Msg("failed to query product by discount")
		return nil, fmt.Errorf("failed to query product by discount: %w", err)
	}

	return &p, nil
}

// DecrementStock atomically takes one unit of stock while any remains. The
// guard lives in the WHERE clause so two concurrent adds can never both
// succeed on the last unit.
func (r *productRepository) DecrementStock(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE products
		SET stock_qty = stock_qty - 1
		WHERE product_id = $1 AND stock_qty > 0
	`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to decrement stock")
		return false, fmt.Errorf("failed to decrement stock: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// IncrementStock returns one unit of stock.
func (r *productRepository) IncrementStock(ctx context.Context, id string) error {
	query := `
		UPDATE products
		SET stock_qty = stock_qty + 1
		WHERE product_id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to increment stock")
		return fmt.Errorf("failed to increment stock: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

func collectProducts(rows pgx.Rows, logger zerolog.Logger) ([]model.Product, error) {
	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
