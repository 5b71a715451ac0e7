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

const discountColumns = `id, name, percentage, product_barcode, status, start_date, end_date, created_at`

// discountRepository implements the DiscountRepository interface using PostgreSQL.
type discountRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewDiscountRepository creates a new PostgreSQL-backed discount repository.
func NewDiscountRepository(pool *pgxpool.Pool, logger zerolog.Logger) DiscountRepository {
	return &discountRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "discount").Logger(),
	}
}

func scanDiscount(row pgx.Row, d *model.Discount) error {
	return row.Scan(
		&d.ID,
		&d.Name,
		&d.Percentage,
		&d.ProductBarcode,
		&d.Status,
		&d.StartDate,
		&d.EndDate,
		&d.CreatedAt,
	)
}

// GetByID retrieves a discount by identity, regardless of status.
func (r *discountRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Discount, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM discounts
		WHERE id = $1
	`, discountColumns)

	var d model.Discount
	err := scanDiscount(r.pool.QueryRow(ctx, query, id), &d)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("discount_id", id.String()).Msg("discount not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("discount_id", id.String()).Msg("failed to query discount")
		return nil, fmt.Errorf("failed to query discount: %w", err)
	}

	return &d, nil
}

// GetActiveByBarcode retrieves an Active discount whose target barcode matches.
func (r *discountRepository) GetActiveByBarcode(ctx context.Context, barcode string) (*model.Discount, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM discounts
		WHERE product_barcode = $1 AND status = $2
		ORDER BY created_at
		LIMIT 1
	`, discountColumns)

	var d model.Discount
	err := scanDiscount(r.pool.QueryRow(ctx, query, barcode, model.DiscountStatusActive), &d)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("barcode", barcode).Msg("failed to query discount by barcode")
		return nil, fmt.Errorf("failed to query discount by barcode: %w", err)
	}

	return &d, nil
}

// ListActive retrieves all discounts with Active status.
func (r *discountRepository) ListActive(ctx context.Context) ([]model.Discount, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM discounts
		WHERE status = $1
		ORDER BY created_at
	`, discountColumns)

	rows, err := r.pool.Query(ctx, query, model.DiscountStatusActive)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query active discounts")
		return nil, fmt.Errorf("failed to query active discounts: %w", err)
	}
	defer rows.Close()

	var discounts []model.Discount
	for rows.Next() {
		var d model.Discount
		if err := scanDiscount(rows, &d); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan discount row")
			return nil, fmt.Errorf("failed to scan discount: %w", err)
		}
		discounts = append(discounts, d)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating discount rows")
		return nil, fmt.Errorf("error iterating discounts: %w", err)
	}

	return discounts, nil
}

// Create inserts a discount record.
func (r *discountRepository) Create(ctx context.Context, d *model.Discount) error {
	query := `
		INSERT INTO discounts (id, name, percentage, product_barcode, status, start_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		d.ID, d.Name, d.Percentage, d.ProductBarcode, d.Status, d.StartDate, d.EndDate, d.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("discount", d.Name).Msg("failed to create discount")
		return fmt.Errorf("failed to create discount: %w", err)
	}

	return nil
}
