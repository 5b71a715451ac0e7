package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smartmart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// Create provisions an empty cart for the owner.
func (r *cartRepository) Create(ctx context.Context, cartID string, createdAt time.Time) error {
	query := `
		INSERT INTO carts (cart_id, created_at)
		VALUES ($1, $2)
	`

	_, err := r.pool.Exec(ctx, query, cartID, createdAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrCartExists
		}
		r.logger.Error().Err(err).Str("cart_id", cartID).Msg("failed to create cart")
		return fmt.Errorf("failed to create cart: %w", err)
	}

	return nil
}

// Get retrieves a cart by owner.
func (r *cartRepository) Get(ctx context.Context, cartID string) (*model.Cart, error) {
	query := `
		SELECT cart_id, created_at
		FROM carts
		WHERE cart_id = $1
	`

	var c model.Cart
	err := r.pool.QueryRow(ctx, query, cartID).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("cart_id", cartID).Msg("cart not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("cart_id", cartID).Msg("failed to query cart")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}

	return &c, nil
}

// GetItems retrieves the cart's lines ordered by product ID.
func (r *cartRepository) GetItems(ctx context.Context, cartID string) ([]model.CartItem, error) {
	query := `
		SELECT cart_id, product_id, quantity
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY product_id
	`

	rows, err := r.pool.Query(ctx, query, cartID)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID).Msg("failed to query cart items")
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	var items []model.CartItem
	for rows.Next() {
		var item model.CartItem
		if err := rows.Scan(&item.CartID, &item.ProductID, &item.Quantity); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart item row")
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cart item rows")
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return items, nil
}

// AddItem adds one unit of the product to the cart.
func (r *cartRepository) AddItem(ctx context.Context, cartID, productID string) error {
	query := `
		INSERT INTO cart_items (cart_id, product_id, quantity)
		VALUES ($1, $2, 1)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + 1
	`

	_, err := r.pool.Exec(ctx, query, cartID, productID)
	if err != nil {
		r.logger.Error().Err(err).
			Str("cart_id", cartID).
			Str("product_id", productID).
			Msg("failed to add cart item")
		return fmt.Errorf("failed to add cart item: %w", err)
	}

	return nil
}

// RemoveItem removes one unit of the product from the cart.
func (r *cartRepository) RemoveItem(ctx context.Context, cartID, productID string) (bool, error) {
	// Decrement when more than one unit remains, otherwise drop the line.
	decrement := `
		UPDATE cart_items
		SET quantity = quantity - 1
		WHERE cart_id = $1 AND product_id = $2 AND quantity > 1
	`

	tag, err := r.pool.Exec(ctx, decrement, cartID, productID)
	if err != nil {
		r.logger.Error().Err(err).
			Str("cart_id", cartID).
			Str("product_id", productID).
			Msg("failed to decrement cart item")
		return false, fmt.Errorf("failed to decrement cart item: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}

	remove := `
		DELETE FROM cart_items
		WHERE cart_id = $1 AND product_id = $2
	`

	tag, err = r.pool.Exec(ctx, remove, cartID, productID)
	if err != nil {
		r.logger.Error().Err(err).
			Str("cart_id", cartID).
			Str("product_id", productID).
			Msg("failed to remove cart item")
		return false, fmt.Errorf("failed to remove cart item: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// ClearInTx empties the cart within the provided transaction.
func (r *cartRepository) ClearInTx(ctx context.Context, tx pgx.Tx, cartID string) error {
	query := `
		DELETE FROM cart_items
		WHERE cart_id = $1
	`

	_, err := tx.Exec(ctx, query, cartID)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	r.logger.Debug().Str("cart_id", cartID).Msg("cart cleared")

	return nil
}
