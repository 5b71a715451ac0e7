package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smartmart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const paymentColumns = `id, order_id, user_id, amount_paise, payment_method, payment_status,
		transaction_id, session_id, currency, created_at, updated_at`

const insertPaymentQuery = `
		INSERT INTO payments (id, order_id, user_id, amount_paise, payment_method,
			payment_status, transaction_id, session_id, currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

// paymentRepository implements the PaymentRepository interface using PostgreSQL.
type paymentRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPaymentRepository creates a new PostgreSQL-backed payment repository.
func NewPaymentRepository(pool *pgxpool.Pool, logger zerolog.Logger) PaymentRepository {
	return &paymentRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "payment").Logger(),
	}
}

func scanPayment(row pgx.Row, p *model.Payment) error {
	return row.Scan(
		&p.ID,
		&p.OrderID,
		&p.UserID,
		&p.AmountPaise,
		&p.PaymentMethod,
		&p.PaymentStatus,
		&p.TransactionID,
		&p.SessionID,
		&p.Currency,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}

// Create inserts a payment record.
func (r *paymentRepository) Create(ctx context.Context, p *model.Payment) error {
	_, err := r.pool.Exec(ctx, insertPaymentQuery,
		p.ID, p.OrderID, p.UserID, p.AmountPaise, p.PaymentMethod,
		p.PaymentStatus, p.TransactionID, p.SessionID, p.Currency, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("transaction_id", p.TransactionID).Msg("failed to create payment")
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return nil
}

// CreateInTx inserts a payment record within the provided transaction.
func (r *paymentRepository) CreateInTx(ctx context.Context, tx pgx.Tx, p *model.Payment) error {
	_, err := tx.Exec(ctx, insertPaymentQuery,
		p.ID, p.OrderID, p.UserID, p.AmountPaise, p.PaymentMethod,
		p.PaymentStatus, p.TransactionID, p.SessionID, p.Currency, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("transaction_id", p.TransactionID).Msg("failed to create payment")
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return nil
}

// GetBySessionID retrieves the payment linked to a provider session.
func (r *paymentRepository) GetBySessionID(ctx context.Context, sessionID string) (*model.Payment, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM payments
		WHERE session_id = $1
	`, paymentColumns)

	var p model.Payment
	err := scanPayment(r.pool.QueryRow(ctx, query, sessionID), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("session_id", sessionID).Msg("payment not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to query payment")
		return nil, fmt.Errorf("failed to query payment: %w", err)
	}

	return &p, nil
}

// UpdateStatusBySession sets the payment status for a provider session.
func (r *paymentRepository) UpdateStatusBySession(ctx context.Context, sessionID, status string, updatedAt time.Time) error {
	query := `
		UPDATE payments
		SET payment_status = $2, updated_at = $3
		WHERE session_id = $1
	`

	tag, err := r.pool.Exec(ctx, query, sessionID, status, updatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to update payment status")
		return fmt.Errorf("failed to update payment status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrPaymentNotFound
	}

	return nil
}

// ListRecentByUser retrieves the user's most recent payments, newest first.
func (r *paymentRepository) ListRecentByUser(ctx context.Context, userID string, limit int) ([]model.Payment, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM payments
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, paymentColumns)

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query payments")
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	var payments []model.Payment
	for rows.Next() {
		var p model.Payment
		if err := scanPayment(rows, &p); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan payment row")
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating payment rows")
		return nil, fmt.Errorf("error iterating payments: %w", err)
	}

	return payments, nil
}
