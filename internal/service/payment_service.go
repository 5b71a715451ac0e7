package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"smartmart/internal/model"
	"smartmart/internal/payment"
	"smartmart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// recentPaymentLimit caps the payment history used by the profile view.
const recentPaymentLimit = 7

// paymentService implements PaymentService.
type paymentService struct {
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
	provider    payment.Provider
	logger      zerolog.Logger
}

// NewPaymentService creates a new payment service.
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	orderRepo repository.OrderRepository,
	provider payment.Provider,
	logger zerolog.Logger,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		provider:    provider,
		logger:      logger.With().Str("service", "payment").Logger(),
	}
}

// CreateSession creates a hosted payment session and records a Pending
// payment against it.
func (s *paymentService) CreateSession(ctx context.Context, req *model.CreateSessionRequest) (*model.CreateSessionResponse, error) {
	amountPaise := inferAmountPaise(req.Amount, req.AmountUnit)
	if amountPaise < 50 {
		return nil, model.ErrInvalidAmount
	}

	now := time.Now()
	orderID := req.OrderID
	if orderID == "" {
		orderID = fmt.Sprintf("order_%s_%d", req.UserID, now.Unix())
	}

	sess, err := s.provider.CreateSession(ctx, payment.CreateSessionParams{
		AmountPaise:    amountPaise,
		UserID:         req.UserID,
		OrderID:        orderID,
		BillingAddress: req.BillingAddress,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", req.UserID).Msg("provider session creation failed")
		return nil, model.NewDomainError(model.ErrCodeUpstream, fmt.Sprintf("payment provider error: %v", err))
	}

	method := req.PaymentMethod
	if method == "" {
		method = "upi"
	}

	record := &model.Payment{
		ID:            uuid.New(),
		OrderID:       orderID,
		UserID:        req.UserID,
		AmountPaise:   amountPaise,
		PaymentMethod: method,
		PaymentStatus: model.PaymentStatusPending,
		TransactionID: transactionID(now, req.UserID),
		SessionID:     &sess.ID,
		Currency:      "INR",
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.paymentRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record payment session: %w", err)
	}

	s.logger.Info().
		Str("session_id", sess.ID).
		Str("order_id", orderID).
		Int64("amount_paise", amountPaise).
		Msg("payment session created")

	return &model.CreateSessionResponse{
		SessionID:   sess.ID,
		URL:         sess.URL,
		AmountPaise: amountPaise,
		Amount:      float64(amountPaise) / 100.0,
		Currency:    "INR",
		OrderID:     orderID,
	}, nil
}

// ReconcileSession polls the provider and maps its status onto the payment
// record and, when the payment is linked to a placed order, onto that
// order's payment_status field.
func (s *paymentService) ReconcileSession(ctx context.Context, sessionID string) (*model.SessionStatusResponse, error) {
	providerStatus, err := s.provider.SessionStatus(ctx, sessionID)
	if err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("provider status poll failed")
		return nil, model.NewDomainError(model.ErrCodeUpstream, fmt.Sprintf("payment provider error: %v", err))
	}

	status := mapProviderStatus(providerStatus)

	record, err := s.paymentRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment record: %w", err)
	}
	if record == nil {
		return nil, model.ErrPaymentNotFound
	}

	now := time.Now()
	if err := s.paymentRepo.UpdateStatusBySession(ctx, sessionID, status, now); err != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}

	// Synthetic order ids from standalone sessions have no order row behind
	// them, only placed orders are updated.
	if orderID, parseErr := uuid.Parse(record.OrderID); parseErr == nil {
		if err := s.orderRepo.UpdatePaymentStatus(ctx, orderID, status); err != nil &&
			!errors.Is(err, model.ErrOrderNotFound) {
			return nil, fmt.Errorf("failed to update order payment status: %w", err)
		}
	}

	s.logger.Info().
		Str("session_id", sessionID).
		Str("provider_status", string(providerStatus)).
		Str("payment_status", status).
		Msg("payment session reconciled")

	return &model.SessionStatusResponse{
		SessionID:        sessionID,
		ProviderStatus:   string(providerStatus),
		PaymentStatus:    status,
		PaymentCompleted: status == model.PaymentStatusCompleted,
	}, nil
}

// RecentPayments retrieves the customer's most recent payments.
func (s *paymentService) RecentPayments(ctx context.Context, userID string) ([]model.Payment, error) {
	payments, err := s.paymentRepo.ListRecentByUser(ctx, userID, recentPaymentLimit)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to list payments")
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	return payments, nil
}

// mapProviderStatus translates the provider's session state into the
// internal payment status vocabulary.
func mapProviderStatus(status payment.Status) string {
	switch status {
	case payment.StatusPaid:
		return model.PaymentStatusCompleted
	case payment.StatusFailed:
		return model.PaymentStatusFailed
	default:
		return model.PaymentStatusPending
	}
}

// inferAmountPaise normalises a request amount into paise. An explicit unit
// always wins; otherwise a large round integer is assumed to already be in
// paise and everything else is treated as rupees.
func inferAmountPaise(amount float64, unit string) int64 {
	switch unit {
	case "paise":
		return int64(math.Round(amount))
	case "rupees":
		return int64(math.Round(amount * 100))
	}

	if amount == math.Trunc(amount) {
		v := int64(amount)
		if v >= 1000 && v%100 == 0 {
			return v
		}
		return v * 100
	}

	return int64(math.Round(amount * 100))
}
