package service

import (
	"context"
	"errors"
	"testing"

	"smartmart/internal/model"
	"smartmart/internal/payment"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProvider is a mock implementation of payment.Provider.
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) CreateSession(ctx context.Context, params payment.CreateSessionParams) (*payment.Session, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Session), args.Error(1)
}

func (m *MockProvider) SessionStatus(ctx context.Context, sessionID string) (payment.Status, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(payment.Status), args.Error(1)
}

func TestPaymentService_CreateSession_Success(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	provider := new(MockProvider)
	provider.On("CreateSession", ctx, mock.AnythingOfType("payment.CreateSessionParams")).
		Return(&payment.Session{ID: "cs_test_123", URL: "https://checkout.example/cs_test_123"}, nil)

	paymentRepo := new(MockPaymentRepository)
	var recorded *model.Payment
	paymentRepo.On("Create", ctx, mock.AnythingOfType("*model.Payment")).
		Run(func(args mock.Arguments) { recorded = args.Get(1).(*model.Payment) }).
		Return(nil)

	svc := NewPaymentService(paymentRepo, new(MockOrderRepository), provider, logger)

	resp, err := svc.CreateSession(ctx, &model.CreateSessionRequest{
		UserID: "9876543210",
		Amount: 299.50,
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_test_123", resp.SessionID)
	assert.Equal(t, int64(29950), resp.AmountPaise)
	assert.Equal(t, 299.50, resp.Amount)
	assert.Contains(t, resp.OrderID, "order_9876543210_")

	require.NotNil(t, recorded)
	assert.Equal(t, model.PaymentStatusPending, recorded.PaymentStatus)
	assert.Equal(t, "upi", recorded.PaymentMethod)
	require.NotNil(t, recorded.SessionID)
	assert.Equal(t, "cs_test_123", *recorded.SessionID)
}

func TestPaymentService_CreateSession_AmountTooSmall(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	provider := new(MockProvider)
	paymentRepo := new(MockPaymentRepository)

	svc := NewPaymentService(paymentRepo, new(MockOrderRepository), provider, logger)

	_, err := svc.CreateSession(ctx, &model.CreateSessionRequest{
		UserID:     "9876543210",
		Amount:     25,
		AmountUnit: "paise",
	})
	assert.ErrorIs(t, err, model.ErrInvalidAmount)

	provider.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
}

func TestPaymentService_CreateSession_ProviderError(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	provider := new(MockProvider)
	provider.On("CreateSession", ctx, mock.AnythingOfType("payment.CreateSessionParams")).
		Return(nil, errors.New("connection refused"))

	paymentRepo := new(MockPaymentRepository)

	svc := NewPaymentService(paymentRepo, new(MockOrderRepository), provider, logger)

	_, err := svc.CreateSession(ctx, &model.CreateSessionRequest{
		UserID: "9876543210",
		Amount: 500,
	})
	require.Error(t, err)

	var de *model.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, model.ErrCodeUpstream, de.Code)

	paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPaymentService_ReconcileSession_PaidUpdatesLinkedOrder(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	orderID := uuid.New()
	sessionID := "cs_test_123"

	provider := new(MockProvider)
	provider.On("SessionStatus", ctx, sessionID).Return(payment.StatusPaid, nil)

	paymentRepo := new(MockPaymentRepository)
	paymentRepo.On("GetBySessionID", ctx, sessionID).Return(&model.Payment{
		ID:        uuid.New(),
		OrderID:   orderID.String(),
		SessionID: &sessionID,
	}, nil)
	paymentRepo.On("UpdateStatusBySession", ctx, sessionID, model.PaymentStatusCompleted, mock.AnythingOfType("time.Time")).Return(nil)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("UpdatePaymentStatus", ctx, orderID, model.PaymentStatusCompleted).Return(nil)

	svc := NewPaymentService(paymentRepo, orderRepo, provider, logger)

	resp, err := svc.ReconcileSession(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusCompleted, resp.PaymentStatus)
	assert.True(t, resp.PaymentCompleted)

	orderRepo.AssertExpectations(t)
	paymentRepo.AssertExpectations(t)
}

func TestPaymentService_ReconcileSession_SyntheticOrderSkipsUpdate(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	sessionID := "cs_test_456"

	provider := new(MockProvider)
	provider.On("SessionStatus", ctx, sessionID).Return(payment.StatusPending, nil)

	paymentRepo := new(MockPaymentRepository)
	paymentRepo.On("GetBySessionID", ctx, sessionID).Return(&model.Payment{
		ID:        uuid.New(),
		OrderID:   "order_9876543210_1700000000",
		SessionID: &sessionID,
	}, nil)
	paymentRepo.On("UpdateStatusBySession", ctx, sessionID, model.PaymentStatusPending, mock.AnythingOfType("time.Time")).Return(nil)

	orderRepo := new(MockOrderRepository)

	svc := NewPaymentService(paymentRepo, orderRepo, provider, logger)

	resp, err := svc.ReconcileSession(ctx, sessionID)
	require.NoError(t, err)
	assert.False(t, resp.PaymentCompleted)

	// A synthetic order id is not a UUID, so no order row is touched.
	orderRepo.AssertNotCalled(t, "UpdatePaymentStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentService_ReconcileSession_UnknownSession(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	sessionID := "cs_missing"

	provider := new(MockProvider)
	provider.On("SessionStatus", ctx, sessionID).Return(payment.StatusFailed, nil)

	paymentRepo := new(MockPaymentRepository)
	paymentRepo.On("GetBySessionID", ctx, sessionID).Return(nil, nil)

	svc := NewPaymentService(paymentRepo, new(MockOrderRepository), provider, logger)

	_, err := svc.ReconcileSession(ctx, sessionID)
	assert.ErrorIs(t, err, model.ErrPaymentNotFound)
}

func TestMapProviderStatus(t *testing.T) {
	assert.Equal(t, model.PaymentStatusCompleted, mapProviderStatus(payment.StatusPaid))
	assert.Equal(t, model.PaymentStatusFailed, mapProviderStatus(payment.StatusFailed))
	assert.Equal(t, model.PaymentStatusPending, mapProviderStatus(payment.StatusPending))
	assert.Equal(t, model.PaymentStatusPending, mapProviderStatus(payment.Status("weird")))
}

func TestInferAmountPaise(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		unit   string
		want   int64
	}{
		{"explicit paise", 29950, "paise", 29950},
		{"explicit rupees", 299.50, "rupees", 29950},
		{"fractional defaults to rupees", 123.45, "", 12345},
		{"small integer treated as rupees", 500, "", 50000},
		{"large round integer treated as paise", 29900, "", 29900},
		{"large non-round integer treated as rupees", 1001, "", 100100},
		{"explicit unit beats the heuristic", 29900, "rupees", 2990000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inferAmountPaise(tt.amount, tt.unit))
		})
	}
}
