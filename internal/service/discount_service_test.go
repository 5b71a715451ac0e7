package service

import (
	"context"
	"testing"
	"time"

	"smartmart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDiscountRepository is a mock implementation of DiscountRepository.
type MockDiscountRepository struct {
	mock.Mock
}

func (m *MockDiscountRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Discount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Discount), args.Error(1)
}

func (m *MockDiscountRepository) GetActiveByBarcode(ctx context.Context, barcode string) (*model.Discount, error) {
	args := m.Called(ctx, barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Discount), args.Error(1)
}

func (m *MockDiscountRepository) ListActive(ctx context.Context) ([]model.Discount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Discount), args.Error(1)
}

func (m *MockDiscountRepository) Create(ctx context.Context, d *model.Discount) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

var discountTestNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func discountTestClock() time.Time { return discountTestNow }

func TestDiscountService_ListActive(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	liveID := uuid.New()
	expiredID := uuid.New()
	orphanID := uuid.New()

	discountRepo := new(MockDiscountRepository)
	discountRepo.On("ListActive", ctx).Return([]model.Discount{
		{
			ID:             liveID,
			Name:           "Live Discount",
			Percentage:     decimal.NewFromInt(20),
			ProductBarcode: "BAR001",
			Status:         model.DiscountStatusActive,
			StartDate:      discountTestNow.Add(-24 * time.Hour),
			EndDate:        discountTestNow.Add(24 * time.Hour),
		},
		{
			ID:             expiredID,
			Name:           "Expired Discount",
			Percentage:     decimal.NewFromInt(50),
			ProductBarcode: "BAR002",
			Status:         model.DiscountStatusActive,
			StartDate:      discountTestNow.Add(-72 * time.Hour),
			EndDate:        discountTestNow.Add(-48 * time.Hour),
		},
		{
			ID:         orphanID,
			Name:       "Orphan Discount",
			Percentage: decimal.NewFromInt(10),
			Status:     model.DiscountStatusActive,
			StartDate:  discountTestNow.Add(-24 * time.Hour),
			EndDate:    discountTestNow.Add(24 * time.Hour),
		},
	}, nil)

	productRepo := new(MockProductRepository)
	productRepo.On("GetByIDOrBarcode", ctx, "BAR001").Return(&model.Product{
		ID:      "P001",
		Name:    "Test Product",
		Barcode: "BAR001",
		Price:   decimal.NewFromFloat(549.00),
	}, nil)
	// The orphan has no barcode and no product references it.
	productRepo.On("GetByDiscountID", ctx, orphanID).Return(nil, nil)

	svc := NewDiscountService(discountRepo, productRepo, discountTestClock, logger)

	listings, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, listings, 1)

	l := listings[0]
	assert.Equal(t, liveID, l.DiscountID)
	assert.Equal(t, "Live Discount", l.Name)
	assert.Equal(t, "Test Product", l.ProductName)
	assert.True(t, l.DiscountedPrice.Equal(decimal.NewFromFloat(439.20)), "discounted was %s", l.DiscountedPrice)
	assert.True(t, l.Savings.Equal(decimal.NewFromFloat(109.80)))

	// The expired discount must not even be joined against a product.
	productRepo.AssertNotCalled(t, "GetByIDOrBarcode", ctx, "BAR002")
}

func TestDiscountService_ListActive_ReverseLink(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	id := uuid.New()
	discountRepo := new(MockDiscountRepository)
	discountRepo.On("ListActive", ctx).Return([]model.Discount{
		{
			ID:         id,
			Name:       "Referenced Discount",
			Percentage: decimal.NewFromInt(15),
			Status:     model.DiscountStatusActive,
			StartDate:  discountTestNow.Add(-24 * time.Hour),
			EndDate:    discountTestNow.Add(24 * time.Hour),
		},
	}, nil)

	productRepo := new(MockProductRepository)
	productRepo.On("GetByDiscountID", ctx, id).Return(&model.Product{
		ID:    "P009",
		Name:  "Linked Product",
		Price: decimal.NewFromInt(200),
	}, nil)

	svc := NewDiscountService(discountRepo, productRepo, discountTestClock, logger)

	listings, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "Linked Product", listings[0].ProductName)
	assert.True(t, listings[0].DiscountedPrice.Equal(decimal.NewFromInt(170)))
}
