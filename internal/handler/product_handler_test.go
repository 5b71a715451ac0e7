package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"smartmart/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) GetDetail(ctx context.Context, id string) (*model.ProductDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductDetail), args.Error(1)
}

func TestProductHandler_GetAll(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		url            string
		mockLimit      int
		mockOffset     int
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Defaults",
			url:            "/api/products",
			mockLimit:      10,
			mockOffset:     0,
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Explicit pagination",
			url:            "/api/products?limit=25&offset=50",
			mockLimit:      25,
			mockOffset:     50,
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Invalid limit",
			url:            "/api/products?limit=abc",
			expectedStatus: http.StatusBadRequest,
			expectService:  false,
		},
		{
			name:           "Invalid offset",
			url:            "/api/products?offset=xyz",
			expectedStatus: http.StatusBadRequest,
			expectService:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockProductService)
			if tt.expectService {
				svc.On("GetAll", mock.Anything, tt.mockLimit, tt.mockOffset).Return([]model.Product{
					{ID: "P001", Name: "Product 1", Price: decimal.NewFromInt(100)},
				}, nil)
			}

			h := NewProductHandler(svc, logger)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := httptest.NewRecorder()

			h.GetAll(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestProductHandler_GetByID(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("Found with discount", func(t *testing.T) {
		name := "Ten Percent Off"
		svc := new(MockProductService)
		svc.On("GetDetail", mock.Anything, "P001").Return(&model.ProductDetail{
			Product: model.Product{
				ID:    "P001",
				Name:  "Product 1",
				Price: decimal.NewFromInt(100),
			},
			DiscountPrice:      decimal.NewFromInt(90),
			DiscountPercentage: decimal.NewFromInt(10),
			DiscountName:       &name,
		}, nil)

		h := NewProductHandler(svc, logger)

		req := httptest.NewRequest(http.MethodGet, "/api/products/P001", nil)
		rec := httptest.NewRecorder()

		h.GetByID(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp, "discount_price")
		assert.Contains(t, resp, "discount_name")
	})

	t.Run("Not found", func(t *testing.T) {
		svc := new(MockProductService)
		svc.On("GetDetail", mock.Anything, "NOPE").Return(nil, model.ErrProductNotFound)

		h := NewProductHandler(svc, logger)

		req := httptest.NewRequest(http.MethodGet, "/api/products/NOPE", nil)
		rec := httptest.NewRecorder()

		h.GetByID(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)

		var resp model.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, model.ErrCodeProductNotFound, resp.Error)
	})
}
