package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"smartmart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) PlaceOrder(ctx context.Context, req *model.PlaceOrderRequest) (*model.PlaceOrderResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlaceOrderResponse), args.Error(1)
}

func (m *MockOrderService) ListByUser(ctx context.Context, phoneNumber string) ([]model.Order, error) {
	args := m.Called(ctx, phoneNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) GetDetails(ctx context.Context, phoneNumber string, orderID uuid.UUID) (*model.OrderDetails, error) {
	args := m.Called(ctx, phoneNumber, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderDetails), args.Error(1)
}

func TestOrderHandler_Place(t *testing.T) {
	logger := zerolog.Nop()

	validBody := map[string]string{
		"phone_number":    "9876543210",
		"payment_method":  "card",
		"billing_address": "42 MG Road, Bengaluru",
	}

	tests := []struct {
		name           string
		method         string
		requestBody    interface{}
		mockResponse   *model.PlaceOrderResponse
		mockError      error
		expectedStatus int
		expectedCode   string
		expectService  bool
	}{
		{
			name:        "successful placement",
			method:      http.MethodPost,
			requestBody: validBody,
			mockResponse: &model.PlaceOrderResponse{
				OrderID:          uuid.New(),
				OrderDate:        "2026-03-15",
				TotalAmount:      decimal.NewFromFloat(230),
				TotalAmountPaise: 23000,
				TotalSavings:     decimal.NewFromFloat(20),
			},
			expectedStatus: http.StatusCreated,
			expectService:  true,
		},
		{
			name:           "empty cart",
			method:         http.MethodPost,
			requestBody:    validBody,
			mockError:      model.ErrEmptyCart,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeEmptyCart,
			expectService:  true,
		},
		{
			name:           "unknown cart",
			method:         http.MethodPost,
			requestBody:    validBody,
			mockError:      model.ErrCartNotFound,
			expectedStatus: http.StatusNotFound,
			expectedCode:   model.ErrCodeCartNotFound,
			expectService:  true,
		},
		{
			name:   "missing billing address",
			method: http.MethodPost,
			requestBody: map[string]string{
				"phone_number":   "9876543210",
				"payment_method": "card",
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeMissingField,
		},
		{
			name:           "wrong method",
			method:         http.MethodGet,
			requestBody:    validBody,
			expectedStatus: http.StatusMethodNotAllowed,
			expectedCode:   "METHOD_NOT_ALLOWED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			if tt.expectService {
				mockService.On("PlaceOrder", mock.Anything, mock.AnythingOfType("*model.PlaceOrderRequest")).
					Return(tt.mockResponse, tt.mockError)
			}
			h := NewOrderHandler(mockService, logger)

			body, err := json.Marshal(tt.requestBody)
			require.NoError(t, err)

			req := httptest.NewRequest(tt.method, "/api/orders/place", bytes.NewReader(body))
			rec := httptest.NewRecorder()
			h.Place(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				assert.Contains(t, rec.Body.String(), tt.expectedCode)
			}
			if !tt.expectService {
				mockService.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestOrderHandler_Place_ResponseBody(t *testing.T) {
	mockService := new(MockOrderService)
	orderID := uuid.New()
	mockService.On("PlaceOrder", mock.Anything, mock.Anything).Return(&model.PlaceOrderResponse{
		OrderID:          orderID,
		OrderDate:        "2026-03-15",
		TotalAmount:      decimal.RequireFromString("230.00"),
		TotalAmountPaise: 23000,
		TotalSavings:     decimal.RequireFromString("20.00"),
	}, nil)
	h := NewOrderHandler(mockService, zerolog.Nop())

	body, _ := json.Marshal(map[string]string{
		"phone_number":    "9876543210",
		"payment_method":  "upi",
		"billing_address": "42 MG Road, Bengaluru",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/orders/place", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Place(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, orderID.String(), resp["order_id"])
	assert.Equal(t, float64(23000), resp["total_amount_paise"])
	assert.Contains(t, rec.Body.String(), `"total_savings":"20.00"`)
}

func TestOrderHandler_History(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("returns customer orders", func(t *testing.T) {
		mockService := new(MockOrderService)
		mockService.On("ListByUser", mock.Anything, "9876543210").Return([]model.Order{
			{ID: uuid.New(), UserID: "9876543210", TotalAmount: decimal.NewFromInt(230)},
		}, nil)
		h := NewOrderHandler(mockService, logger)

		body, _ := json.Marshal(map[string]string{"phone_number": "9876543210"})
		req := httptest.NewRequest(http.MethodPost, "/api/orders/history", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		h.History(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"orders"`)
		mockService.AssertExpectations(t)
	})

	t.Run("no orders yields empty list not null", func(t *testing.T) {
		mockService := new(MockOrderService)
		mockService.On("ListByUser", mock.Anything, "9876543210").Return([]model.Order{}, nil)
		h := NewOrderHandler(mockService, logger)

		body, _ := json.Marshal(map[string]string{"phone_number": "9876543210"})
		req := httptest.NewRequest(http.MethodPost, "/api/orders/history", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		h.History(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"orders":[]`)
	})

	t.Run("missing phone number", func(t *testing.T) {
		mockService := new(MockOrderService)
		h := NewOrderHandler(mockService, logger)

		req := httptest.NewRequest(http.MethodPost, "/api/orders/history", bytes.NewReader([]byte(`{}`)))
		rec := httptest.NewRecorder()
		h.History(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), model.ErrCodeMissingField)
		mockService.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything)
	})
}

func TestOrderHandler_Details(t *testing.T) {
	logger := zerolog.Nop()
	orderID := uuid.New()

	t.Run("returns order with items", func(t *testing.T) {
		mockService := new(MockOrderService)
		mockService.On("GetDetails", mock.Anything, "9876543210", orderID).Return(&model.OrderDetails{
			Order: model.Order{ID: orderID, UserID: "9876543210"},
			Items: []model.OrderItem{{ProductID: "PROD001", Quantity: 2}},
		}, nil)
		h := NewOrderHandler(mockService, logger)

		body, _ := json.Marshal(map[string]string{
			"phone_number": "9876543210",
			"order_id":     orderID.String(),
		})
		req := httptest.NewRequest(http.MethodPost, "/api/orders/details", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		h.Details(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"order_items"`)
		mockService.AssertExpectations(t)
	})

	t.Run("malformed order id", func(t *testing.T) {
		mockService := new(MockOrderService)
		h := NewOrderHandler(mockService, logger)

		body, _ := json.Marshal(map[string]string{
			"phone_number": "9876543210",
			"order_id":     "not-a-uuid",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/orders/details", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		h.Details(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "GetDetails", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("order belongs to another customer", func(t *testing.T) {
		mockService := new(MockOrderService)
		mockService.On("GetDetails", mock.Anything, "1111111111", orderID).
			Return(nil, model.ErrOrderNotFound)
		h := NewOrderHandler(mockService, logger)

		body, _ := json.Marshal(map[string]string{
			"phone_number": "1111111111",
			"order_id":     orderID.String(),
		})
		req := httptest.NewRequest(http.MethodPost, "/api/orders/details", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		h.Details(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), model.ErrCodeOrderNotFound)
	})
}
