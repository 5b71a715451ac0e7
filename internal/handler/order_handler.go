package handler

import (
	"net/http"

	"smartmart/internal/model"
	"smartmart/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Place handles POST /api/orders/place requests.
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", h.logger)
		return
	}

	var req model.PlaceOrderRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}
	if !requireFields(w, h.logger,
		"phone_number", req.PhoneNumber,
		"payment_method", req.PaymentMethod,
		"billing_address", req.BillingAddress,
	) {
		return
	}

	resp, err := h.service.PlaceOrder(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// historyRequest is the payload for the order history and details endpoints.
type historyRequest struct {
	PhoneNumber string `json:"phone_number"`
	OrderID     string `json:"order_id"`
}

// History handles POST /api/orders/history requests.
func (h *OrderHandler) History(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", h.logger)
		return
	}

	var req historyRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}
	if !requireFields(w, h.logger, "phone_number", req.PhoneNumber) {
		return
	}

	orders, err := h.service.ListByUser(r.Context(), req.PhoneNumber)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

// Details handles POST /api/orders/details requests.
func (h *OrderHandler) Details(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", h.logger)
		return
	}

	var req historyRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}
	if !requireFields(w, h.logger, "phone_number", req.PhoneNumber, "order_id", req.OrderID) {
		return
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid order ID format", h.logger)
		return
	}

	details, err := h.service.GetDetails(r.Context(), req.PhoneNumber, orderID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, details)
}
