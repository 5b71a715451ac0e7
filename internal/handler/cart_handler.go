package handler

import (
	"net/http"

	"smartmart/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler handles cart-related HTTP requests.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// cartRequest is the payload shared by the cart mutation endpoints.
type cartRequest struct {
	PhoneNumber string `json:"phone_number"`
	ProductID   string `json:"product_id"`
}

// Create handles POST /api/cart requests.
func (h *CartHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", h.logger)
		return
	}

	var req cartRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}
	if !requireFields(w, h.logger, "phone_number", req.PhoneNumber) {
		return
	}

	if err := h.service.CreateCart(r.Context(), req.PhoneNumber); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "Cart created"})
}

// Add handles POST /api/cart/add requests.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", h.logger)
		return
	}

	var req cartRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}
	if !requireFields(w, h.logger, "phone_number", req.PhoneNumber, "product_id", req.ProductID) {
		return
	}

	if err := h.service.AddProduct(r.Context(), req.PhoneNumber, req.ProductID); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Product added to cart"})
}

// Remove handles POST /api/cart/remove requests.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", h.logger)
		return
	}

	var req cartRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}
	if !requireFields(w, h.logger, "phone_number", req.PhoneNumber, "product_id", req.ProductID) {
		return
	}

	if err := h.service.RemoveProduct(r.Context(), req.PhoneNumber, req.ProductID); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Product removed from cart"})
}

// Price handles POST /api/cart/price requests. A missing cart yields an
// empty priced cart, not an error.
func (h *CartHandler) Price(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", h.logger)
		return
	}

	var req cartRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}
	if !requireFields(w, h.logger, "phone_number", req.PhoneNumber) {
		return
	}

	priced, err := h.service.PriceCart(r.Context(), req.PhoneNumber)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, priced)
}
