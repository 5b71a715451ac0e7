package handler

import (
	"net/http"

	"smartmart/internal/model"
	"smartmart/internal/service"

	"github.com/rs/zerolog"
)

// PaymentHandler handles payment session HTTP requests.
type PaymentHandler struct {
	service service.PaymentService
	logger  zerolog.Logger
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(service service.PaymentService, logger zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		logger:  logger.With().Str("handler", "payment").Logger(),
	}
}

// CreateSession handles POST /api/payments/session requests.
func (h *PaymentHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", h.logger)
		return
	}

	var req model.CreateSessionRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}
	if !requireFields(w, h.logger, "user_id", req.UserID) {
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidAmount, "amount must be positive", h.logger)
		return
	}

	resp, err := h.service.CreateSession(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// SessionStatus handles GET /api/payments/session/{id} requests. Polling the
// status also reconciles the local payment record with the provider.
func (h *PaymentHandler) SessionStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", h.logger)
		return
	}

	// Expecting path: /api/payments/session/{id}
	path := r.URL.Path
	if len(path) < len("/api/payments/session/") {
		writeError(w, http.StatusBadRequest, "INVALID_PARAMETER", "session ID is required", h.logger)
		return
	}
	sessionID := path[len("/api/payments/session/"):]

	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "INVALID_PARAMETER", "session ID is required", h.logger)
		return
	}

	resp, err := h.service.ReconcileSession(r.Context(), sessionID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

type paymentHistoryRequest struct {
	UserID string `json:"user_id"`
}

// History handles POST /api/payments/history requests.
func (h *PaymentHandler) History(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", h.logger)
		return
	}

	var req paymentHistoryRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}
	if !requireFields(w, h.logger, "user_id", req.UserID) {
		return
	}

	payments, err := h.service.RecentPayments(r.Context(), req.UserID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	if payments == nil {
		payments = []model.Payment{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"payments": payments,
	})
}
