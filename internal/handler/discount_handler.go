package handler

import (
	"net/http"

	"smartmart/internal/model"
	"smartmart/internal/service"

	"github.com/rs/zerolog"
)

// DiscountHandler handles discount listing HTTP requests.
type DiscountHandler struct {
	service service.DiscountService
	logger  zerolog.Logger
}

// NewDiscountHandler creates a new discount handler.
func NewDiscountHandler(service service.DiscountService, logger zerolog.Logger) *DiscountHandler {
	return &DiscountHandler{
		service: service,
		logger:  logger.With().Str("handler", "discount").Logger(),
	}
}

// List handles GET /api/discounts requests. Only discounts that are active
// and within their validity window are returned.
func (h *DiscountHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", h.logger)
		return
	}

	discounts, err := h.service.ListActive(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	if discounts == nil {
		discounts = []model.DiscountListing{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"discounts": discounts,
	})
}
