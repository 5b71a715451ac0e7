package router

import (
	"net/http"
	"strings"

	"smartmart/internal/handler"
	"smartmart/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	discountHandler *handler.DiscountHandler,
	paymentHandler *handler.PaymentHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Product handler function
	productRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		// Check if this is a request for a specific product ID
		if r.URL.Path != "/api/products" && r.URL.Path != "/api/products/" {
			productHandler.GetByID(w, r)
			return
		}
		productHandler.GetAll(w, r)
	}

	// Register product routes (both with and without trailing slash)
	mux.HandleFunc("/api/products", productRouteHandler)
	mux.HandleFunc("/api/products/", productRouteHandler)

	// Cart routes
	mux.HandleFunc("/api/cart", cartHandler.Create)
	mux.HandleFunc("/api/cart/add", cartHandler.Add)
	mux.HandleFunc("/api/cart/remove", cartHandler.Remove)
	mux.HandleFunc("/api/cart/price", cartHandler.Price)

	// Order routes
	mux.HandleFunc("/api/orders/place", orderHandler.Place)
	mux.HandleFunc("/api/orders/history", orderHandler.History)
	mux.HandleFunc("/api/orders/details", orderHandler.Details)

	// Discount routes
	mux.HandleFunc("/api/discounts", discountHandler.List)

	// Payment handler function
	paymentSessionRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		// Check if this is a status poll for a specific session ID
		if strings.HasPrefix(r.URL.Path, "/api/payments/session/") && r.URL.Path != "/api/payments/session/" {
			paymentHandler.SessionStatus(w, r)
			return
		}
		paymentHandler.CreateSession(w, r)
	}

	// Register payment routes (both with and without trailing slash)
	mux.HandleFunc("/api/payments/session", paymentSessionRouteHandler)
	mux.HandleFunc("/api/payments/session/", paymentSessionRouteHandler)
	mux.HandleFunc("/api/payments/history", paymentHandler.History)

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	var h http.Handler = mux
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
