package service

import (
	"context"

	"smartmart/internal/model"
	"smartmart/internal/pricing"

	"github.com/google/uuid"
)

// ProductService defines operations for catalogue reads.
type ProductService interface {
	// GetAll retrieves all products with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetDetail retrieves a product by ID or barcode with its resolved
	// discount information.
	GetDetail(ctx context.Context, id string) (*model.ProductDetail, error)
}

// CartService defines operations for cart mutation and pricing.
type CartService interface {
	// CreateCart provisions an empty cart for the customer.
	CreateCart(ctx context.Context, phoneNumber string) error

	// AddProduct takes one unit of stock and adds the product to the cart.
	AddProduct(ctx context.Context, phoneNumber, productID string) error

	// RemoveProduct removes one unit of the product from the cart and
	// returns its stock.
	RemoveProduct(ctx context.Context, phoneNumber, productID string) error

	// PriceCart prices the customer's cart without mutating anything.
	PriceCart(ctx context.Context, phoneNumber string) (*pricing.PricedCart, error)
}

// OrderService defines operations for order placement and history.
type OrderService interface {
	// PlaceOrder converts the customer's cart into a durable order with
	// snapshot pricing.
	PlaceOrder(ctx context.Context, req *model.PlaceOrderRequest) (*model.PlaceOrderResponse, error)

	// ListByUser retrieves the customer's orders, newest first.
	ListByUser(ctx context.Context, phoneNumber string) ([]model.Order, error)

	// GetDetails retrieves one of the customer's orders with its line items.
	GetDetails(ctx context.Context, phoneNumber string, orderID uuid.UUID) (*model.OrderDetails, error)
}

// DiscountService defines operations for discount reads.
type DiscountService interface {
	// ListActive retrieves all currently valid Active discounts joined with
	// their target products.
	ListActive(ctx context.Context) ([]model.DiscountListing, error)
}

// PaymentService defines operations for the payment session bridge.
type PaymentService interface {
	// CreateSession creates a hosted payment session and records a Pending
	// payment against it.
	CreateSession(ctx context.Context, req *model.CreateSessionRequest) (*model.CreateSessionResponse, error)

	// ReconcileSession polls the provider and updates the payment record and
	// the linked order's payment status.
	ReconcileSession(ctx context.Context, sessionID string) (*model.SessionStatusResponse, error)

	// RecentPayments retrieves the customer's most recent payments.
	RecentPayments(ctx context.Context, userID string) ([]model.Payment, error)
}
