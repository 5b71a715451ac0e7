package repository

import (
	"context"
	"time"

	"smartmart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for catalogue data access.
type ProductRepository interface {
	// GetAll retrieves all products with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByIDOrBarcode retrieves a single product matching either identifier.
	// Returns nil without error when no product matches.
	GetByIDOrBarcode(ctx context.Context, id string) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)

	// GetByDiscountID retrieves the product referencing the given discount.
	GetByDiscountID(ctx context.Context, discountID uuid.UUID) (*model.Product, error)

	// DecrementStock atomically decrements stock by one only while stock is
	// still positive. Returns false when no row qualified, which covers both
	// an unknown product and an out-of-stock one.
	DecrementStock(ctx context.Context, id string) (bool, error)

	// IncrementStock returns one unit of stock, used by cart removal and by
	// the add-to-cart compensation path.
	IncrementStock(ctx context.Context, id string) error
}

// DiscountRepository defines the interface for discount data access.
type DiscountRepository interface {
	// GetByID retrieves a discount by identity, regardless of status.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Discount, error)

	// GetActiveByBarcode retrieves an Active discount whose target barcode
	// matches. Returns nil without error when none matches.
	GetActiveByBarcode(ctx context.Context, barcode string) (*model.Discount, error)

	// ListActive retrieves all discounts with Active status.
	ListActive(ctx context.Context) ([]model.Discount, error)

	// Create inserts a discount record.
	Create(ctx context.Context, d *model.Discount) error
}

// CartRepository defines the interface for cart data access.
type CartRepository interface {
	// Create provisions an empty cart. Returns model.ErrCartExists when the
	// owner already has one.
	Create(ctx context.Context, cartID string, createdAt time.Time) error

	// Get retrieves a cart by owner. Returns nil without error when absent.
	Get(ctx context.Context, cartID string) (*model.Cart, error)

	// GetItems retrieves the cart's lines ordered by product ID. A missing
	// cart yields no lines.
	GetItems(ctx context.Context, cartID string) ([]model.CartItem, error)

	// AddItem adds one unit of the product to the cart, creating the line or
	// incrementing its quantity.
	AddItem(ctx context.Context, cartID, productID string) error

	// RemoveItem removes one unit of the product from the cart, deleting the
	// line when its quantity reaches zero. Returns false when the product is
	// not in the cart.
	RemoveItem(ctx context.Context, cartID, productID string) (bool, error)

	// ClearInTx empties the cart within the provided transaction.
	ClearInTx(ctx context.Context, tx pgx.Tx, cartID string) error
}

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts the order's line-item snapshot within the
	// provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves one of the user's orders with its item snapshot.
	// Returns nil without error when absent.
	GetByID(ctx context.Context, userID string, id uuid.UUID) (*model.Order, []model.OrderItem, error)

	// ListByUser retrieves the user's orders, newest first.
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)

	// UpdatePaymentStatus sets the order's payment_status field.
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string) error
}

// PaymentRepository defines the interface for payment data access.
type PaymentRepository interface {
	// Create inserts a payment record.
	Create(ctx context.Context, p *model.Payment) error

	// CreateInTx inserts a payment record within the provided transaction,
	// used by order placement.
	CreateInTx(ctx context.Context, tx pgx.Tx, p *model.Payment) error

	// GetBySessionID retrieves the payment linked to a provider session.
	// Returns nil without error when absent.
	GetBySessionID(ctx context.Context, sessionID string) (*model.Payment, error)

	// UpdateStatusBySession sets the payment status for a provider session.
	UpdateStatusBySession(ctx context.Context, sessionID, status string, updatedAt time.Time) error

	// ListRecentByUser retrieves the user's most recent payments, newest
	// first, capped at limit.
	ListRecentByUser(ctx context.Context, userID string, limit int) ([]model.Payment, error)
}
