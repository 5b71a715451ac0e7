package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status values for the three independent order status fields. They are not
// driven by a shared state machine: delivery and payment updates mutate them
// separately after placement.
const (
	OrderStatusCompleted    = "Completed"
	PaymentStatusPending    = "Pending"
	PaymentStatusCompleted  = "Completed"
	PaymentStatusFailed     = "Failed"
	DeliveryStatusDone      = "Done"
	DeliveryStatusInTransit = "In Transit"
)

// Order is a placed order with pricing snapshotted at placement time.
// Later discount or price changes never alter these totals.
type Order struct {
	ID                  uuid.UUID       `json:"order_id" db:"id"`
	UserID              string          `json:"user_id" db:"user_id"`
	CustomerName        string          `json:"customer_name" db:"customer_name"`
	OrderDate           time.Time       `json:"order_date" db:"order_date"`
	TotalAmount         decimal.Decimal `json:"total_amount" db:"total_amount"`
	OriginalTotalAmount decimal.Decimal `json:"original_total_amount" db:"original_total_amount"`
	TotalSavings        decimal.Decimal `json:"total_savings" db:"total_savings"`
	PaymentMethod       string          `json:"payment_method" db:"payment_method"`
	BillingAddress      string          `json:"billing_address" db:"billing_address"`
	OrderStatus         string          `json:"order_status" db:"order_status"`
	PaymentStatus       string          `json:"payment_status" db:"payment_status"`
	DeliveryStatus      string          `json:"delivery_status" db:"delivery_status"`
	CreatedAt           time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at" db:"updated_at"`
}

// OrderItem is a fully denormalised line-item snapshot: product name and
// both price levels are embedded so the row stands on its own.
type OrderItem struct {
	ID                 uuid.UUID       `json:"-" db:"id"`
	OrderID            uuid.UUID       `json:"-" db:"order_id"`
	ProductID          string          `json:"product_id" db:"product_id"`
	ProductName        string          `json:"product_name" db:"product_name"`
	Quantity           int             `json:"quantity" db:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price" db:"unit_price"`
	TotalPrice         decimal.Decimal `json:"total_price" db:"total_price"`
	OriginalUnitPrice  decimal.Decimal `json:"original_unit_price" db:"original_unit_price"`
	OriginalTotalPrice decimal.Decimal `json:"original_total_price" db:"original_total_price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage" db:"discount_percentage"`
	DiscountName       *string         `json:"discount_name" db:"discount_name"`
	CreatedAt          time.Time       `json:"created_at" db:"created_at"`
}

// PlaceOrderRequest is the payload for placing an order from a cart.
type PlaceOrderRequest struct {
	PhoneNumber    string `json:"phone_number"`
	PaymentMethod  string `json:"payment_method"`
	BillingAddress string `json:"billing_address"`
}

// PlaceOrderResponse is returned after a successful placement.
type PlaceOrderResponse struct {
	OrderID          uuid.UUID       `json:"order_id"`
	OrderDate        string          `json:"order_date"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	TotalAmountPaise int64           `json:"total_amount_paise"`
	TotalSavings     decimal.Decimal `json:"total_savings"`
}

// OrderDetails bundles an order with its line-item snapshot.
type OrderDetails struct {
	Order Order       `json:"order"`
	Items []OrderItem `json:"order_items"`
}
