package model

import "time"

// Cart is a customer's shopping cart, keyed by phone number.
type Cart struct {
	ID        string    `json:"cart_id" db:"cart_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CartItem is a single product line in a cart with an explicit quantity.
type CartItem struct {
	CartID    string `json:"-" db:"cart_id"`
	ProductID string `json:"product_id" db:"product_id"`
	Quantity  int    `json:"quantity" db:"quantity"`
}
