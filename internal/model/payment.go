package model

import (
	"time"

	"github.com/google/uuid"
)

// Payment is one payment attempt linked to an order. The amount is stored in
// paise, the smallest currency subunit, so it is always an exact integer.
type Payment struct {
	ID            uuid.UUID `json:"-" db:"id"`
	OrderID       string    `json:"order_id" db:"order_id"`
	UserID        string    `json:"user_id" db:"user_id"`
	AmountPaise   int64     `json:"amount" db:"amount_paise"`
	PaymentMethod string    `json:"payment_method" db:"payment_method"`
	PaymentStatus string    `json:"payment_status" db:"payment_status"`
	TransactionID string    `json:"transaction_id" db:"transaction_id"`
	SessionID     *string   `json:"session_id,omitempty" db:"session_id"`
	Currency      string    `json:"currency" db:"currency"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// CreateSessionRequest is the payload for creating a hosted payment session.
// Amount may be given in rupees or paise; AmountUnit disambiguates, otherwise
// the unit is inferred.
type CreateSessionRequest struct {
	UserID         string  `json:"user_id"`
	Amount         float64 `json:"amount"`
	AmountUnit     string  `json:"amount_unit,omitempty"`
	OrderID        string  `json:"order_id,omitempty"`
	PaymentMethod  string  `json:"payment_method,omitempty"`
	BillingAddress string  `json:"billing_address,omitempty"`
}

// CreateSessionResponse is returned after a payment session is created.
type CreateSessionResponse struct {
	SessionID   string  `json:"session_id"`
	URL         string  `json:"url"`
	AmountPaise int64   `json:"amount_paise"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	OrderID     string  `json:"order_id"`
}

// SessionStatusResponse reports the reconciled state of a payment session.
type SessionStatusResponse struct {
	SessionID        string `json:"session_id"`
	ProviderStatus   string `json:"provider_status"`
	PaymentStatus    string `json:"payment_status"`
	PaymentCompleted bool   `json:"payment_completed"`
}
