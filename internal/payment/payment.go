// Package payment wraps the external hosted-checkout provider behind a
// narrow interface so business logic and tests never touch the provider SDK.
package payment

import "context"

// Status is the provider-side state of a checkout session.
type Status string

// Provider status values the core depends on.
const (
	StatusPaid    Status = "paid"
	StatusPending Status = "pending"
	StatusFailed  Status = "failed"
)

// CreateSessionParams describes the hosted session to create. The amount is
// always in paise, the smallest currency subunit.
type CreateSessionParams struct {
	AmountPaise    int64
	UserID         string
	OrderID        string
	BillingAddress string
}

// Session is a created hosted-checkout session.
type Session struct {
	ID  string
	URL string
}

// Provider defines the payment-provider contract the core depends on.
type Provider interface {
	// CreateSession creates a hosted payment session for the given amount.
	CreateSession(ctx context.Context, params CreateSessionParams) (*Session, error)

	// SessionStatus polls the provider for the session's current state.
	SessionStatus(ctx context.Context, sessionID string) (Status, error)
}
