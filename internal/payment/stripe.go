package payment

import (
	"context"
	"fmt"

	"smartmart/internal/config"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// StripeProvider implements Provider on top of Stripe hosted checkout.
type StripeProvider struct {
	api        *client.API
	successURL string
	cancelURL  string
	logger     zerolog.Logger
}

// NewStripeProvider creates a Stripe-backed payment provider.
func NewStripeProvider(cfg config.StripeConfig, logger zerolog.Logger) *StripeProvider {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)

	return &StripeProvider{
		api:        api,
		successURL: cfg.SuccessURL,
		cancelURL:  cfg.CancelURL,
		logger:     logger.With().Str("component", "stripe-provider").Logger(),
	}
}

// CreateSession creates a hosted checkout session with a single INR line
// item carrying the full amount in paise.
func (p *StripeProvider) CreateSession(ctx context.Context, params CreateSessionParams) (*Session, error) {
	sessionParams := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyINR)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(fmt.Sprintf("SmartMart Order #%s", params.OrderID)),
						Description: stripe.String(fmt.Sprintf("Payment for order %s", params.OrderID)),
					},
					UnitAmount: stripe.Int64(params.AmountPaise),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(p.successURL),
		CancelURL:  stripe.String(p.cancelURL),
	}
	sessionParams.Context = ctx
	sessionParams.AddMetadata("user_id", params.UserID)
	sessionParams.AddMetadata("order_id", params.OrderID)
	sessionParams.AddMetadata("platform", "smartmart")
	if params.BillingAddress != "" {
		sessionParams.AddMetadata("billing_address", params.BillingAddress)
	}

	sess, err := p.api.CheckoutSessions.New(sessionParams)
	if err != nil {
		p.logger.Error().Err(err).Str("order_id", params.OrderID).Msg("failed to create checkout session")
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	p.logger.Info().
		Str("session_id", sess.ID).
		Int64("amount_paise", params.AmountPaise).
		Msg("checkout session created")

	return &Session{ID: sess.ID, URL: sess.URL}, nil
}

// SessionStatus polls the checkout session. Asynchronous methods (UPI) may
// leave the session unpaid while the payment intent has already succeeded,
// so the intent is inspected before reporting pending.
func (p *StripeProvider) SessionStatus(ctx context.Context, sessionID string) (Status, error) {
	getParams := &stripe.CheckoutSessionParams{}
	getParams.Context = ctx

	sess, err := p.api.CheckoutSessions.Get(sessionID, getParams)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve checkout session: %w", err)
	}

	if sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid {
		return StatusPaid, nil
	}
	if sess.Status == stripe.CheckoutSessionStatusExpired {
		return StatusFailed, nil
	}

	if sess.PaymentIntent != nil && sess.PaymentIntent.ID != "" {
		piParams := &stripe.PaymentIntentParams{}
		piParams.Context = ctx

		intent, err := p.api.PaymentIntents.Get(sess.PaymentIntent.ID, piParams)
		if err != nil {
			// Leave the session pending rather than failing the poll.
			p.logger.Warn().Err(err).Str("session_id", sessionID).Msg("failed to retrieve payment intent")
			return StatusPending, nil
		}

		switch intent.Status {
		case stripe.PaymentIntentStatusSucceeded, stripe.PaymentIntentStatusRequiresCapture:
			return StatusPaid, nil
		case stripe.PaymentIntentStatusCanceled:
			return StatusFailed, nil
		}
	}

	return StatusPending, nil
}
