package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"smartmart/internal/model"
	"smartmart/internal/pricing"
	"smartmart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const orderDateFormat = "2006-01-02 15:04:05"

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
	cartRepo    repository.CartRepository
	aggregator  *pricing.Aggregator
	logger      zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	cartRepo repository.CartRepository,
	aggregator *pricing.Aggregator,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		cartRepo:    cartRepo,
		aggregator:  aggregator,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// PlaceOrder converts the customer's cart into a durable order. Pricing is
// snapshotted at the placement instant, not at add-to-cart time, so the
// order reflects the current discount state. The order, its item snapshot,
// the payment record and the cart clear are committed in one transaction:
// any failure rolls everything back and leaves the cart intact for a retry.
// Stock is not touched here, it was already adjusted at cart-add time.
func (s *orderService) PlaceOrder(ctx context.Context, req *model.PlaceOrderRequest) (*model.PlaceOrderResponse, error) {
	priced, err := s.aggregator.PriceCart(ctx, req.PhoneNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to price cart: %w", err)
	}
	if priced.IsEmpty() {
		s.logger.Debug().Str("cart_id", req.PhoneNumber).Msg("cart empty, nothing to place")
		return nil, model.ErrEmptyCart
	}

	now := time.Now()
	order := &model.Order{
		ID:                  uuid.New(),
		UserID:              req.PhoneNumber,
		OrderDate:           now,
		TotalAmount:         priced.Total,
		OriginalTotalAmount: priced.OriginalTotal,
		TotalSavings:        priced.TotalSavings,
		PaymentMethod:       normalisePaymentMethod(req.PaymentMethod),
		BillingAddress:      req.BillingAddress,
		OrderStatus:         model.OrderStatusCompleted,
		PaymentStatus:       model.PaymentStatusCompleted,
		DeliveryStatus:      model.DeliveryStatusDone,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	items := make([]model.OrderItem, len(priced.Items))
	for i, line := range priced.Items {
		items[i] = model.OrderItem{
			ID:                 uuid.New(),
			OrderID:            order.ID,
			ProductID:          line.ProductID,
			ProductName:        line.Name,
			Quantity:           line.Quantity,
			UnitPrice:          line.DiscountPrice,
			TotalPrice:         line.TotalPrice,
			OriginalUnitPrice:  line.Price,
			OriginalTotalPrice: line.OriginalTotal,
			DiscountPercentage: line.DiscountPercentage,
			DiscountName:       line.DiscountName,
			CreatedAt:          now,
		}
	}

	amountPaise := priced.Total.Shift(2).Round(0).IntPart()
	paymentRecord := &model.Payment{
		ID:            uuid.New(),
		OrderID:       order.ID.String(),
		UserID:        req.PhoneNumber,
		AmountPaise:   amountPaise,
		PaymentMethod: order.PaymentMethod,
		PaymentStatus: model.PaymentStatusCompleted,
		TransactionID: transactionID(now, req.PhoneNumber),
		Currency:      "INR",
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	// Ensure the transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Int("item_count", len(items)).
			Msg("failed to create order items")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if err = s.paymentRepo.CreateInTx(ctx, tx, paymentRecord); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create payment record")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if err = s.cartRepo.ClearInTx(ctx, tx, req.PhoneNumber); err != nil {
		s.logger.Error().Err(err).Str("cart_id", req.PhoneNumber).Msg("failed to clear cart")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("user_id", req.PhoneNumber).
		Int("item_count", len(items)).
		Str("total", priced.Total.String()).
		Msg("order placed successfully")

	return &model.PlaceOrderResponse{
		OrderID:          order.ID,
		OrderDate:        now.Format(orderDateFormat),
		TotalAmount:      priced.Total,
		TotalAmountPaise: amountPaise,
		TotalSavings:     priced.TotalSavings,
	}, nil
}

// ListByUser retrieves the customer's orders, newest first.
func (s *orderService) ListByUser(ctx context.Context, phoneNumber string) ([]model.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, phoneNumber)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", phoneNumber).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}

// GetDetails retrieves one of the customer's orders with its line items.
// The items come from the snapshot written at placement time, so they are
// unaffected by later catalogue or discount changes.
func (s *orderService) GetDetails(ctx context.Context, phoneNumber string, orderID uuid.UUID) (*model.OrderDetails, error) {
	order, items, err := s.orderRepo.GetByID(ctx, phoneNumber, orderID)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	return &model.OrderDetails{
		Order: *order,
		Items: items,
	}, nil
}

// normalisePaymentMethod maps the free-form method to its display label.
func normalisePaymentMethod(method string) string {
	switch strings.ToLower(method) {
	case "card":
		return "Card"
	case "upi":
		return "UPI"
	default:
		return method
	}
}

// transactionID generates an identifier unique per (timestamp, customer).
func transactionID(at time.Time, phoneNumber string) string {
	return fmt.Sprintf("TXN_%d_%s", at.Unix(), phoneNumber)
}
