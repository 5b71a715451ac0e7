package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeMissingField     = "MISSING_FIELD"
	ErrCodeOutOfStock       = "OUT_OF_STOCK"
	ErrCodeCartNotFound     = "CART_NOT_FOUND"
	ErrCodeCartExists       = "CART_EXISTS"
	ErrCodeProductNotInCart = "PRODUCT_NOT_IN_CART"
	ErrCodeEmptyCart        = "EMPTY_CART"
	ErrCodeProductNotFound  = "PRODUCT_NOT_FOUND"
	ErrCodeOrderNotFound    = "ORDER_NOT_FOUND"
	ErrCodePaymentNotFound  = "PAYMENT_NOT_FOUND"
	ErrCodeInvalidAmount    = "INVALID_AMOUNT"
	ErrCodeUpstream         = "UPSTREAM_ERROR"
	ErrCodeUnauthorised     = "UNAUTHORIZED"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// DomainError carries a machine-readable code alongside the message so the
// HTTP boundary can map errors to statuses without string matching.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrOutOfStock       = NewDomainError(ErrCodeOutOfStock, "Product not found or out of stock")
	ErrCartNotFound     = NewDomainError(ErrCodeCartNotFound, "Cart not found")
	ErrCartExists       = NewDomainError(ErrCodeCartExists, "Cart already exists")
	ErrProductNotInCart = NewDomainError(ErrCodeProductNotInCart, "Product not found in cart")
	ErrEmptyCart        = NewDomainError(ErrCodeEmptyCart, "Cart is empty")
	ErrProductNotFound  = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrOrderNotFound    = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrPaymentNotFound  = NewDomainError(ErrCodePaymentNotFound, "Payment session not found")
	ErrInvalidAmount    = NewDomainError(ErrCodeInvalidAmount, "Amount must be at least 50 paise")
)
