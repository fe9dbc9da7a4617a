package errors

import "errors"

var (
	ErrProductNotFound        = errors.New("product not found")
	ErrInvoiceNotFound        = errors.New("invoice not found")
	ErrProductTypeMismatch    = errors.New("invalid product type")
	ErrPriceMismatch          = errors.New("mismatched price")
	ErrInvalidQuantity        = errors.New("invalid quantity")
	ErrInsufficientStock      = errors.New("insufficient stock for the requested item")
	ErrNotOwner               = errors.New("invoice belongs to another user")
	ErrPaymentAmountRequired  = errors.New("payment amount is required")
	ErrPaymentAmountMismatch  = errors.New("payment amount does not match invoice price")
	ErrInvalidStateTransition = errors.New("invalid invoice state transition")
	ErrOrderNumberConflict    = errors.New("order number already exists")
)
