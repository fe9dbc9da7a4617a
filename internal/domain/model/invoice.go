package model

import "time"

// InvoiceState describes the order lifecycle.
type InvoiceState string

const (
	InvoiceStateDraft                InvoiceState = "DRAFT"
	InvoiceStateOrderCompleted       InvoiceState = "ORDER_COMPLETED"
	InvoiceStatePaymentCompleted     InvoiceState = "PAYMENT_COMPLETED"
	InvoiceStateFulfillmentCompleted InvoiceState = "FULFILLMENT_COMPLETED"
	InvoiceStateCanceled             InvoiceState = "CANCELED"
)

// Valid reports whether the value is a known invoice state.
func (s InvoiceState) Valid() bool {
	switch s {
	case InvoiceStateDraft, InvoiceStateOrderCompleted, InvoiceStatePaymentCompleted,
		InvoiceStateFulfillmentCompleted, InvoiceStateCanceled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from the state.
func (s InvoiceState) Terminal() bool {
	return s == InvoiceStateFulfillmentCompleted || s == InvoiceStateCanceled
}

// CanTransitionTo reports whether moving to target is a legal forward step.
// Cancellation is allowed until payment is completed.
func (s InvoiceState) CanTransitionTo(target InvoiceState) bool {
	switch s {
	case InvoiceStateDraft:
		return target == InvoiceStateOrderCompleted || target == InvoiceStateCanceled
	case InvoiceStateOrderCompleted:
		return target == InvoiceStatePaymentCompleted || target == InvoiceStateCanceled
	case InvoiceStatePaymentCompleted:
		return target == InvoiceStateFulfillmentCompleted
	}
	return false
}

// ShippingDetail carries delivery fields attached to an invoice after the
// buyer confirms the order.
type ShippingDetail struct {
	Address       string
	AddressDetail string
	RecipientName string
	PhoneNumber   string
	Zipcode       string
}

// Invoice describes a single-product trade progressing through the lifecycle.
// Price is the total fixed at creation; Amount is the traded quantity.
type Invoice struct {
	ID          int64
	OrderNumber string
	UserID      int64
	ProductID   int64
	Type        TransactionType
	State       InvoiceState
	Amount      float64
	Price       int64
	Shipping    ShippingDetail
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InvoiceFilter narrows invoice listings. Zero MinDate/MaxDate fall back to
// the repository defaults; nil Limit/Offset disable slicing.
type InvoiceFilter struct {
	MinDate time.Time
	MaxDate time.Time
	Type    *TransactionType
	Limit   *int
	Offset  *int
}
