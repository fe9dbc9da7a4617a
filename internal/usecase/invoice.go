package usecase

import (
	"context"
	"errors"
	"time"

	domainErrors "github.com/aurumlab/goldtrade/internal/domain/errors"
	"github.com/aurumlab/goldtrade/internal/domain/model"
	"github.com/aurumlab/goldtrade/internal/domain/repository"
)

// Fresh order numbers are generated this many times before giving up on a
// unique-constraint collision.
const maxOrderNumberAttempts = 3

// EventSink receives invoice lifecycle events. Enqueue must not block.
type EventSink interface {
	Enqueue(event model.InvoiceEvent)
}

// InvoiceUseCase owns the order ledger: creation against inventory and the
// state machine on existing invoices.
type InvoiceUseCase struct {
	invoices repository.InvoiceRepository
	products *ProductUseCase
	sink     EventSink
}

// NewInvoiceUseCase constructs InvoiceUseCase.
func NewInvoiceUseCase(invoices repository.InvoiceRepository, products *ProductUseCase, sink EventSink) *InvoiceUseCase {
	return &InvoiceUseCase{invoices: invoices, products: products, sink: sink}
}

// Create validates the requested trade, reserves stock, and records a DRAFT
// invoice. Validation is advisory; the repository re-checks stock inside the
// reservation transaction.
func (u *InvoiceUseCase) Create(ctx context.Context, userID, productID int64, tradeType model.TransactionType, quantity float64, price int64) (*model.Invoice, error) {
	if _, err := u.products.Validate(ctx, productID, tradeType, quantity, price); err != nil {
		return nil, err
	}

	invoice := &model.Invoice{
		UserID:    userID,
		ProductID: productID,
		Type:      tradeType,
		State:     model.InvoiceStateDraft,
		Amount:    quantity,
		Price:     price,
	}

	for attempt := 0; ; attempt++ {
		invoice.OrderNumber = NewOrderNumber(time.Now())
		err := u.invoices.CreateWithReservation(ctx, invoice)
		if err == nil {
			break
		}
		if errors.Is(err, domainErrors.ErrOrderNumberConflict) && attempt+1 < maxOrderNumberAttempts {
			continue
		}
		return nil, err
	}

	u.emit(invoice)
	return invoice, nil
}

// UpdateShipping sets delivery fields and confirms the order. Allowed while
// the invoice is still a draft or being re-edited before payment.
func (u *InvoiceUseCase) UpdateShipping(ctx context.Context, userID int64, orderNumber string, shipping model.ShippingDetail) error {
	invoice, err := u.invoices.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return err
	}
	if invoice.UserID != userID {
		return domainErrors.ErrNotOwner
	}
	if invoice.State != model.InvoiceStateDraft && invoice.State != model.InvoiceStateOrderCompleted {
		return domainErrors.ErrInvalidStateTransition
	}

	if err := u.invoices.UpdateShipping(ctx, orderNumber, shipping, model.InvoiceStateOrderCompleted); err != nil {
		return err
	}

	invoice.Shipping = shipping
	invoice.State = model.InvoiceStateOrderCompleted
	u.emit(invoice)
	return nil
}

// UpdateState advances the invoice along the state machine. A transition to
// PAYMENT_COMPLETED must carry a payment amount equal to the invoice price.
func (u *InvoiceUseCase) UpdateState(ctx context.Context, userID int64, orderNumber string, state model.InvoiceState, paymentAmount *int64) error {
	if !state.Valid() {
		return domainErrors.ErrInvalidStateTransition
	}

	invoice, err := u.invoices.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return err
	}
	if invoice.UserID != userID {
		return domainErrors.ErrNotOwner
	}

	if state == model.InvoiceStatePaymentCompleted {
		if paymentAmount == nil {
			return domainErrors.ErrPaymentAmountRequired
		}
		if *paymentAmount != invoice.Price {
			return domainErrors.ErrPaymentAmountMismatch
		}
	}

	if !invoice.State.CanTransitionTo(state) {
		return domainErrors.ErrInvalidStateTransition
	}

	if err := u.invoices.UpdateState(ctx, orderNumber, state); err != nil {
		return err
	}

	invoice.State = state
	u.emit(invoice)
	return nil
}

// Cancel moves the invoice to its canceled terminal state.
func (u *InvoiceUseCase) Cancel(ctx context.Context, userID int64, orderNumber string) error {
	return u.UpdateState(ctx, userID, orderNumber, model.InvoiceStateCanceled, nil)
}

// List returns the caller's non-draft invoices and the total match count.
func (u *InvoiceUseCase) List(ctx context.Context, userID int64, filter model.InvoiceFilter) ([]model.Invoice, int64, error) {
	return u.invoices.ListByUser(ctx, userID, filter)
}

// Get fetches one invoice with shipping detail. A foreign invoice is reported
// as missing rather than forbidden so order numbers are not probeable.
func (u *InvoiceUseCase) Get(ctx context.Context, userID int64, orderNumber string) (*model.Invoice, error) {
	invoice, err := u.invoices.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if invoice.UserID != userID {
		return nil, domainErrors.ErrInvoiceNotFound
	}
	return invoice, nil
}

func (u *InvoiceUseCase) emit(invoice *model.Invoice) {
	if u.sink == nil {
		return
	}
	u.sink.Enqueue(model.InvoiceEvent{
		OrderNumber: invoice.OrderNumber,
		UserID:      invoice.UserID,
		ProductID:   invoice.ProductID,
		Type:        invoice.Type,
		State:       invoice.State,
		OccurredAt:  time.Now().UTC(),
	})
}
