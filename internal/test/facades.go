package test

import (
	"context"
	"sync"

	domainErrors "github.com/aurumlab/goldtrade/internal/domain/errors"
	"github.com/aurumlab/goldtrade/internal/domain/model"
)

// TradingFacadeStub implements the handler facade with overridable functions.
// Unset functions return benign defaults so tests only wire what they assert.
type TradingFacadeStub struct {
	ValidateCredentialFn   func(context.Context, string) (*model.Identity, error)
	ProductsFn             func(context.Context) ([]model.Product, error)
	ProductFn              func(context.Context, int64) (*model.Product, error)
	SeedProductsFn         func(context.Context) error
	CreateInvoiceFn        func(ctx context.Context, userID, productID int64, tradeType model.TransactionType, quantity float64, price int64) (*model.Invoice, error)
	InvoicesFn             func(context.Context, int64, model.InvoiceFilter) ([]model.Invoice, int64, error)
	InvoiceFn              func(context.Context, int64, string) (*model.Invoice, error)
	UpdateShippingDetailFn func(context.Context, int64, string, model.ShippingDetail) error
	UpdateInvoiceStateFn   func(ctx context.Context, userID int64, orderNumber string, state model.InvoiceState, paymentAmount *int64) error
	CancelInvoiceFn        func(context.Context, int64, string) error
}

func (s *TradingFacadeStub) ValidateCredential(ctx context.Context, credential string) (*model.Identity, error) {
	if s.ValidateCredentialFn != nil {
		return s.ValidateCredentialFn(ctx, credential)
	}
	return &model.Identity{UserID: 1, Username: "tester"}, nil
}

func (s *TradingFacadeStub) Products(ctx context.Context) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx)
	}
	return nil, nil
}

func (s *TradingFacadeStub) Product(ctx context.Context, id int64) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	return nil, domainErrors.ErrProductNotFound
}

func (s *TradingFacadeStub) SeedProducts(ctx context.Context) error {
	if s.SeedProductsFn != nil {
		return s.SeedProductsFn(ctx)
	}
	return nil
}

func (s *TradingFacadeStub) CreateInvoice(ctx context.Context, userID, productID int64, tradeType model.TransactionType, quantity float64, price int64) (*model.Invoice, error) {
	if s.CreateInvoiceFn != nil {
		return s.CreateInvoiceFn(ctx, userID, productID, tradeType, quantity, price)
	}
	return &model.Invoice{OrderNumber: "260101-TESTTEST", UserID: userID, ProductID: productID, Type: tradeType, State: model.InvoiceStateDraft, Amount: quantity, Price: price}, nil
}

func (s *TradingFacadeStub) Invoices(ctx context.Context, userID int64, filter model.InvoiceFilter) ([]model.Invoice, int64, error) {
	if s.InvoicesFn != nil {
		return s.InvoicesFn(ctx, userID, filter)
	}
	return nil, 0, nil
}

func (s *TradingFacadeStub) Invoice(ctx context.Context, userID int64, orderNumber string) (*model.Invoice, error) {
	if s.InvoiceFn != nil {
		return s.InvoiceFn(ctx, userID, orderNumber)
	}
	return nil, domainErrors.ErrInvoiceNotFound
}

func (s *TradingFacadeStub) UpdateShippingDetail(ctx context.Context, userID int64, orderNumber string, shipping model.ShippingDetail) error {
	if s.UpdateShippingDetailFn != nil {
		return s.UpdateShippingDetailFn(ctx, userID, orderNumber, shipping)
	}
	return nil
}

func (s *TradingFacadeStub) UpdateInvoiceState(ctx context.Context, userID int64, orderNumber string, state model.InvoiceState, paymentAmount *int64) error {
	if s.UpdateInvoiceStateFn != nil {
		return s.UpdateInvoiceStateFn(ctx, userID, orderNumber, state, paymentAmount)
	}
	return nil
}

func (s *TradingFacadeStub) CancelInvoice(ctx context.Context, userID int64, orderNumber string) error {
	if s.CancelInvoiceFn != nil {
		return s.CancelInvoiceFn(ctx, userID, orderNumber)
	}
	return nil
}

// EventSinkStub records enqueued invoice events.
type EventSinkStub struct {
	mu     sync.Mutex
	Events []model.InvoiceEvent
}

func (s *EventSinkStub) Enqueue(event model.InvoiceEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Events = append(s.Events, event)
}

// Snapshot returns a copy of the recorded events.
func (s *EventSinkStub) Snapshot() []model.InvoiceEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.InvoiceEvent, len(s.Events))
	copy(out, s.Events)
	return out
}

// AuthClientStub implements the auth gateway client.
type AuthClientStub struct {
	ValidateFn func(context.Context, string) (*model.Identity, error)
}

func (s *AuthClientStub) Validate(ctx context.Context, credential string) (*model.Identity, error) {
	if s.ValidateFn != nil {
		return s.ValidateFn(ctx, credential)
	}
	return &model.Identity{UserID: 1, Username: "tester"}, nil
}
