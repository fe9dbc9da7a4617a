package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/aurumlab/goldtrade/internal/domain/errors"
	"github.com/aurumlab/goldtrade/internal/domain/model"
)

// ProductRepositoryStub stores products in-memory for tests.
type ProductRepositoryStub struct {
	mu   sync.Mutex
	ByID map[int64]*model.Product

	GetFn  func(context.Context, int64) (*model.Product, error)
	ListFn func(context.Context) ([]model.Product, error)
	SeedFn func(context.Context, []model.Product) error

	Seeded [][]model.Product
}

// NewProductRepositoryStub constructs a stub preloaded with the given products.
func NewProductRepositoryStub(products ...model.Product) *ProductRepositoryStub {
	stub := &ProductRepositoryStub{ByID: make(map[int64]*model.Product)}
	for i := range products {
		p := products[i]
		stub.ByID[p.ID] = &p
	}
	return stub
}

// GetByID returns a copy of the stored product or not found.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.ByID[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, domainErrors.ErrProductNotFound
}

// List returns all stored products.
func (s *ProductRepositoryStub) List(ctx context.Context) ([]model.Product, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]model.Product, 0, len(s.ByID))
	for _, p := range s.ByID {
		result = append(result, *p)
	}
	return result, nil
}

// Seed records the seeded batch.
func (s *ProductRepositoryStub) Seed(ctx context.Context, products []model.Product) error {
	if s.SeedFn != nil {
		return s.SeedFn(ctx, products)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Seeded = append(s.Seeded, products)
	next := int64(len(s.ByID) + 1)
	for i := range products {
		p := products[i]
		p.ID = next
		next++
		s.ByID[p.ID] = &p
	}
	return nil
}

// Amount returns the current stock of a product.
func (s *ProductRepositoryStub) Amount(id int64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.ByID[id]; ok {
		return p.Amount
	}
	return 0
}

// InvoiceRepositoryStub keeps invoices in-memory. When linked to a product
// stub it mimics the transactional reservation: stock is re-checked and
// decremented atomically with the insert.
type InvoiceRepositoryStub struct {
	mu       sync.Mutex
	Products *ProductRepositoryStub
	byNumber map[string]*model.Invoice
	nextID   int64

	CreateFn         func(context.Context, *model.Invoice) error
	GetFn            func(context.Context, string) (*model.Invoice, error)
	ListFn           func(context.Context, int64, model.InvoiceFilter) ([]model.Invoice, int64, error)
	UpdateShippingFn func(context.Context, string, model.ShippingDetail, model.InvoiceState) error
	UpdateStateFn    func(context.Context, string, model.InvoiceState) error
}

// NewInvoiceRepositoryStub constructs the stub, optionally sharing stock with
// a product stub.
func NewInvoiceRepositoryStub(products *ProductRepositoryStub) *InvoiceRepositoryStub {
	return &InvoiceRepositoryStub{
		Products: products,
		byNumber: make(map[string]*model.Invoice),
		nextID:   1,
	}
}

// CreateWithReservation decrements linked stock and stores the invoice.
func (s *InvoiceRepositoryStub) CreateWithReservation(ctx context.Context, invoice *model.Invoice) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, invoice)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byNumber[invoice.OrderNumber]; exists {
		return domainErrors.ErrOrderNumberConflict
	}

	if s.Products != nil {
		s.Products.mu.Lock()
		product, ok := s.Products.ByID[invoice.ProductID]
		if !ok {
			s.Products.mu.Unlock()
			return domainErrors.ErrProductNotFound
		}
		if product.Amount < invoice.Amount {
			s.Products.mu.Unlock()
			return domainErrors.ErrInsufficientStock
		}
		product.Amount -= invoice.Amount
		s.Products.mu.Unlock()
	}

	invoice.ID = s.nextID
	s.nextID++
	invoice.CreatedAt = time.Now()
	invoice.UpdatedAt = invoice.CreatedAt
	copied := *invoice
	s.byNumber[invoice.OrderNumber] = &copied
	return nil
}

// GetByOrderNumber returns a copy of the stored invoice.
func (s *InvoiceRepositoryStub) GetByOrderNumber(ctx context.Context, orderNumber string) (*model.Invoice, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, orderNumber)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if inv, ok := s.byNumber[orderNumber]; ok {
		copied := *inv
		return &copied, nil
	}
	return nil, domainErrors.ErrInvoiceNotFound
}

// ListByUser filters stored invoices the way the real repository does.
func (s *InvoiceRepositoryStub) ListByUser(ctx context.Context, userID int64, filter model.InvoiceFilter) ([]model.Invoice, int64, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, userID, filter)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	minDate := filter.MinDate
	if minDate.IsZero() {
		minDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	maxDate := filter.MaxDate
	if maxDate.IsZero() {
		maxDate = time.Now()
	}

	var matched []model.Invoice
	for _, inv := range s.byNumber {
		if inv.UserID != userID || inv.State == model.InvoiceStateDraft {
			continue
		}
		if inv.CreatedAt.Before(minDate) || inv.CreatedAt.After(maxDate) {
			continue
		}
		if filter.Type != nil && inv.Type != *filter.Type {
			continue
		}
		matched = append(matched, *inv)
	}
	total := int64(len(matched))

	if filter.Offset != nil {
		if *filter.Offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[*filter.Offset:]
		}
	}
	if filter.Limit != nil && *filter.Limit < len(matched) {
		matched = matched[:*filter.Limit]
	}
	return matched, total, nil
}

// UpdateShipping mutates the stored invoice.
func (s *InvoiceRepositoryStub) UpdateShipping(ctx context.Context, orderNumber string, shipping model.ShippingDetail, state model.InvoiceState) error {
	if s.UpdateShippingFn != nil {
		return s.UpdateShippingFn(ctx, orderNumber, shipping, state)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.byNumber[orderNumber]
	if !ok {
		return domainErrors.ErrInvoiceNotFound
	}
	inv.Shipping = shipping
	inv.State = state
	inv.UpdatedAt = time.Now()
	return nil
}

// UpdateState mutates the stored invoice state.
func (s *InvoiceRepositoryStub) UpdateState(ctx context.Context, orderNumber string, state model.InvoiceState) error {
	if s.UpdateStateFn != nil {
		return s.UpdateStateFn(ctx, orderNumber, state)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.byNumber[orderNumber]
	if !ok {
		return domainErrors.ErrInvoiceNotFound
	}
	inv.State = state
	inv.UpdatedAt = time.Now()
	return nil
}
