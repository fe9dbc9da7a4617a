package repository

import (
	"context"

	"github.com/aurumlab/goldtrade/internal/domain/model"
)

// InvoiceRepository describes persistence operations with invoices.
type InvoiceRepository interface {
	// CreateWithReservation atomically decrements the product's stock and
	// inserts the invoice. The whole sequence runs in one transaction so
	// concurrent reservations on the same product can never oversell.
	CreateWithReservation(ctx context.Context, invoice *model.Invoice) error
	GetByOrderNumber(ctx context.Context, orderNumber string) (*model.Invoice, error)
	ListByUser(ctx context.Context, userID int64, filter model.InvoiceFilter) ([]model.Invoice, int64, error)
	UpdateShipping(ctx context.Context, orderNumber string, shipping model.ShippingDetail, state model.InvoiceState) error
	UpdateState(ctx context.Context, orderNumber string, state model.InvoiceState) error
}
