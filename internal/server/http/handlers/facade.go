package handlers

import (
	"context"

	"github.com/aurumlab/goldtrade/internal/domain/model"
)

// AuthFacade resolves credentials for the auth middleware.
type AuthFacade interface {
	ValidateCredential(ctx context.Context, credential string) (*model.Identity, error)
}

// ProductFacade exposes product operations used by handlers.
type ProductFacade interface {
	Products(ctx context.Context) ([]model.Product, error)
	Product(ctx context.Context, id int64) (*model.Product, error)
	SeedProducts(ctx context.Context) error
}

// InvoiceFacade encapsulates order operations exposed via HTTP.
type InvoiceFacade interface {
	CreateInvoice(ctx context.Context, userID, productID int64, tradeType model.TransactionType, quantity float64, price int64) (*model.Invoice, error)
	Invoices(ctx context.Context, userID int64, filter model.InvoiceFilter) ([]model.Invoice, int64, error)
	Invoice(ctx context.Context, userID int64, orderNumber string) (*model.Invoice, error)
	UpdateShippingDetail(ctx context.Context, userID int64, orderNumber string, shipping model.ShippingDetail) error
	UpdateInvoiceState(ctx context.Context, userID int64, orderNumber string, state model.InvoiceState, paymentAmount *int64) error
	CancelInvoice(ctx context.Context, userID int64, orderNumber string) error
}

// TradingFacade aggregates the full set of operations used across handlers.
type TradingFacade interface {
	AuthFacade
	ProductFacade
	InvoiceFacade
}
