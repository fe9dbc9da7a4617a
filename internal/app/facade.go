package app

import (
	"context"

	"github.com/aurumlab/goldtrade/internal/adapter/authgw"
	"github.com/aurumlab/goldtrade/internal/domain/model"
	"github.com/aurumlab/goldtrade/internal/usecase"
)

// TradingFacade aggregates the use cases and the auth gateway behind one
// surface for the HTTP layer. Identities are resolved here and passed down as
// plain values; nothing below reaches into request state.
type TradingFacade struct {
	products *usecase.ProductUseCase
	invoices *usecase.InvoiceUseCase
	gateway  authgw.Client
}

// NewTradingFacade constructs TradingFacade.
func NewTradingFacade(products *usecase.ProductUseCase, invoices *usecase.InvoiceUseCase, gateway authgw.Client) *TradingFacade {
	return &TradingFacade{products: products, invoices: invoices, gateway: gateway}
}

func (f *TradingFacade) ValidateCredential(ctx context.Context, credential string) (*model.Identity, error) {
	return f.gateway.Validate(ctx, credential)
}

func (f *TradingFacade) Products(ctx context.Context) ([]model.Product, error) {
	return f.products.List(ctx)
}

func (f *TradingFacade) Product(ctx context.Context, id int64) (*model.Product, error) {
	return f.products.Get(ctx, id)
}

func (f *TradingFacade) SeedProducts(ctx context.Context) error {
	return f.products.SeedDemo(ctx)
}

func (f *TradingFacade) CreateInvoice(ctx context.Context, userID, productID int64, tradeType model.TransactionType, quantity float64, price int64) (*model.Invoice, error) {
	return f.invoices.Create(ctx, userID, productID, tradeType, quantity, price)
}

func (f *TradingFacade) Invoices(ctx context.Context, userID int64, filter model.InvoiceFilter) ([]model.Invoice, int64, error) {
	return f.invoices.List(ctx, userID, filter)
}

func (f *TradingFacade) Invoice(ctx context.Context, userID int64, orderNumber string) (*model.Invoice, error) {
	return f.invoices.Get(ctx, userID, orderNumber)
}

func (f *TradingFacade) UpdateShippingDetail(ctx context.Context, userID int64, orderNumber string, shipping model.ShippingDetail) error {
	return f.invoices.UpdateShipping(ctx, userID, orderNumber, shipping)
}

func (f *TradingFacade) UpdateInvoiceState(ctx context.Context, userID int64, orderNumber string, state model.InvoiceState, paymentAmount *int64) error {
	return f.invoices.UpdateState(ctx, userID, orderNumber, state, paymentAmount)
}

func (f *TradingFacade) CancelInvoice(ctx context.Context, userID int64, orderNumber string) error {
	return f.invoices.Cancel(ctx, userID, orderNumber)
}
