package usecase

import (
	"context"

	domainErrors "github.com/aurumlab/goldtrade/internal/domain/errors"
	"github.com/aurumlab/goldtrade/internal/domain/model"
	"github.com/aurumlab/goldtrade/internal/domain/repository"
	"github.com/aurumlab/goldtrade/internal/pkg/pricing"
)

// ProductUseCase covers product lookups and pre-order validation.
type ProductUseCase struct {
	products repository.ProductRepository
}

// NewProductUseCase constructs ProductUseCase.
func NewProductUseCase(products repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{products: products}
}

// Get fetches a product by identifier.
func (u *ProductUseCase) Get(ctx context.Context, id int64) (*model.Product, error) {
	return u.products.GetByID(ctx, id)
}

// List returns all listed products.
func (u *ProductUseCase) List(ctx context.Context) ([]model.Product, error) {
	return u.products.List(ctx)
}

// Validate checks a requested trade against the product's listing. It is a
// read-only check; the reservation re-checks stock inside its transaction, so
// the result must not be cached past the reservation attempt.
func (u *ProductUseCase) Validate(ctx context.Context, productID int64, tradeType model.TransactionType, quantity float64, price int64) (*model.Product, error) {
	product, err := u.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product.Type != tradeType {
		return nil, domainErrors.ErrProductTypeMismatch
	}

	if !pricing.ValidQuantity(quantity) {
		return nil, domainErrors.ErrInvalidQuantity
	}

	if pricing.Total(quantity, product.Price) != price {
		return nil, domainErrors.ErrPriceMismatch
	}

	if product.Amount < quantity {
		return nil, domainErrors.ErrInsufficientStock
	}

	return product, nil
}

// demoProducts mirrors the bootstrap listing: one sellable and one
// purchasable product per purity grade.
var demoProducts = []model.Product{
	{Name: "99.9% Gold", Purity: 99.9, Type: model.TransactionTypeSale, Amount: 100, Price: 100},
	{Name: "99.9% Gold", Purity: 99.9, Type: model.TransactionTypePurchase, Amount: 100, Price: 100},
	{Name: "99.99% Gold", Purity: 99.99, Type: model.TransactionTypeSale, Amount: 100, Price: 100},
	{Name: "99.99% Gold", Purity: 99.99, Type: model.TransactionTypePurchase, Amount: 100, Price: 100},
}

// SeedDemo inserts the demo product listing.
func (u *ProductUseCase) SeedDemo(ctx context.Context) error {
	return u.products.Seed(ctx, demoProducts)
}
