package repository

import (
	"context"

	"github.com/aurumlab/goldtrade/internal/domain/model"
)

// ProductRepository describes persistence operations with products. Stock is
// mutated only through InvoiceRepository.CreateWithReservation.
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	Seed(ctx context.Context, products []model.Product) error
}
