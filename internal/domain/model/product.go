package model

import "time"

// TransactionType describes the direction of a trade: the pool either sells
// gold to the user or purchases it from the user. A product is listed for
// exactly one direction.
type TransactionType string

const (
	TransactionTypeSale     TransactionType = "SALE"
	TransactionTypePurchase TransactionType = "PURCHASE"
)

// Valid reports whether the value is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeSale || t == TransactionTypePurchase
}

// Product describes a gold listing with its remaining stock.
type Product struct {
	ID        int64
	Name      string
	Purity    float64
	Type      TransactionType
	Amount    float64
	Price     int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
