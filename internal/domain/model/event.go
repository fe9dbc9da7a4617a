package model

import "time"

// InvoiceEvent records a lifecycle change for downstream consumers. The
// ledger remains the source of truth; events are advisory.
type InvoiceEvent struct {
	OrderNumber string          `json:"order_number"`
	UserID      int64           `json:"user_id"`
	ProductID   int64           `json:"product_id"`
	Type        TransactionType `json:"type"`
	State       InvoiceState    `json:"state"`
	OccurredAt  time.Time       `json:"occurred_at"`
}
