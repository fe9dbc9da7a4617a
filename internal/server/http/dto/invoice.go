package dto

import "time"

// CreateInvoiceRequest describes an order creation payload. Price is the
// expected total the client computed from the listing.
type CreateInvoiceRequest struct {
	ProductID int64   `json:"productId" binding:"required"`
	Price     int64   `json:"price" binding:"required"`
	Amount    float64 `json:"amount" binding:"required"`
	Type      string  `json:"type" binding:"required"`
}

// CreateInvoiceResponse carries the generated order number.
type CreateInvoiceResponse struct {
	OrderNumber string `json:"orderNumber"`
}

// UpdateShippingRequest describes the delivery fields confirming an order.
type UpdateShippingRequest struct {
	ShippingAddress       string `json:"shippingAddress" binding:"required"`
	ShippingAddressDetail string `json:"shippingAddressDetail"`
	ShippingName          string `json:"shippingName"`
	ShippingPhoneNumber   string `json:"shippingPhoneNumber"`
	Zipcode               string `json:"zipcode" binding:"required,len=5"`
}

// UpdateInvoiceStateRequest moves an invoice along its lifecycle.
// PaymentAmount is required when transitioning to PAYMENT_COMPLETED.
type UpdateInvoiceStateRequest struct {
	InvoiceState  string `json:"invoiceState" binding:"required"`
	PaymentAmount *int64 `json:"paymentAmount"`
}

// InvoiceResponse is the listing shape; shipping fields are omitted.
type InvoiceResponse struct {
	OrderNumber string    `json:"orderNumber"`
	ProductID   int64     `json:"productId"`
	Type        string    `json:"type"`
	State       string    `json:"state"`
	Amount      float64   `json:"amount"`
	Price       int64     `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
}

// InvoiceDetailResponse is the single-order shape including delivery fields.
type InvoiceDetailResponse struct {
	InvoiceResponse
	ShippingAddress       string `json:"shippingAddress"`
	ShippingAddressDetail string `json:"shippingAddressDetail"`
	ShippingName          string `json:"shippingName"`
	ShippingPhoneNumber   string `json:"shippingPhoneNumber"`
	Zipcode               string `json:"zipcode"`
}

// InvoiceListResponse carries one page of invoices and the total match count.
type InvoiceListResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
	Count    int64             `json:"count"`
}
