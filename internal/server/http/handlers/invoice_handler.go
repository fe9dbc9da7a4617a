package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aurumlab/goldtrade/internal/domain/model"
	"github.com/aurumlab/goldtrade/internal/server/http/dto"
)

const dateLayout = "2006-01-02"

// InvoiceHandler manages order endpoints.
type InvoiceHandler struct {
	facade InvoiceFacade
}

// NewInvoiceHandler constructs InvoiceHandler.
func NewInvoiceHandler(facade InvoiceFacade) *InvoiceHandler {
	return &InvoiceHandler{facade: facade}
}

// Create handles POST /api/invoices.
func (h *InvoiceHandler) Create(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid request body"))
		return
	}

	tradeType := model.TransactionType(req.Type)
	if !tradeType.Valid() {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid transaction type"))
		return
	}

	invoice, err := h.facade.CreateInvoice(c.Request.Context(), identity.UserID, req.ProductID, tradeType, req.Amount, req.Price)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OK(dto.CreateInvoiceResponse{OrderNumber: invoice.OrderNumber}))
}

// List handles GET /api/invoices.
func (h *InvoiceHandler) List(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	filter, ok := parseInvoiceFilter(c)
	if !ok {
		return
	}

	invoices, count, err := h.facade.Invoices(c.Request.Context(), identity.UserID, filter)
	if err != nil {
		writeError(c, err)
		return
	}

	response := dto.InvoiceListResponse{
		Invoices: make([]dto.InvoiceResponse, 0, len(invoices)),
		Count:    count,
	}
	for _, inv := range invoices {
		response.Invoices = append(response.Invoices, toInvoiceResponse(inv))
	}
	c.JSON(http.StatusOK, dto.OK(response))
}

// Get handles GET /api/invoices/:orderNumber.
func (h *InvoiceHandler) Get(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	invoice, err := h.facade.Invoice(c.Request.Context(), identity.UserID, c.Param("orderNumber"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(toInvoiceDetailResponse(*invoice)))
}

// UpdateShipping handles PATCH /api/invoices/:orderNumber/shipping.
func (h *InvoiceHandler) UpdateShipping(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid request body"))
		return
	}

	shipping := model.ShippingDetail{
		Address:       req.ShippingAddress,
		AddressDetail: req.ShippingAddressDetail,
		RecipientName: req.ShippingName,
		PhoneNumber:   req.ShippingPhoneNumber,
		Zipcode:       req.Zipcode,
	}
	if err := h.facade.UpdateShippingDetail(c.Request.Context(), identity.UserID, c.Param("orderNumber"), shipping); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(nil))
}

// UpdateState handles PATCH /api/invoices/:orderNumber/state.
func (h *InvoiceHandler) UpdateState(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateInvoiceStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid request body"))
		return
	}

	state := model.InvoiceState(req.InvoiceState)
	if !state.Valid() {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid invoice state"))
		return
	}

	if err := h.facade.UpdateInvoiceState(c.Request.Context(), identity.UserID, c.Param("orderNumber"), state, req.PaymentAmount); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(nil))
}

// Cancel handles PATCH /api/invoices/:orderNumber/cancel.
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}

	if err := h.facade.CancelInvoice(c.Request.Context(), identity.UserID, c.Param("orderNumber")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(nil))
}

// parseInvoiceFilter reads listing query parameters. It answers the request
// itself when a parameter is malformed.
func parseInvoiceFilter(c *gin.Context) (model.InvoiceFilter, bool) {
	var filter model.InvoiceFilter

	if raw := c.Query("minDate"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.Fail("minDate must be in YYYY-MM-DD format"))
			return filter, false
		}
		filter.MinDate = t
	}
	if raw := c.Query("maxDate"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.Fail("maxDate must be in YYYY-MM-DD format"))
			return filter, false
		}
		// Inclusive upper bound: cover the whole day.
		filter.MaxDate = t.Add(24*time.Hour - time.Nanosecond)
	}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, dto.Fail("limit must be a non-negative integer"))
			return filter, false
		}
		filter.Limit = &n
	}
	if raw := c.Query("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, dto.Fail("offset must be a non-negative integer"))
			return filter, false
		}
		filter.Offset = &n
	}
	if raw := c.Query("invoiceType"); raw != "" {
		tradeType := model.TransactionType(raw)
		if !tradeType.Valid() {
			c.JSON(http.StatusBadRequest, dto.Fail("invalid invoice type"))
			return filter, false
		}
		filter.Type = &tradeType
	}

	return filter, true
}

func toInvoiceResponse(inv model.Invoice) dto.InvoiceResponse {
	return dto.InvoiceResponse{
		OrderNumber: inv.OrderNumber,
		ProductID:   inv.ProductID,
		Type:        string(inv.Type),
		State:       string(inv.State),
		Amount:      inv.Amount,
		Price:       inv.Price,
		CreatedAt:   inv.CreatedAt,
	}
}

func toInvoiceDetailResponse(inv model.Invoice) dto.InvoiceDetailResponse {
	return dto.InvoiceDetailResponse{
		InvoiceResponse:       toInvoiceResponse(inv),
		ShippingAddress:       inv.Shipping.Address,
		ShippingAddressDetail: inv.Shipping.AddressDetail,
		ShippingName:          inv.Shipping.RecipientName,
		ShippingPhoneNumber:   inv.Shipping.PhoneNumber,
		Zipcode:               inv.Shipping.Zipcode,
	}
}
