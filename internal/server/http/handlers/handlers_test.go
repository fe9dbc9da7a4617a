package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/aurumlab/goldtrade/internal/domain/errors"
	"github.com/aurumlab/goldtrade/internal/domain/model"
	"github.com/aurumlab/goldtrade/internal/server/http/dto"
	"github.com/aurumlab/goldtrade/internal/server/http/middleware"
	testhelpers "github.com/aurumlab/goldtrade/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func withIdentity(userID int64) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.IdentityContextKey, &model.Identity{UserID: userID, Username: "tester"})
	}
}

func performRequest(t *testing.T, method, route, path string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, route, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, resp *httptest.ResponseRecorder) dto.APIResponse {
	t.Helper()
	var envelope dto.APIResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	return envelope
}

func TestCurrentIdentity(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentIdentity(c); got != nil {
		t.Fatalf("expected nil when not set, got %+v", got)
	}

	c.Set(middleware.IdentityContextKey, &model.Identity{UserID: 42})
	if got := CurrentIdentity(c); got == nil || got.UserID != 42 {
		t.Fatalf("expected identity 42, got %+v", got)
	}
}

func TestInvoiceHandlersRejectMissingIdentity(t *testing.T) {
	handler := NewInvoiceHandler(&testhelpers.TradingFacadeStub{})

	cases := []struct {
		name    string
		method  string
		route   string
		path    string
		handler gin.HandlerFunc
	}{
		{"create", http.MethodPost, "/invoices", "/invoices", handler.Create},
		{"list", http.MethodGet, "/invoices", "/invoices", handler.List},
		{"get", http.MethodGet, "/invoices/:orderNumber", "/invoices/260307-A1B2C3D4", handler.Get},
		{"shipping", http.MethodPatch, "/invoices/:orderNumber/shipping", "/invoices/260307-A1B2C3D4/shipping", handler.UpdateShipping},
		{"state", http.MethodPatch, "/invoices/:orderNumber/state", "/invoices/260307-A1B2C3D4/state", handler.UpdateState},
		{"cancel", http.MethodPatch, "/invoices/:orderNumber/cancel", "/invoices/260307-A1B2C3D4/cancel", handler.Cancel},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := performRequest(t, tc.method, tc.route, tc.path, tc.handler, nil, nil)
			if resp.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401 without identity, got %d", resp.Code)
			}
			if envelope := decodeEnvelope(t, resp); envelope.Success {
				t.Fatalf("expected failure envelope, got %+v", envelope)
			}
		})
	}
}

func TestProductHandlerList(t *testing.T) {
	facade := &testhelpers.TradingFacadeStub{
		ProductsFn: func(ctx context.Context) ([]model.Product, error) {
			return []model.Product{
				{ID: 1, Name: "99.9% Gold", Purity: 99.9, Type: model.TransactionTypeSale, Amount: 100, Price: 100},
			}, nil
		},
	}

	resp := performRequest(t, http.MethodGet, "/products", "/products", NewProductHandler(facade).List, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	envelope := decodeEnvelope(t, resp)
	if !envelope.Success {
		t.Fatalf("expected success envelope, got %+v", envelope)
	}
}

func TestProductHandlerListError(t *testing.T) {
	facade := &testhelpers.TradingFacadeStub{
		ProductsFn: func(ctx context.Context) ([]model.Product, error) {
			return nil, errors.New("boom")
		},
	}

	resp := performRequest(t, http.MethodGet, "/products", "/products", NewProductHandler(facade).List, nil, nil)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if envelope := decodeEnvelope(t, resp); envelope.Success || envelope.Message != "internal error" {
		t.Fatalf("internal errors must not leak details: %+v", envelope)
	}
}

func TestProductHandlerGet(t *testing.T) {
	facade := &testhelpers.TradingFacadeStub{
		ProductFn: func(ctx context.Context, id int64) (*model.Product, error) {
			if id != 2 {
				return nil, domainErrors.ErrProductNotFound
			}
			return &model.Product{ID: 2, Name: "99.9% Gold", Type: model.TransactionTypePurchase, Amount: 100, Price: 100}, nil
		},
	}
	handler := NewProductHandler(facade)

	resp := performRequest(t, http.MethodGet, "/products/:id", "/products/2", handler.Get, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/products/:id", "/products/99", handler.Get, nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/products/:id", "/products/abc", handler.Get, nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestProductHandlerSeed(t *testing.T) {
	seeded := false
	facade := &testhelpers.TradingFacadeStub{
		SeedProductsFn: func(ctx context.Context) error {
			seeded = true
			return nil
		},
	}

	resp := performRequest(t, http.MethodPost, "/products/seed", "/products/seed", NewProductHandler(facade).Seed, nil, nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	if !seeded {
		t.Fatal("seed was not invoked")
	}
}

func TestInvoiceHandlerCreate(t *testing.T) {
	facade := &testhelpers.TradingFacadeStub{
		CreateInvoiceFn: func(ctx context.Context, userID, productID int64, tradeType model.TransactionType, quantity float64, price int64) (*model.Invoice, error) {
			if userID != 7 || productID != 2 || tradeType != model.TransactionTypePurchase || quantity != 10 || price != 1000 {
				t.Fatalf("unexpected arguments: %d %d %s %v %d", userID, productID, tradeType, quantity, price)
			}
			return &model.Invoice{OrderNumber: "260307-A1B2C3D4", State: model.InvoiceStateDraft}, nil
		},
	}

	body, _ := json.Marshal(dto.CreateInvoiceRequest{ProductID: 2, Price: 1000, Amount: 10, Type: "PURCHASE"})
	resp := performRequest(t, http.MethodPost, "/invoices", "/invoices", NewInvoiceHandler(facade).Create, withIdentity(7), body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	envelope := decodeEnvelope(t, resp)
	data, _ := envelope.Data.(map[string]any)
	if data["orderNumber"] != "260307-A1B2C3D4" {
		t.Fatalf("unexpected payload: %+v", envelope.Data)
	}
}

func TestInvoiceHandlerCreateRejectsBadInput(t *testing.T) {
	handler := NewInvoiceHandler(&testhelpers.TradingFacadeStub{})

	resp := performRequest(t, http.MethodPost, "/invoices", "/invoices", handler.Create, withIdentity(7), []byte("{"))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("malformed body: expected 400, got %d", resp.Code)
	}

	body, _ := json.Marshal(dto.CreateInvoiceRequest{ProductID: 2, Price: 1000, Amount: 10, Type: "LEASE"})
	resp = performRequest(t, http.MethodPost, "/invoices", "/invoices", handler.Create, withIdentity(7), body)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("bad type: expected 400, got %d", resp.Code)
	}
}

func TestInvoiceHandlerCreateErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domainErrors.ErrProductNotFound, http.StatusNotFound},
		{domainErrors.ErrProductTypeMismatch, http.StatusBadRequest},
		{domainErrors.ErrInvalidQuantity, http.StatusBadRequest},
		{domainErrors.ErrPriceMismatch, http.StatusBadRequest},
		{domainErrors.ErrInsufficientStock, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	body, _ := json.Marshal(dto.CreateInvoiceRequest{ProductID: 2, Price: 1000, Amount: 10, Type: "PURCHASE"})
	for _, tc := range cases {
		facade := &testhelpers.TradingFacadeStub{
			CreateInvoiceFn: func(ctx context.Context, userID, productID int64, tradeType model.TransactionType, quantity float64, price int64) (*model.Invoice, error) {
				return nil, tc.err
			},
		}
		resp := performRequest(t, http.MethodPost, "/invoices", "/invoices", NewInvoiceHandler(facade).Create, withIdentity(7), body)
		if resp.Code != tc.code {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.code, resp.Code)
		}
	}
}

func TestInvoiceHandlerList(t *testing.T) {
	var gotFilter model.InvoiceFilter
	facade := &testhelpers.TradingFacadeStub{
		InvoicesFn: func(ctx context.Context, userID int64, filter model.InvoiceFilter) ([]model.Invoice, int64, error) {
			gotFilter = filter
			return []model.Invoice{
				{OrderNumber: "260307-A1B2C3D4", ProductID: 2, Type: model.TransactionTypePurchase,
					State: model.InvoiceStateOrderCompleted, Amount: 10, Price: 1000, CreatedAt: time.Now()},
			}, 25, nil
		},
	}

	path := "/invoices?minDate=2026-01-01&maxDate=2026-03-31&limit=10&offset=5&invoiceType=PURCHASE"
	resp := performRequest(t, http.MethodGet, "/invoices", path, NewInvoiceHandler(facade).List, withIdentity(7), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	if gotFilter.MinDate != time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC) {
		t.Errorf("unexpected minDate %v", gotFilter.MinDate)
	}
	wantMax := time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC).Add(24*time.Hour - time.Nanosecond)
	if !gotFilter.MaxDate.Equal(wantMax) {
		t.Errorf("unexpected maxDate %v", gotFilter.MaxDate)
	}
	if gotFilter.Limit == nil || *gotFilter.Limit != 10 || gotFilter.Offset == nil || *gotFilter.Offset != 5 {
		t.Errorf("unexpected paging: %+v", gotFilter)
	}
	if gotFilter.Type == nil || *gotFilter.Type != model.TransactionTypePurchase {
		t.Errorf("unexpected type filter: %+v", gotFilter.Type)
	}

	envelope := decodeEnvelope(t, resp)
	data, _ := envelope.Data.(map[string]any)
	if data["count"] != float64(25) {
		t.Fatalf("unexpected count: %+v", data)
	}
}

func TestInvoiceHandlerListRejectsBadFilters(t *testing.T) {
	handler := NewInvoiceHandler(&testhelpers.TradingFacadeStub{})

	for _, path := range []string{
		"/invoices?minDate=yesterday",
		"/invoices?maxDate=2026/01/01",
		"/invoices?limit=-1",
		"/invoices?limit=ten",
		"/invoices?offset=-2",
		"/invoices?invoiceType=LEASE",
	} {
		resp := performRequest(t, http.MethodGet, "/invoices", path, handler.List, withIdentity(7), nil)
		if resp.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", path, resp.Code)
		}
	}
}

func TestInvoiceHandlerGet(t *testing.T) {
	facade := &testhelpers.TradingFacadeStub{
		InvoiceFn: func(ctx context.Context, userID int64, orderNumber string) (*model.Invoice, error) {
			if orderNumber != "260307-A1B2C3D4" {
				return nil, domainErrors.ErrInvoiceNotFound
			}
			return &model.Invoice{
				OrderNumber: orderNumber,
				UserID:      userID,
				State:       model.InvoiceStateOrderCompleted,
				Shipping:    model.ShippingDetail{Address: "1 Bullion Way", Zipcode: "04524"},
			}, nil
		},
	}
	handler := NewInvoiceHandler(facade)

	resp := performRequest(t, http.MethodGet, "/invoices/:orderNumber", "/invoices/260307-A1B2C3D4", handler.Get, withIdentity(7), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	envelope := decodeEnvelope(t, resp)
	data, _ := envelope.Data.(map[string]any)
	if data["zipcode"] != "04524" || data["shippingAddress"] != "1 Bullion Way" {
		t.Fatalf("detail response must include shipping: %+v", data)
	}

	resp = performRequest(t, http.MethodGet, "/invoices/:orderNumber", "/invoices/000000-XXXXXXXX", handler.Get, withIdentity(7), nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestInvoiceHandlerUpdateShipping(t *testing.T) {
	var gotShipping model.ShippingDetail
	facade := &testhelpers.TradingFacadeStub{
		UpdateShippingDetailFn: func(ctx context.Context, userID int64, orderNumber string, shipping model.ShippingDetail) error {
			gotShipping = shipping
			return nil
		},
	}

	body, _ := json.Marshal(dto.UpdateShippingRequest{
		ShippingAddress:     "1 Bullion Way",
		ShippingName:        "Kim",
		ShippingPhoneNumber: "010-1234-5678",
		Zipcode:             "04524",
	})
	resp := performRequest(t, http.MethodPatch, "/invoices/:orderNumber/shipping", "/invoices/260307-A1B2C3D4/shipping",
		NewInvoiceHandler(facade).UpdateShipping, withIdentity(7), body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if gotShipping.Address != "1 Bullion Way" || gotShipping.Zipcode != "04524" {
		t.Fatalf("unexpected shipping passed to facade: %+v", gotShipping)
	}
}

func TestInvoiceHandlerUpdateShippingValidation(t *testing.T) {
	handler := NewInvoiceHandler(&testhelpers.TradingFacadeStub{})

	// Zipcode must be exactly five characters.
	body, _ := json.Marshal(dto.UpdateShippingRequest{ShippingAddress: "1 Bullion Way", Zipcode: "123"})
	resp := performRequest(t, http.MethodPatch, "/invoices/:orderNumber/shipping", "/invoices/260307-A1B2C3D4/shipping",
		handler.UpdateShipping, withIdentity(7), body)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("short zipcode: expected 400, got %d", resp.Code)
	}

	body, _ = json.Marshal(dto.UpdateShippingRequest{Zipcode: "04524"})
	resp = performRequest(t, http.MethodPatch, "/invoices/:orderNumber/shipping", "/invoices/260307-A1B2C3D4/shipping",
		handler.UpdateShipping, withIdentity(7), body)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("missing address: expected 400, got %d", resp.Code)
	}
}

func TestInvoiceHandlerUpdateShippingErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domainErrors.ErrInvoiceNotFound, http.StatusNotFound},
		{domainErrors.ErrNotOwner, http.StatusForbidden},
		{domainErrors.ErrInvalidStateTransition, http.StatusConflict},
	}

	body, _ := json.Marshal(dto.UpdateShippingRequest{ShippingAddress: "1 Bullion Way", Zipcode: "04524"})
	for _, tc := range cases {
		facade := &testhelpers.TradingFacadeStub{
			UpdateShippingDetailFn: func(ctx context.Context, userID int64, orderNumber string, shipping model.ShippingDetail) error {
				return tc.err
			},
		}
		resp := performRequest(t, http.MethodPatch, "/invoices/:orderNumber/shipping", "/invoices/260307-A1B2C3D4/shipping",
			NewInvoiceHandler(facade).UpdateShipping, withIdentity(7), body)
		if resp.Code != tc.code {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.code, resp.Code)
		}
	}
}

func TestInvoiceHandlerUpdateState(t *testing.T) {
	var gotState model.InvoiceState
	var gotPayment *int64
	facade := &testhelpers.TradingFacadeStub{
		UpdateInvoiceStateFn: func(ctx context.Context, userID int64, orderNumber string, state model.InvoiceState, paymentAmount *int64) error {
			gotState = state
			gotPayment = paymentAmount
			return nil
		},
	}

	payment := int64(1000)
	body, _ := json.Marshal(dto.UpdateInvoiceStateRequest{InvoiceState: "PAYMENT_COMPLETED", PaymentAmount: &payment})
	resp := performRequest(t, http.MethodPatch, "/invoices/:orderNumber/state", "/invoices/260307-A1B2C3D4/state",
		NewInvoiceHandler(facade).UpdateState, withIdentity(7), body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if gotState != model.InvoiceStatePaymentCompleted || gotPayment == nil || *gotPayment != 1000 {
		t.Fatalf("unexpected arguments: %s %v", gotState, gotPayment)
	}
}

func TestInvoiceHandlerUpdateStateRejectsBadInput(t *testing.T) {
	handler := NewInvoiceHandler(&testhelpers.TradingFacadeStub{})

	body, _ := json.Marshal(dto.UpdateInvoiceStateRequest{InvoiceState: "SHIPPED"})
	resp := performRequest(t, http.MethodPatch, "/invoices/:orderNumber/state", "/invoices/260307-A1B2C3D4/state",
		handler.UpdateState, withIdentity(7), body)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unknown state: expected 400, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPatch, "/invoices/:orderNumber/state", "/invoices/260307-A1B2C3D4/state",
		handler.UpdateState, withIdentity(7), []byte("{}"))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("missing state: expected 400, got %d", resp.Code)
	}
}

func TestInvoiceHandlerUpdateStateErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domainErrors.ErrPaymentAmountRequired, http.StatusBadRequest},
		{domainErrors.ErrPaymentAmountMismatch, http.StatusConflict},
		{domainErrors.ErrInvalidStateTransition, http.StatusConflict},
		{domainErrors.ErrNotOwner, http.StatusForbidden},
	}

	body, _ := json.Marshal(dto.UpdateInvoiceStateRequest{InvoiceState: "PAYMENT_COMPLETED"})
	for _, tc := range cases {
		facade := &testhelpers.TradingFacadeStub{
			UpdateInvoiceStateFn: func(ctx context.Context, userID int64, orderNumber string, state model.InvoiceState, paymentAmount *int64) error {
				return tc.err
			},
		}
		resp := performRequest(t, http.MethodPatch, "/invoices/:orderNumber/state", "/invoices/260307-A1B2C3D4/state",
			NewInvoiceHandler(facade).UpdateState, withIdentity(7), body)
		if resp.Code != tc.code {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.code, resp.Code)
		}
	}
}

func TestInvoiceHandlerCancel(t *testing.T) {
	canceled := ""
	facade := &testhelpers.TradingFacadeStub{
		CancelInvoiceFn: func(ctx context.Context, userID int64, orderNumber string) error {
			canceled = orderNumber
			return nil
		},
	}

	resp := performRequest(t, http.MethodPatch, "/invoices/:orderNumber/cancel", "/invoices/260307-A1B2C3D4/cancel",
		NewInvoiceHandler(facade).Cancel, withIdentity(7), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if canceled != "260307-A1B2C3D4" {
		t.Fatalf("unexpected order number %q", canceled)
	}

	facade.CancelInvoiceFn = func(ctx context.Context, userID int64, orderNumber string) error {
		return domainErrors.ErrInvalidStateTransition
	}
	resp = performRequest(t, http.MethodPatch, "/invoices/:orderNumber/cancel", "/invoices/260307-A1B2C3D4/cancel",
		NewInvoiceHandler(facade).Cancel, withIdentity(7), nil)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.Code)
	}
}
