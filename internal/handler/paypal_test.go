package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"paypal-checkout-plugin/internal/client"
	"paypal-checkout-plugin/internal/model"
	"paypal-checkout-plugin/internal/service"
)

type fakePaypalService struct {
	initiateResp  *model.PaypalOrder
	initiateErr   error
	returnURL     string
	cancelURL     string
	captureResult *service.CaptureResult
	captureErr    error
	refunded      bool
}

func (f *fakePaypalService) InitiatePayment(ctx context.Context, payable model.Payable, currency string) (*model.PaypalOrder, error) {
	if f.initiateErr != nil {
		return nil, f.initiateErr
	}
	return f.initiateResp, nil
}

func (f *fakePaypalService) RedirectURL(approved bool) string {
	if approved {
		return f.returnURL
	}
	return f.cancelURL
}

func (f *fakePaypalService) Capture(ctx context.Context, paypalOrderID string) (*service.CaptureResult, error) {
	if f.captureErr != nil {
		return nil, f.captureErr
	}
	return f.captureResult, nil
}

func (f *fakePaypalService) Refund(ctx context.Context, payment *model.OrderPayment) bool {
	return f.refunded
}

func (f *fakePaypalService) Label() string {
	return "Pay with PayPal"
}

type fakeBasketRepo struct {
	basket *model.Basket
}

func (f *fakeBasketRepo) FindByID(ctx context.Context, id uint) (*model.Basket, error) {
	if f.basket == nil || f.basket.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.basket, nil
}

func (f *fakeBasketRepo) Create(ctx context.Context, basket *model.Basket) error { return nil }

func (f *fakeBasketRepo) Delete(ctx context.Context, basket *model.Basket) error { return nil }

type fakeOrderRepo struct {
	order *model.Order
}

func (f *fakeOrderRepo) FindByID(ctx context.Context, id uint) (*model.Order, error) {
	if f.order == nil || f.order.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.order, nil
}

func (f *fakeOrderRepo) CreateFromBasket(ctx context.Context, basket *model.Basket, status string) (*model.Order, error) {
	return f.order, nil
}

func (f *fakeOrderRepo) RecordPayment(ctx context.Context, order *model.Order, amount decimal.Decimal, transactionID, method string) error {
	return nil
}

func newContext(method, path string, pathParams map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	names := make([]string, 0, len(pathParams))
	values := make([]string, 0, len(pathParams))
	for name, value := range pathParams {
		names = append(names, name)
		values = append(values, value)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c, rec
}

func TestCaptureOrderFulfilled(t *testing.T) {
	svc := &fakePaypalService{
		captureResult: &service.CaptureResult{
			Code:        service.CaptureFulfilled,
			OrderRef:    "ord-1",
			PaypalOrder: &model.PaypalOrder{ID: "PP1", Status: "COMPLETED"},
		},
	}
	h := NewPaypalHandler(svc, &fakeBasketRepo{}, &fakeOrderRepo{})

	c, rec := newContext(http.MethodPost, "/api/paypal/capture/PP1/", map[string]string{"orderID": "PP1"})
	require.NoError(t, h.CaptureOrder(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body model.PaypalOrder
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "PP1", body.ID)
	assert.Equal(t, "COMPLETED", body.Status)
}

func TestCaptureOrderAnomalyOutcomes(t *testing.T) {
	cases := []struct {
		code   service.CaptureCode
		detail string
	}{
		{service.CaptureInvalidReference, "Invalid paypal reference"},
		{service.CaptureMissingBasket, "Missing basket"},
		{service.CaptureMissingOrder, "Missing order"},
	}

	for _, tc := range cases {
		svc := &fakePaypalService{
			captureResult: &service.CaptureResult{Code: tc.code, Detail: tc.detail},
		}
		h := NewPaypalHandler(svc, &fakeBasketRepo{}, &fakeOrderRepo{})

		c, rec := newContext(http.MethodPost, "/api/paypal/capture/PP1/", map[string]string{"orderID": "PP1"})
		require.NoError(t, h.CaptureOrder(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"detail":"`+tc.detail+`"}`, rec.Body.String())
	}
}

func TestCaptureOrderProcessorErrorRelaysRawBody(t *testing.T) {
	rawBody := `{"name":"ORDER_NOT_APPROVED","message":"Payer has not yet approved the Order"}`
	svc := &fakePaypalService{
		captureErr: &client.ProcessorError{StatusCode: 422, Body: []byte(rawBody)},
	}
	h := NewPaypalHandler(svc, &fakeBasketRepo{}, &fakeOrderRepo{})

	c, rec := newContext(http.MethodPost, "/api/paypal/capture/PP1/", map[string]string{"orderID": "PP1"})
	require.NoError(t, h.CaptureOrder(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, rawBody, rec.Body.String())
}

func TestHandleReturnConfiguredRedirect(t *testing.T) {
	svc := &fakePaypalService{returnURL: "https://shop.test/thanks"}
	h := NewPaypalHandler(svc, &fakeBasketRepo{}, &fakeOrderRepo{})

	c, rec := newContext(http.MethodGet, "/api/paypal/return/", nil)
	require.NoError(t, h.HandleReturn(c))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://shop.test/thanks", rec.Header().Get("Location"))
}

func TestHandleReturnBuiltInLanding(t *testing.T) {
	h := NewPaypalHandler(&fakePaypalService{}, &fakeBasketRepo{}, &fakeOrderRepo{})

	c, rec := newContext(http.MethodGet, "/api/paypal/return/", nil)
	require.NoError(t, h.HandleReturn(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "Payment approved"))
}

func TestHandleCancelConfiguredRedirect(t *testing.T) {
	svc := &fakePaypalService{cancelURL: "https://shop.test/cancelled"}
	h := NewPaypalHandler(svc, &fakeBasketRepo{}, &fakeOrderRepo{})

	c, rec := newContext(http.MethodGet, "/api/paypal/cancel/", nil)
	require.NoError(t, h.HandleCancel(c))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://shop.test/cancelled", rec.Header().Get("Location"))
}

func TestPayBasketNotFound(t *testing.T) {
	h := NewPaypalHandler(&fakePaypalService{}, &fakeBasketRepo{}, &fakeOrderRepo{})

	c, _ := newContext(http.MethodPost, "/api/payment/basket/42", map[string]string{"basketID": "42"})
	err := h.PayBasket(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestPayBasketInitiationFailureRelaysProcessorBody(t *testing.T) {
	rawBody := `{"name":"INVALID_REQUEST"}`
	svc := &fakePaypalService{
		initiateErr: &client.ProcessorError{StatusCode: 422, Body: []byte(rawBody)},
	}
	h := NewPaypalHandler(svc, &fakeBasketRepo{basket: &model.Basket{ID: 42}}, &fakeOrderRepo{})

	c, rec := newContext(http.MethodPost, "/api/payment/basket/42", map[string]string{"basketID": "42"})
	require.NoError(t, h.PayBasket(c))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, rawBody, rec.Body.String())
}

func TestPayBasketReturnsPaypalOrder(t *testing.T) {
	svc := &fakePaypalService{
		initiateResp: &model.PaypalOrder{
			ID:     "PP1",
			Status: "CREATED",
			Links:  []model.PaypalLink{{Rel: "approve", Href: "https://paypal.test/approve"}},
		},
	}
	h := NewPaypalHandler(svc, &fakeBasketRepo{basket: &model.Basket{ID: 42}}, &fakeOrderRepo{})

	c, rec := newContext(http.MethodPost, "/api/payment/basket/42", map[string]string{"basketID": "42"})
	require.NoError(t, h.PayBasket(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body model.PaypalOrder
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "PP1", body.ID)
	assert.Equal(t, "https://paypal.test/approve", body.ApproveURL())
}

func TestRefundEndpoint(t *testing.T) {
	h := NewPaypalHandler(&fakePaypalService{refunded: true}, &fakeBasketRepo{}, &fakeOrderRepo{})

	c, rec := newContext(http.MethodPost, "/api/paypal/refund/CAP1/", map[string]string{"transactionID": "CAP1"})
	require.NoError(t, h.Refund(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"refunded":true}`, rec.Body.String())
}

func TestGetPaymentMethods(t *testing.T) {
	h := NewPaypalHandler(&fakePaypalService{}, &fakeBasketRepo{}, &fakeOrderRepo{})

	c, rec := newContext(http.MethodGet, "/api/payment/methods", nil)
	require.NoError(t, h.GetPaymentMethods(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"identifier":"paypal","label":"Pay with PayPal"}]`, rec.Body.String())
}
