package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"paypal-checkout-plugin/internal/client"
	"paypal-checkout-plugin/internal/config"
	"paypal-checkout-plugin/internal/model"
	"paypal-checkout-plugin/internal/reference"
	"paypal-checkout-plugin/internal/repository"
)

// Identifier is the payment method identifier recorded on order payments.
const Identifier = "paypal"

type CaptureCode string

const (
	CaptureFulfilled        CaptureCode = "fulfilled"
	CaptureInvalidReference CaptureCode = "invalid_reference"
	CaptureMissingBasket    CaptureCode = "missing_basket"
	CaptureMissingOrder     CaptureCode = "missing_order"
)

// CaptureResult is the outcome of reconciling a captured PayPal order against
// local state. Any code other than CaptureFulfilled means PayPal already moved
// the money but no local order was updated; those cases are logged for manual
// reconciliation.
type CaptureResult struct {
	Code        CaptureCode
	Detail      string
	OrderRef    string
	PaypalOrder *model.PaypalOrder
}

func (r *CaptureResult) Fulfilled() bool {
	return r.Code == CaptureFulfilled
}

type PaypalService interface {
	// InitiatePayment creates a PayPal order for the payable and returns
	// PayPal's response verbatim so the client can redirect the buyer to
	// the approval link. Currency falls back to the configured default
	// when empty. No local state is touched.
	InitiatePayment(ctx context.Context, payable model.Payable, currency string) (*model.PaypalOrder, error)
	// RedirectURL returns the configured redirect target for an approval
	// outcome, or "" when the built-in landing page should be shown.
	RedirectURL(approved bool) string
	// Capture captures the remote order and applies the result locally.
	// A non-nil error means the remote capture call itself failed and
	// nothing was mutated anywhere.
	Capture(ctx context.Context, paypalOrderID string) (*CaptureResult, error)
	// Refund refunds a captured payment. Failures are logged, not raised.
	Refund(ctx context.Context, payment *model.OrderPayment) bool
	Label() string
}

type paypalServiceImpl struct {
	paypalClient client.PaypalClient
	basketRepo   repository.BasketRepository
	orderRepo    repository.OrderRepository
	cfg          config.Paypal
	baseURL      string
	logger       *slog.Logger
}

func NewPaypalService(
	paypalClient client.PaypalClient,
	basketRepo repository.BasketRepository,
	orderRepo repository.OrderRepository,
	cfg config.Paypal,
	baseURL string,
	logger *slog.Logger,
) PaypalService {
	return &paypalServiceImpl{
		paypalClient: paypalClient,
		basketRepo:   basketRepo,
		orderRepo:    orderRepo,
		cfg:          cfg,
		baseURL:      baseURL,
		logger:       logger,
	}
}

func (s *paypalServiceImpl) Label() string {
	return s.cfg.PaymentLabel
}

func (s *paypalServiceImpl) InitiatePayment(ctx context.Context, payable model.Payable, currency string) (*model.PaypalOrder, error) {
	if currency == "" {
		currency = s.cfg.Currency()
	}

	req := buildOrderRequest(
		payable,
		currency,
		s.baseURL+"/api/paypal/return/",
		s.baseURL+"/api/paypal/cancel/",
	)

	paypalOrder, err := s.paypalClient.CreateOrder(ctx, req)
	if err != nil {
		s.logger.Error("paypal order create failed",
			"reference", payable.Reference(), "error", err)
		return nil, fmt.Errorf("paypal api create order: %w", err)
	}

	return paypalOrder, nil
}

func (s *paypalServiceImpl) RedirectURL(approved bool) string {
	if approved {
		return s.cfg.ReturnURL
	}
	return s.cfg.CancelURL
}

func (s *paypalServiceImpl) Capture(ctx context.Context, paypalOrderID string) (*CaptureResult, error) {
	paypalOrder, err := s.paypalClient.CaptureOrder(ctx, paypalOrderID)
	if err != nil {
		s.logger.Error("paypal capture failed", "paypal_order_id", paypalOrderID, "error", err)
		return nil, fmt.Errorf("paypal api capture order: %w", err)
	}

	// Everything below runs after the money has moved on PayPal's side.
	// Failures here cannot be rolled back, only reported.
	if len(paypalOrder.PurchaseUnits) == 0 {
		s.logger.Error("captured paypal order has no purchase units", "paypal_order_id", paypalOrder.ID)
		return &CaptureResult{Code: CaptureInvalidReference, Detail: "Invalid paypal reference"}, nil
	}
	unit := paypalOrder.PurchaseUnits[0]

	kind, id, ok := reference.Decode(unit.CustomID)
	if !ok {
		s.logger.Error("invalid paypal reference", "paypal_order_id", paypalOrder.ID, "custom_id", unit.CustomID)
		return &CaptureResult{Code: CaptureInvalidReference, Detail: "Invalid paypal reference"}, nil
	}

	var order *model.Order
	switch kind {
	case reference.KindBasket:
		basket, err := s.lookupBasket(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.logger.Error("missing basket", "basket_id", id, "paypal_order_id", paypalOrder.ID)
				return &CaptureResult{Code: CaptureMissingBasket, Detail: "Missing basket"}, nil
			}
			return nil, fmt.Errorf("lookup basket %s: %w", id, err)
		}

		order, err = s.orderRepo.CreateFromBasket(ctx, basket, s.cfg.PaidStatus)
		if err != nil {
			return nil, fmt.Errorf("create order from basket %d: %w", basket.ID, err)
		}
		// Deleting the basket is what makes conversion exactly-once: a
		// duplicate callback finds no basket and surfaces as an anomaly
		// instead of a second order.
		if err := s.basketRepo.Delete(ctx, basket); err != nil {
			return nil, fmt.Errorf("delete basket %d: %w", basket.ID, err)
		}
	case reference.KindOrder:
		order, err = s.lookupOrder(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.logger.Error("missing order", "order_id", id, "paypal_order_id", paypalOrder.ID)
				return &CaptureResult{Code: CaptureMissingOrder, Detail: "Missing order"}, nil
			}
			return nil, fmt.Errorf("lookup order %s: %w", id, err)
		}
	}

	if unit.Payments == nil || len(unit.Payments.Captures) == 0 {
		return nil, fmt.Errorf("paypal order %s has no capture records", paypalOrder.ID)
	}
	capture := unit.Payments.Captures[0]

	amount, err := decimal.NewFromString(capture.Amount.Value)
	if err != nil {
		return nil, fmt.Errorf("parse capture amount %q: %w", capture.Amount.Value, err)
	}

	if err := s.orderRepo.RecordPayment(ctx, order, amount, capture.ID, Identifier); err != nil {
		return nil, fmt.Errorf("record payment on order %s: %w", order.Ref, err)
	}

	s.logger.Info("order fulfilled", "order_ref", order.Ref, "transaction_id", capture.ID)

	return &CaptureResult{
		Code:        CaptureFulfilled,
		OrderRef:    order.Ref,
		PaypalOrder: paypalOrder,
	}, nil
}

func (s *paypalServiceImpl) Refund(ctx context.Context, payment *model.OrderPayment) bool {
	if err := s.paypalClient.RefundCapture(ctx, payment.TransactionID); err != nil {
		s.logger.Error("paypal refund failed", "transaction_id", payment.TransactionID, "error", err)
		return false
	}
	return true
}

func (s *paypalServiceImpl) lookupBasket(ctx context.Context, id string) (*model.Basket, error) {
	basketID, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.basketRepo.FindByID(ctx, uint(basketID))
}

func (s *paypalServiceImpl) lookupOrder(ctx context.Context, id string) (*model.Order, error) {
	orderID, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.orderRepo.FindByID(ctx, uint(orderID))
}
