package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"paypal-checkout-plugin/internal/client"
	"paypal-checkout-plugin/internal/dto"
	"paypal-checkout-plugin/internal/model"
	"paypal-checkout-plugin/internal/repository"
	"paypal-checkout-plugin/internal/service"
)

type PaypalHandler struct {
	paypalService service.PaypalService
	basketRepo    repository.BasketRepository
	orderRepo     repository.OrderRepository
}

func NewPaypalHandler(
	paypalService service.PaypalService,
	basketRepo repository.BasketRepository,
	orderRepo repository.OrderRepository,
) *PaypalHandler {
	return &PaypalHandler{
		paypalService: paypalService,
		basketRepo:    basketRepo,
		orderRepo:     orderRepo,
	}
}

func (h *PaypalHandler) GetPaymentMethods(c echo.Context) error {
	return c.JSON(http.StatusOK, []dto.PaymentMethod{
		{Identifier: service.Identifier, Label: h.paypalService.Label()},
	})
}

// PayBasket creates a PayPal order for a basket and returns PayPal's response
// so the storefront can redirect the buyer to the approval link.
func (h *PaypalHandler) PayBasket(c echo.Context) error {
	ctx := c.Request().Context()

	basketID, err := parseID(c.Param("basketID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid basket id")
	}

	basket, err := h.basketRepo.FindByID(ctx, basketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "basket not found")
		}
		return err
	}

	return h.initiate(c, model.PayableFromBasket(basket))
}

// PayOrder creates a PayPal order to pay for an existing local order.
func (h *PaypalHandler) PayOrder(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := parseID(c.Param("orderID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	order, err := h.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		return err
	}

	return h.initiate(c, model.PayableFromOrder(order))
}

func (h *PaypalHandler) initiate(c echo.Context, payable model.Payable) error {
	ctx := c.Request().Context()

	paypalOrder, err := h.paypalService.InitiatePayment(ctx, payable, c.QueryParam("currency"))
	if err != nil {
		var procErr *client.ProcessorError
		if errors.As(err, &procErr) {
			return c.JSONBlob(http.StatusBadGateway, procErr.Body)
		}
		return err
	}

	return c.JSON(http.StatusOK, paypalOrder)
}

// HandleReturn serves the approval redirect: either the configured return URL
// or the built-in landing page.
func (h *PaypalHandler) HandleReturn(c echo.Context) error {
	if url := h.paypalService.RedirectURL(true); url != "" {
		return c.Redirect(http.StatusFound, url)
	}
	return c.HTML(http.StatusOK, approvedLanding)
}

// HandleCancel serves the cancellation redirect.
func (h *PaypalHandler) HandleCancel(c echo.Context) error {
	if url := h.paypalService.RedirectURL(false); url != "" {
		return c.Redirect(http.StatusFound, url)
	}
	return c.HTML(http.StatusOK, cancelledLanding)
}

// CaptureOrder captures an approved PayPal order and fulfills the local
// basket or order it references.
func (h *PaypalHandler) CaptureOrder(c echo.Context) error {
	ctx := c.Request().Context()

	paypalOrderID := c.Param("orderID")
	if paypalOrderID == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorDetail{Detail: "Missing order id"})
	}

	result, err := h.paypalService.Capture(ctx, paypalOrderID)
	if err != nil {
		var procErr *client.ProcessorError
		if errors.As(err, &procErr) {
			return c.JSONBlob(http.StatusBadRequest, procErr.Body)
		}
		return err
	}

	if !result.Fulfilled() {
		return c.JSON(http.StatusBadRequest, dto.ErrorDetail{Detail: result.Detail})
	}

	return c.JSON(http.StatusOK, result.PaypalOrder)
}

// Refund refunds a captured payment by its transaction id. Admin action:
// success is reported as a flag, not a detailed error.
func (h *PaypalHandler) Refund(c echo.Context) error {
	ctx := c.Request().Context()

	transactionID := c.Param("transactionID")
	if transactionID == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorDetail{Detail: "Missing transaction id"})
	}

	refunded := h.paypalService.Refund(ctx, &model.OrderPayment{TransactionID: transactionID})

	return c.JSON(http.StatusOK, dto.RefundResponse{Refunded: refunded})
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
