package service

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"paypal-checkout-plugin/internal/model"
)

func guestBasket() *model.Basket {
	return &model.Basket{
		ID:    42,
		Extra: datatypes.JSONMap{"email": "guest@example.com"},
		Items: []model.BasketItem{
			{Name: "Blue T-Shirt", Sku: "TS-BLUE", Quantity: 1, UnitPrice: decimal.RequireFromString("19.99")},
		},
	}
}

func TestBuildOrderRequestGuestBasket(t *testing.T) {
	req := buildOrderRequest(
		model.PayableFromBasket(guestBasket()),
		"USD",
		"http://shop.test/api/paypal/return/",
		"http://shop.test/api/paypal/cancel/",
	)

	assert.Equal(t, "CAPTURE", req.Intent)
	assert.Equal(t, "guest@example.com", req.Payer.Email)
	assert.Nil(t, req.Payer.Name)

	require.Len(t, req.PurchaseUnits, 1)
	unit := req.PurchaseUnits[0]
	assert.Equal(t, "basket_42", unit.CustomID)
	assert.Equal(t, "19.99", unit.Amount.Value)
	assert.Equal(t, "USD", unit.Amount.Currency)
	assert.Equal(t, "19.99", unit.Amount.Breakdown.ItemTotal.Value)
	assert.Nil(t, unit.Shipping)

	require.Len(t, unit.Items, 1)
	item := unit.Items[0]
	assert.Equal(t, "Blue T-Shirt", item.Name)
	assert.Equal(t, "TS-BLUE", item.Sku)
	assert.Equal(t, "1", item.Quantity)
	assert.Equal(t, "19.99", item.UnitAmount.Value)

	assert.Equal(t, "http://shop.test/api/paypal/return/", req.ApplicationContext.ReturnURL)
	assert.Equal(t, "http://shop.test/api/paypal/cancel/", req.ApplicationContext.CancelURL)
}

func TestBuildOrderRequestRegisteredUser(t *testing.T) {
	basket := guestBasket()
	userID := uint(9)
	basket.UserID = &userID
	basket.User = &model.User{
		ID:        userID,
		Username:  "jdoe",
		Email:     "jdoe@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
	}

	req := buildOrderRequest(model.PayableFromBasket(basket), "EUR", "r", "c")

	assert.Equal(t, "jdoe@example.com", req.Payer.Email)
	require.NotNil(t, req.Payer.Name)
	assert.Equal(t, "Jane", req.Payer.Name.GivenName)
	assert.Equal(t, "Doe", req.Payer.Name.Surname)

	require.NotNil(t, req.PurchaseUnits[0].Shipping)
	assert.Equal(t, "Jane Doe", req.PurchaseUnits[0].Shipping.Name.FullName)
	assert.Equal(t, "EUR", req.PurchaseUnits[0].Amount.Currency)
}

func TestBuildOrderRequestUsernameFallback(t *testing.T) {
	basket := guestBasket()
	basket.User = &model.User{Username: "jdoe", Email: "jdoe@example.com"}

	req := buildOrderRequest(model.PayableFromBasket(basket), "USD", "r", "c")

	assert.Equal(t, "jdoe", req.Payer.Name.GivenName)
	assert.Empty(t, req.Payer.Name.Surname)
}

func TestBuildOrderRequestPerItemLines(t *testing.T) {
	basket := &model.Basket{
		ID: 5,
		Items: []model.BasketItem{
			{Name: "Mug", Sku: "MUG-01", Quantity: 2, UnitPrice: decimal.RequireFromString("4.50")},
			{Name: "Poster", Sku: "PST-02", Quantity: 1, UnitPrice: decimal.RequireFromString("12.00")},
		},
	}

	req := buildOrderRequest(model.PayableFromBasket(basket), "USD", "r", "c")

	unit := req.PurchaseUnits[0]
	assert.Equal(t, "21", unit.Amount.Value)
	require.Len(t, unit.Items, 2)
	assert.Equal(t, "2", unit.Items[0].Quantity)
	assert.Equal(t, "4.5", unit.Items[0].UnitAmount.Value)
	assert.Equal(t, "PST-02", unit.Items[1].Sku)
}

func TestBuildOrderRequestExistingOrder(t *testing.T) {
	order := &model.Order{
		ID:     7,
		Ref:    "ref-7",
		Email:  "buyer@example.com",
		Total:  decimal.RequireFromString("30.00"),
		Status: "NEW",
		Items: []model.OrderItem{
			{Name: "Hat", Sku: "HAT-01", Quantity: 1, UnitPrice: decimal.RequireFromString("30.00")},
		},
	}

	req := buildOrderRequest(model.PayableFromOrder(order), "USD", "r", "c")

	unit := req.PurchaseUnits[0]
	assert.Equal(t, "order_7", unit.CustomID)
	assert.Equal(t, "30", unit.Amount.Value)
	assert.Equal(t, "buyer@example.com", req.Payer.Email)
}

func TestTruncateChars(t *testing.T) {
	long := strings.Repeat("a", 300)
	truncated := truncateChars(long, descriptionLimit)
	assert.Equal(t, descriptionLimit, len([]rune(truncated)))
	assert.True(t, strings.HasSuffix(truncated, "…"))

	assert.Equal(t, "short", truncateChars("short", descriptionLimit))
}
