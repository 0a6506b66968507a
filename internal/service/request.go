package service

import (
	"fmt"
	"strconv"

	"paypal-checkout-plugin/internal/model"
)

// PayPal caps item descriptions at 127 characters.
const descriptionLimit = 127

// buildOrderRequest maps a payable entity onto a PayPal order-create request.
// Pure formatting: amounts are rendered from decimals, never floats.
func buildOrderRequest(p model.Payable, currency, returnURL, cancelURL string) *model.PaypalOrderRequest {
	return &model.PaypalOrderRequest{
		Intent:        "CAPTURE",
		Payer:         buildPayer(p),
		PurchaseUnits: []model.PaypalPurchaseUnit{buildPurchaseUnit(p, currency)},
		ApplicationContext: &model.PaypalAppContext{
			ReturnURL: returnURL,
			CancelURL: cancelURL,
		},
	}
}

func buildPayer(p model.Payable) *model.PaypalPayer {
	user := p.User()
	if user == nil {
		return &model.PaypalPayer{Email: p.Email()}
	}

	givenName := user.FirstName
	if givenName == "" {
		givenName = user.Username
	}

	return &model.PaypalPayer{
		Email: user.Email,
		Name: &model.PaypalName{
			GivenName: givenName,
			Surname:   user.LastName,
		},
	}
}

func buildPurchaseUnit(p model.Payable, currency string) model.PaypalPurchaseUnit {
	total := p.Total().String()

	return model.PaypalPurchaseUnit{
		Amount: model.PaypalAmountWithBreakdown{
			Currency: currency,
			Value:    total,
			Breakdown: &model.PaypalAmountBreakdown{
				ItemTotal: model.PaypalAmount{
					Currency: currency,
					Value:    total,
				},
			},
		},
		CustomID: p.Reference(),
		Items:    buildItems(p, currency),
		Shipping: buildShipping(p),
	}
}

func buildItems(p model.Payable, currency string) []model.PaypalItem {
	lines := p.Lines()
	items := make([]model.PaypalItem, len(lines))
	for i, line := range lines {
		items[i] = model.PaypalItem{
			Name: line.Name,
			UnitAmount: model.PaypalAmount{
				Currency: currency,
				Value:    line.UnitPrice.String(),
			},
			Quantity:    strconv.Itoa(line.Quantity),
			Sku:         line.Sku,
			Description: truncateChars(fmt.Sprintf("%dx %s", line.Quantity, line.Name), descriptionLimit),
		}
	}
	return items
}

func buildShipping(p model.Payable) *model.PaypalShipping {
	user := p.User()
	if user == nil {
		return nil
	}
	return &model.PaypalShipping{
		Name: &model.PaypalName{FullName: user.FullName()},
	}
}

func truncateChars(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
