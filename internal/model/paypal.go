package model

// Wire types for the PayPal Orders v2 API.
// https://developer.paypal.com/api/orders/v2/

type PaypalName struct {
	GivenName string `json:"given_name,omitempty"`
	Surname   string `json:"surname,omitempty"`
	FullName  string `json:"full_name,omitempty"`
}

type PaypalPayer struct {
	PayerID string      `json:"payer_id,omitempty"`
	Email   string      `json:"email_address,omitempty"`
	Name    *PaypalName `json:"name,omitempty"`
}

type PaypalAmount struct {
	Currency string `json:"currency_code"`
	Value    string `json:"value"`
}

type PaypalAmountBreakdown struct {
	ItemTotal PaypalAmount `json:"item_total"`
}

type PaypalAmountWithBreakdown struct {
	Currency  string                 `json:"currency_code"`
	Value     string                 `json:"value"`
	Breakdown *PaypalAmountBreakdown `json:"breakdown,omitempty"`
}

type PaypalItem struct {
	Name        string       `json:"name"`
	UnitAmount  PaypalAmount `json:"unit_amount"`
	Quantity    string       `json:"quantity"`
	Sku         string       `json:"sku,omitempty"`
	Description string       `json:"description,omitempty"`
}

type PaypalShipping struct {
	Name *PaypalName `json:"name,omitempty"`
}

type PaypalCapture struct {
	ID     string       `json:"id"`
	Status string       `json:"status"`
	Final  bool         `json:"final_capture"`
	Amount PaypalAmount `json:"amount"`
}

type PaypalPayments struct {
	Captures []PaypalCapture `json:"captures"`
}

type PaypalPurchaseUnit struct {
	ReferenceID string                    `json:"reference_id,omitempty"`
	CustomID    string                    `json:"custom_id,omitempty"`
	Amount      PaypalAmountWithBreakdown `json:"amount"`
	Items       []PaypalItem              `json:"items,omitempty"`
	Shipping    *PaypalShipping           `json:"shipping,omitempty"`
	Payments    *PaypalPayments           `json:"payments,omitempty"`
}

type PaypalAppContext struct {
	ReturnURL string `json:"return_url"`
	CancelURL string `json:"cancel_url"`
}

// PaypalOrderRequest is the order-create request body.
type PaypalOrderRequest struct {
	Intent             string               `json:"intent"`
	Payer              *PaypalPayer         `json:"payer,omitempty"`
	PurchaseUnits      []PaypalPurchaseUnit `json:"purchase_units"`
	ApplicationContext *PaypalAppContext    `json:"application_context,omitempty"`
}

type PaypalLink struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

// PaypalOrder is the order representation PayPal returns from both the create
// and the capture calls.
type PaypalOrder struct {
	ID            string               `json:"id"`
	Intent        string               `json:"intent,omitempty"`
	Status        string               `json:"status"`
	Payer         *PaypalPayer         `json:"payer,omitempty"`
	PurchaseUnits []PaypalPurchaseUnit `json:"purchase_units,omitempty"`
	Links         []PaypalLink         `json:"links,omitempty"`
}

// ApproveURL returns the buyer-approval link from the order's HATEOAS links.
func (o *PaypalOrder) ApproveURL() string {
	for _, link := range o.Links {
		if link.Rel == "approve" {
			return link.Href
		}
	}
	return ""
}
