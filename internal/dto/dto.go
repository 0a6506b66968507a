package dto

type PaymentMethod struct {
	Identifier string `json:"identifier"`
	Label      string `json:"label"`
}

type ErrorDetail struct {
	Detail string `json:"detail"`
}

type RefundResponse struct {
	Refunded bool `json:"refunded"`
}
