package models

// Field validity (qty, price, side, type, order id) is the core's job so the
// matching error codes surface to clients; the transport layer only rejects
// structurally broken requests with BAD_REQUEST.

type PlaceOrderRequest struct {
	Symbol   string  `json:"symbol" validate:"required"`
	Side     string  `json:"side"`
	Type     string  `json:"type"`
	Price    float64 `json:"price"` // required placeholder even for market/fok/ioc
	Quantity int     `json:"quantity"`
}

type ModifyOrderRequest struct {
	Symbol   string  `json:"symbol" validate:"required"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}
