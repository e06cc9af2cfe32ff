package models

// OrderResponse answers every create/modify/cancel request. OrderID is ""
// whenever Code is not OK.
type OrderResponse struct {
	OrderID string    `json:"order_id"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message,omitempty"`
}

type OrderStatusResponse struct {
	OrderID           string    `json:"order_id"`
	Symbol            string    `json:"symbol"`
	Side              Side      `json:"side"`
	Type              OrderType `json:"type"`
	Price             float64   `json:"price"`
	Filled            bool      `json:"filled"`
	Resting           bool      `json:"resting"`
	ExecutedQuantity  int       `json:"executed_quantity"`
	RemainingQuantity int       `json:"remaining_quantity"`
	AvgFillPrice      float64   `json:"avg_fill_price"`
}

type OrderBookEntry struct {
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// OrderBookResponse is an aggregated depth snapshot: remaining quantity per
// price level, bids best (highest) first, asks best (lowest) first.
type OrderBookResponse struct {
	Symbol string           `json:"symbol"`
	Bids   []OrderBookEntry `json:"bids"`
	Asks   []OrderBookEntry `json:"asks"`
}
