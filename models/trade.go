package models

// Trade is one execution between two orders. Trades always execute at the
// resting order's price, so price improvement accrues to the aggressor.
// Immutable after construction.
type Trade struct {
	ID          string  `json:"id"`
	Symbol      string  `json:"symbol"`
	BuyOrderID  string  `json:"buy_order_id"`
	SellOrderID string  `json:"sell_order_id"`
	Qty         int     `json:"quantity"`
	Price       float64 `json:"price"`
	ExecutedAt  int64   `json:"executed_at"`
}
