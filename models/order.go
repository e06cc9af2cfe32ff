package models

// Order is one submitted order and its fill progress. The ID is assigned once
// at construction and survives modification; a modify mutates the same
// logical order. CreatedAt is the time-priority key in milliseconds since
// epoch.
type Order struct {
	ID           string    `json:"id"`
	Symbol       string    `json:"symbol"`
	Side         Side      `json:"side"`
	Type         OrderType `json:"type"`
	Price        float64   `json:"price"` // ignored for market/fok/ioc
	Qty          int       `json:"quantity"`
	RemainingQty int       `json:"remaining_quantity"`
	CreatedAt    int64     `json:"created_at"`
	Filled       bool      `json:"filled"`
	FilledQty    int       `json:"filled_quantity"`
	FilledValue  float64   `json:"-"`
	AvgFillPrice float64   `json:"avg_fill_price"`
}

// ApplyFill records a match of qty shares at price, keeping the
// quantity-weighted average fill price across all matches for this order.
func (o *Order) ApplyFill(qty int, price float64) {
	o.RemainingQty -= qty
	o.FilledQty += qty
	o.FilledValue += float64(qty) * price
	if o.FilledQty > 0 {
		o.AvgFillPrice = o.FilledValue / float64(o.FilledQty)
	}
	o.Filled = o.RemainingQty == 0
}

// Unexecuted reports whether the order has no fill progress. Only unexecuted
// orders may be modified.
func (o *Order) Unexecuted() bool {
	return o.RemainingQty == o.Qty
}

// OrderEvent is one entry in a book's order history: the event kind plus a
// value copy of the order as it stood when the event was applied.
type OrderEvent struct {
	Type  EventType `json:"type"`
	Order Order     `json:"order"`
	At    int64     `json:"at"`
}
