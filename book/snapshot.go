package book

import (
	"github.com/tzabcoder/OrderBookSimulator/models"
)

// Snapshot aggregates remaining quantity per price level under the book lock
// and returns an immutable copy: bids best (highest) first, asks best
// (lowest) first.
func (b *OrderBook) Snapshot() models.OrderBookResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	resp := models.OrderBookResponse{Symbol: b.symbol}
	b.buys.Descend(func(l *priceLevel) bool {
		resp.Bids = append(resp.Bids, models.OrderBookEntry{Price: l.price, Quantity: l.volume()})
		return true
	})
	b.sells.Ascend(func(l *priceLevel) bool {
		resp.Asks = append(resp.Asks, models.OrderBookEntry{Price: l.price, Quantity: l.volume()})
		return true
	})
	return resp
}
