package book

import (
	"github.com/tzabcoder/OrderBookSimulator/models"
)

// crosses reports whether the aggressor is willing to trade at a level.
// Non-price-bearing types (market, fok, ioc) cross every level.
func crosses(agg *models.Order, levelPrice float64) bool {
	if !agg.Type.PriceBearing() {
		return true
	}
	if agg.Side == models.SideBuy {
		return agg.Price >= levelPrice
	}
	return agg.Price <= levelPrice
}

// match walks the opposite side best-price-first with agg as the aggressor.
// resting indicates agg is already linked into its own side (a modified
// order competing afresh).
//
// Residue policy: limit, stop and iceberg remainders rest in the book;
// market, ioc and fok remainders are discarded. FOK is all-or-nothing and
// trades nothing when the crossable volume cannot fill it completely.
func (b *OrderBook) match(agg *models.Order, resting bool) {
	opp := b.sells
	if agg.Side == models.SideSell {
		opp = b.buys
	}

	// Collect crossable levels before consuming them; the tree must not be
	// mutated mid-iteration.
	var levels []*priceLevel
	walk := func(l *priceLevel) bool {
		if !crosses(agg, l.price) {
			return false
		}
		levels = append(levels, l)
		return true
	}
	if agg.Side == models.SideBuy {
		opp.Ascend(walk)
	} else {
		opp.Descend(walk)
	}

	if agg.Type == models.TypeFOK && crossableVolume(levels) < agg.RemainingQty {
		levels = nil
	}

	for _, level := range levels {
		if agg.RemainingQty == 0 {
			break
		}
		b.uncross(agg, level)
		if level.empty() {
			opp.Delete(level)
		}
	}

	switch {
	case agg.RemainingQty == 0:
		if resting {
			b.unlink(agg)
			delete(b.index, agg.ID)
		}
	case agg.Type.RestsWhenUnfilled():
		if !resting {
			b.link(agg)
		}
	}
}

// uncross consumes resting orders at one level in arrival order. Fully
// consumed orders leave the level and the index immediately so they are never
// visited again.
func (b *OrderBook) uncross(agg *models.Order, level *priceLevel) {
	for len(level.orders) > 0 && agg.RemainingQty > 0 {
		rest := level.orders[0]
		matchQty := min(agg.RemainingQty, rest.RemainingQty)

		b.logTrade(b.newTrade(agg, rest, matchQty, level.price))
		agg.ApplyFill(matchQty, level.price)
		rest.ApplyFill(matchQty, level.price)

		if rest.RemainingQty == 0 {
			level.orders = level.orders[1:]
			delete(b.index, rest.ID)
		}
	}
}

// newTrade builds a trade at the resting order's price; price improvement
// always accrues to the aggressor.
func (b *OrderBook) newTrade(agg, rest *models.Order, qty int, price float64) models.Trade {
	buyID, sellID := agg.ID, rest.ID
	if agg.Side == models.SideSell {
		buyID, sellID = rest.ID, agg.ID
	}
	return models.Trade{
		ID:          b.ids.NextID(),
		Symbol:      b.symbol,
		BuyOrderID:  buyID,
		SellOrderID: sellID,
		Qty:         qty,
		Price:       price,
		ExecutedAt:  b.ids.NowMillis(),
	}
}

func crossableVolume(levels []*priceLevel) int {
	total := 0
	for _, l := range levels {
		total += l.volume()
	}
	return total
}
