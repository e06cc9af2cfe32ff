package book_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tzabcoder/OrderBookSimulator/book"
	"github.com/tzabcoder/OrderBookSimulator/models"
	"github.com/tzabcoder/OrderBookSimulator/utils"
)

// testIDGen returns a deterministic generator whose clock advances one
// millisecond per call, so ids are unique and stable across runs.
func testIDGen() *utils.IDGenerator {
	var ms int64 = 1700000000000
	return utils.NewIDGenerator(rand.New(rand.NewSource(1)), func() time.Time {
		ms++
		return time.UnixMilli(ms)
	})
}

func newTestBook() *book.OrderBook {
	return book.New("AAPL", testIDGen(), nil)
}

func mustCreate(t *testing.T, b *book.OrderBook, qty int, price float64, side models.Side, typ models.OrderType) string {
	t.Helper()
	id, code := b.CreateOrder(qty, price, side, typ)
	require.Equal(t, models.CodeOK, code)
	require.NotEmpty(t, id)
	return id
}

func TestCreateOrderValidation(t *testing.T) {
	tests := []struct {
		name     string
		qty      int
		price    float64
		side     models.Side
		typ      models.OrderType
		wantCode models.ErrorCode
	}{
		{name: "Zero Quantity", qty: 0, price: 100, side: models.SideBuy, typ: models.TypeLimit, wantCode: models.CodeBadQty},
		{name: "Negative Quantity", qty: -5, price: 100, side: models.SideBuy, typ: models.TypeLimit, wantCode: models.CodeBadQty},
		{name: "Zero Price", qty: 10, price: 0, side: models.SideBuy, typ: models.TypeLimit, wantCode: models.CodeBadPrice},
		{name: "Negative Price", qty: 10, price: -1.5, side: models.SideSell, typ: models.TypeLimit, wantCode: models.CodeBadPrice},
		{name: "Market Order Needs Placeholder Price", qty: 10, price: 0, side: models.SideBuy, typ: models.TypeMarket, wantCode: models.CodeBadPrice},
		{name: "Invalid Side", qty: 10, price: 100, side: models.Side("hold"), typ: models.TypeLimit, wantCode: models.CodeBadSide},
		{name: "Invalid Type", qty: 10, price: 100, side: models.SideBuy, typ: models.OrderType("trailing"), wantCode: models.CodeBadType},
		{name: "Qty Checked Before Price", qty: 0, price: 0, side: models.SideBuy, typ: models.TypeLimit, wantCode: models.CodeBadQty},
		{name: "Price Checked Before Side", qty: 10, price: 0, side: models.Side("hold"), typ: models.TypeLimit, wantCode: models.CodeBadPrice},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := newTestBook()

			id, code := b.CreateOrder(tc.qty, tc.price, tc.side, tc.typ)

			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, "", id, "failed create must return the sentinel id")
			assert.Equal(t, 0, b.RestingCount(), "failed create must not mutate the book")
			assert.Equal(t, 0, b.LevelCount(models.SideBuy))
			assert.Equal(t, 0, b.LevelCount(models.SideSell))
			assert.Empty(t, b.OrderHistory())
		})
	}
}

func TestLimitOrderRests(t *testing.T) {
	b := newTestBook()

	id := mustCreate(t, b, 10, 100, models.SideBuy, models.TypeLimit)

	o, resting, found := b.GetOrder(id)
	require.True(t, found)
	assert.True(t, resting)
	assert.Equal(t, 10, o.RemainingQty)
	assert.False(t, o.Filled)
	assert.Equal(t, 1, b.LevelCount(models.SideBuy))
	assert.Empty(t, b.TradeHistory())

	events := b.OrderHistory()
	require.Len(t, events, 1)
	assert.Equal(t, models.EventCreate, events[0].Type)
	assert.Equal(t, id, events[0].Order.ID)
}

func TestTimePriority(t *testing.T) {
	b := newTestBook()

	first := mustCreate(t, b, 10, 100, models.SideBuy, models.TypeLimit)
	second := mustCreate(t, b, 10, 100, models.SideBuy, models.TypeLimit)

	mustCreate(t, b, 10, 1, models.SideSell, models.TypeMarket)

	trades := b.TradeHistory()
	require.Len(t, trades, 1)
	assert.Equal(t, first, trades[0].BuyOrderID, "earlier order at the same price must fill first")
	assert.Equal(t, 10, trades[0].Qty)
	assert.Equal(t, 100.0, trades[0].Price)

	_, resting, found := b.GetOrder(second)
	require.True(t, found)
	assert.True(t, resting, "later order must be untouched and still resting")

	o, resting, found := b.GetOrder(first)
	require.True(t, found)
	assert.False(t, resting)
	assert.True(t, o.Filled)
}

func TestPricePriority(t *testing.T) {
	b := newTestBook()

	mustCreate(t, b, 10, 101, models.SideSell, models.TypeLimit)
	mustCreate(t, b, 10, 100, models.SideSell, models.TypeLimit)

	mustCreate(t, b, 5, 1, models.SideBuy, models.TypeMarket)

	trades := b.TradeHistory()
	require.Len(t, trades, 1)
	assert.Equal(t, 100.0, trades[0].Price, "best priced level must fill first")
	assert.Equal(t, 5, trades[0].Qty)
}

func TestNoCrossLimit(t *testing.T) {
	b := newTestBook()

	sellID := mustCreate(t, b, 10, 100, models.SideSell, models.TypeLimit)
	buyID := mustCreate(t, b, 10, 99, models.SideBuy, models.TypeLimit)

	assert.Empty(t, b.TradeHistory())

	_, resting, _ := b.GetOrder(buyID)
	assert.True(t, resting, "non-crossing limit must rest")
	_, resting, _ = b.GetOrder(sellID)
	assert.True(t, resting, "sell book must be untouched")

	snap := b.Snapshot()
	require.Len(t, snap.Bids, 1)
	require.Len(t, snap.Asks, 1)
	assert.Equal(t, 99.0, snap.Bids[0].Price)
	assert.Equal(t, 100.0, snap.Asks[0].Price)
}

func TestMarketResidueDiscarded(t *testing.T) {
	b := newTestBook()

	sellID := mustCreate(t, b, 50, 100, models.SideSell, models.TypeLimit)
	buyID := mustCreate(t, b, 80, 1, models.SideBuy, models.TypeMarket)

	trades := b.TradeHistory()
	require.Len(t, trades, 1)
	assert.Equal(t, 50, trades[0].Qty)
	assert.Equal(t, 100.0, trades[0].Price)

	o, resting, found := b.GetOrder(buyID)
	require.True(t, found)
	assert.False(t, resting, "market residue must never be queued")
	assert.False(t, o.Filled)
	assert.Equal(t, 30, o.RemainingQty)

	_, resting, _ = b.GetOrder(sellID)
	assert.False(t, resting, "fully consumed resting order must leave the book")
	assert.Equal(t, 0, b.RestingCount())
	assert.Equal(t, 0, b.LevelCount(models.SideSell))
}

func TestAvgFillPrice(t *testing.T) {
	b := newTestBook()

	mustCreate(t, b, 10, 98, models.SideSell, models.TypeLimit)
	mustCreate(t, b, 20, 99, models.SideSell, models.TypeLimit)

	buyID := mustCreate(t, b, 30, 100, models.SideBuy, models.TypeLimit)

	o, _, found := b.GetOrder(buyID)
	require.True(t, found)
	assert.True(t, o.Filled)
	assert.InDelta(t, (10*98.0+20*99.0)/30.0, o.AvgFillPrice, 0.001)

	trades := b.TradeHistory()
	require.Len(t, trades, 2)
	assert.Equal(t, 98.0, trades[0].Price)
	assert.Equal(t, 99.0, trades[1].Price)
}

func TestCancelUnknownID(t *testing.T) {
	b := newTestBook()
	mustCreate(t, b, 10, 100, models.SideBuy, models.TypeLimit)
	eventsBefore := len(b.OrderHistory())

	id, code := b.CancelOrder("zzz")

	assert.Equal(t, models.CodeBadID, code)
	assert.Equal(t, "", id)
	assert.Equal(t, 1, b.RestingCount())
	assert.Len(t, b.OrderHistory(), eventsBefore, "failed cancel must not append history")
}

func TestCancelRoundTrip(t *testing.T) {
	b := newTestBook()

	id := mustCreate(t, b, 10, 100, models.SideBuy, models.TypeLimit)
	gotID, code := b.CancelOrder(id)

	assert.Equal(t, models.CodeOK, code)
	assert.Equal(t, id, gotID)
	assert.Equal(t, 0, b.RestingCount())
	assert.Equal(t, 0, b.LevelCount(models.SideBuy), "last order out must remove its price level")

	_, resting, found := b.GetOrder(id)
	assert.True(t, found, "cancelled order stays in history")
	assert.False(t, resting)

	events := b.OrderHistory()
	require.Len(t, events, 2)
	assert.Equal(t, models.EventCreate, events[0].Type)
	assert.Equal(t, models.EventCancel, events[1].Type)

	// Terminal: the id is gone from the index for good.
	_, code = b.CancelOrder(id)
	assert.Equal(t, models.CodeBadID, code)
}

func TestModifyUnknownID(t *testing.T) {
	b := newTestBook()
	id, code := b.ModifyOrder("zzz", 10, 100)
	assert.Equal(t, models.CodeBadID, code)
	assert.Equal(t, "", id)
}

func TestModifyValidation(t *testing.T) {
	b := newTestBook()
	id := mustCreate(t, b, 10, 100, models.SideBuy, models.TypeLimit)

	_, code := b.ModifyOrder(id, 0, 100)
	assert.Equal(t, models.CodeBadQty, code)

	_, code = b.ModifyOrder(id, 10, -1)
	assert.Equal(t, models.CodeBadPrice, code)

	o, _, _ := b.GetOrder(id)
	assert.Equal(t, 10, o.Qty, "failed modify must not mutate")
	assert.Equal(t, 100.0, o.Price)
}

func TestModifyPartiallyFilledRejected(t *testing.T) {
	b := newTestBook()

	sellID := mustCreate(t, b, 50, 100, models.SideSell, models.TypeLimit)
	mustCreate(t, b, 20, 100, models.SideBuy, models.TypeLimit)

	o, resting, _ := b.GetOrder(sellID)
	require.True(t, resting)
	require.Equal(t, 30, o.RemainingQty)

	id, code := b.ModifyOrder(sellID, 100, 100)
	assert.Equal(t, models.CodePartialFill, code)
	assert.Equal(t, "", id)

	o, resting, _ = b.GetOrder(sellID)
	assert.True(t, resting, "rejected modify must not disturb the order")
	assert.Equal(t, 30, o.RemainingQty)
	assert.Equal(t, 50, o.Qty)
}

func TestModifySamePriceKeepsPriority(t *testing.T) {
	b := newTestBook()

	first := mustCreate(t, b, 10, 100, models.SideBuy, models.TypeLimit)
	mustCreate(t, b, 10, 100, models.SideBuy, models.TypeLimit)

	_, code := b.ModifyOrder(first, 15, 100)
	require.Equal(t, models.CodeOK, code)

	mustCreate(t, b, 5, 100, models.SideSell, models.TypeLimit)

	trades := b.TradeHistory()
	require.Len(t, trades, 1)
	assert.Equal(t, first, trades[0].BuyOrderID, "same-price modify must keep FIFO position")
}

func TestModifyPriceChangeMovesToBack(t *testing.T) {
	b := newTestBook()

	moved := mustCreate(t, b, 10, 101, models.SideBuy, models.TypeLimit)
	incumbent := mustCreate(t, b, 10, 100, models.SideBuy, models.TypeLimit)

	_, code := b.ModifyOrder(moved, 10, 100)
	require.Equal(t, models.CodeOK, code)
	assert.Equal(t, 1, b.LevelCount(models.SideBuy), "old price level must be erased")

	mustCreate(t, b, 10, 100, models.SideSell, models.TypeLimit)

	trades := b.TradeHistory()
	require.Len(t, trades, 1)
	assert.Equal(t, incumbent, trades[0].BuyOrderID, "repriced order joins the back of the new level")
}

func TestModifiedOrderCompetesAfresh(t *testing.T) {
	b := newTestBook()

	buyID := mustCreate(t, b, 10, 99, models.SideBuy, models.TypeLimit)
	sellID := mustCreate(t, b, 10, 100, models.SideSell, models.TypeLimit)
	require.Empty(t, b.TradeHistory())

	_, code := b.ModifyOrder(buyID, 10, 100)
	require.Equal(t, models.CodeOK, code)

	trades := b.TradeHistory()
	require.Len(t, trades, 1)
	assert.Equal(t, buyID, trades[0].BuyOrderID)
	assert.Equal(t, sellID, trades[0].SellOrderID)
	assert.Equal(t, 100.0, trades[0].Price)
	assert.Equal(t, 0, b.RestingCount(), "both sides fully consumed")
}

func TestFOKInsufficientLiquidity(t *testing.T) {
	b := newTestBook()

	sellID := mustCreate(t, b, 30, 100, models.SideSell, models.TypeLimit)
	fokID := mustCreate(t, b, 80, 1, models.SideBuy, models.TypeFOK)

	assert.Empty(t, b.TradeHistory(), "fill-or-kill trades nothing when it cannot fill completely")

	o, resting, _ := b.GetOrder(fokID)
	assert.False(t, resting)
	assert.Equal(t, 80, o.RemainingQty)

	o, resting, _ = b.GetOrder(sellID)
	assert.True(t, resting, "resting liquidity must be untouched")
	assert.Equal(t, 30, o.RemainingQty)
}

func TestFOKFullFill(t *testing.T) {
	b := newTestBook()

	mustCreate(t, b, 30, 100, models.SideSell, models.TypeLimit)
	mustCreate(t, b, 50, 101, models.SideSell, models.TypeLimit)

	fokID := mustCreate(t, b, 80, 1, models.SideBuy, models.TypeFOK)

	o, resting, _ := b.GetOrder(fokID)
	assert.True(t, o.Filled)
	assert.False(t, resting)
	assert.Len(t, b.TradeHistory(), 2)
	assert.Equal(t, 0, b.RestingCount())
}

func TestIOCMatchesThenDiscards(t *testing.T) {
	b := newTestBook()

	mustCreate(t, b, 30, 100, models.SideSell, models.TypeLimit)
	iocID := mustCreate(t, b, 80, 1, models.SideBuy, models.TypeIOC)

	trades := b.TradeHistory()
	require.Len(t, trades, 1)
	assert.Equal(t, 30, trades[0].Qty)

	o, resting, _ := b.GetOrder(iocID)
	assert.False(t, resting, "immediate-or-cancel remainder must be discarded")
	assert.False(t, o.Filled)
	assert.Equal(t, 50, o.RemainingQty)
}

func TestStopBehavesAsLimit(t *testing.T) {
	b := newTestBook()

	stopID := mustCreate(t, b, 10, 99, models.SideBuy, models.TypeStop)
	_, resting, _ := b.GetOrder(stopID)
	assert.True(t, resting, "stop orders enter the book like limit orders")

	mustCreate(t, b, 10, 99, models.SideSell, models.TypeLimit)

	trades := b.TradeHistory()
	require.Len(t, trades, 1)
	assert.Equal(t, stopID, trades[0].BuyOrderID)
}

func TestSellAggressorWalksBuysBestFirst(t *testing.T) {
	b := newTestBook()

	low := mustCreate(t, b, 10, 99, models.SideBuy, models.TypeLimit)
	high := mustCreate(t, b, 10, 101, models.SideBuy, models.TypeLimit)

	mustCreate(t, b, 15, 99, models.SideSell, models.TypeLimit)

	trades := b.TradeHistory()
	require.Len(t, trades, 2)
	assert.Equal(t, high, trades[0].BuyOrderID, "highest bid fills first for a sell aggressor")
	assert.Equal(t, 101.0, trades[0].Price)
	assert.Equal(t, low, trades[1].BuyOrderID)
	assert.Equal(t, 99.0, trades[1].Price)
	assert.Equal(t, 5, trades[1].Qty)
}

func TestSnapshotAggregatesLevels(t *testing.T) {
	b := newTestBook()

	mustCreate(t, b, 10, 100, models.SideBuy, models.TypeLimit)
	mustCreate(t, b, 5, 100, models.SideBuy, models.TypeLimit)
	mustCreate(t, b, 7, 98, models.SideBuy, models.TypeLimit)
	mustCreate(t, b, 3, 105, models.SideSell, models.TypeLimit)
	mustCreate(t, b, 4, 103, models.SideSell, models.TypeLimit)

	snap := b.Snapshot()
	require.Len(t, snap.Bids, 2)
	require.Len(t, snap.Asks, 2)

	assert.Equal(t, models.OrderBookEntry{Price: 100, Quantity: 15}, snap.Bids[0])
	assert.Equal(t, models.OrderBookEntry{Price: 98, Quantity: 7}, snap.Bids[1])
	assert.Equal(t, models.OrderBookEntry{Price: 103, Quantity: 4}, snap.Asks[0])
	assert.Equal(t, models.OrderBookEntry{Price: 105, Quantity: 3}, snap.Asks[1])
}

func TestPartialFillKeepsRestingOrder(t *testing.T) {
	b := newTestBook()

	sellID := mustCreate(t, b, 50, 100, models.SideSell, models.TypeLimit)
	mustCreate(t, b, 20, 100, models.SideBuy, models.TypeLimit)

	o, resting, _ := b.GetOrder(sellID)
	assert.True(t, resting)
	assert.Equal(t, 30, o.RemainingQty)
	assert.False(t, o.Filled)
	assert.InDelta(t, 100.0, o.AvgFillPrice, 0.001)
	assert.Equal(t, 1, b.RestingCount())
}
