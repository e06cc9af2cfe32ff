package book

import (
	"sync"

	"github.com/google/btree"

	"github.com/tzabcoder/OrderBookSimulator/models"
	"github.com/tzabcoder/OrderBookSimulator/utils"
)

// noOrderID is the order id returned on every failed request.
const noOrderID = ""

// Journal receives every order event and trade as it is appended to the
// in-memory history. Calls happen while the book lock is held, so
// implementations must hand work off instead of blocking.
type Journal interface {
	RecordEvent(models.OrderEvent)
	RecordTrade(models.Trade)
}

// OrderBook owns all resting orders for one instrument. Every mutating call
// takes the book mutex for its full duration, including the matching pass, so
// events against one book apply in a strict total order. Books for different
// symbols are independent.
type OrderBook struct {
	symbol string

	mu    sync.Mutex
	buys  *btree.BTreeG[*priceLevel]
	sells *btree.BTreeG[*priceLevel]

	// index holds resting orders only; every order in a price level has
	// exactly one index entry and vice versa. orders holds every order ever
	// created for status reporting and is never pruned.
	index  map[string]*models.Order
	orders map[string]*models.Order

	orderHistory []models.OrderEvent
	tradeHistory []models.Trade

	ids     *utils.IDGenerator
	journal Journal
}

func New(symbol string, ids *utils.IDGenerator, journal Journal) *OrderBook {
	if ids == nil {
		ids = utils.DefaultIDGenerator()
	}
	return &OrderBook{
		symbol:  symbol,
		buys:    newLevelTree(),
		sells:   newLevelTree(),
		index:   make(map[string]*models.Order),
		orders:  make(map[string]*models.Order),
		ids:     ids,
		journal: journal,
	}
}

func (b *OrderBook) Symbol() string { return b.symbol }

// CreateOrder validates the parameters, constructs the order and runs it
// through matching as the aggressor. A failed validation leaves the book
// untouched and returns the empty sentinel id. Market, FOK and IOC orders
// must still carry a syntactically positive placeholder price.
func (b *OrderBook) CreateOrder(qty int, price float64, side models.Side, typ models.OrderType) (string, models.ErrorCode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case qty <= 0:
		return noOrderID, models.CodeBadQty
	case price <= 0:
		return noOrderID, models.CodeBadPrice
	case !models.ValidSide(side):
		return noOrderID, models.CodeBadSide
	case !models.ValidOrderType(typ):
		return noOrderID, models.CodeBadType
	}

	o := &models.Order{
		ID:           b.ids.NextID(),
		Symbol:       b.symbol,
		Side:         side,
		Type:         typ,
		Price:        price,
		Qty:          qty,
		RemainingQty: qty,
		CreatedAt:    b.ids.NowMillis(),
	}
	b.orders[o.ID] = o

	b.logEvent(models.EventCreate, o)
	b.match(o, false)

	return o.ID, models.CodeOK
}

// ModifyOrder mutates a resting order in place. Orders with any fill progress
// are rejected with PARTIAL_FILL; their priority and remaining size must not
// be disturbed. A price change on a price-bearing order moves it to the back
// of the new level's queue; the same price keeps its FIFO slot. The modified
// order then competes afresh as an aggressor.
func (b *OrderBook) ModifyOrder(orderID string, qty int, price float64) (string, models.ErrorCode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	o, ok := b.index[orderID]
	if !ok {
		return noOrderID, models.CodeBadID
	}
	if !o.Unexecuted() {
		return noOrderID, models.CodePartialFill
	}
	if qty <= 0 {
		return noOrderID, models.CodeBadQty
	}
	if price <= 0 {
		return noOrderID, models.CodeBadPrice
	}

	o.Qty = qty
	o.RemainingQty = qty

	if o.Type.PriceBearing() && o.Price != price {
		b.unlink(o)
		o.Price = price
		b.link(o)
	}

	b.logEvent(models.EventModify, o)
	b.match(o, true)

	return orderID, models.CodeOK
}

// CancelOrder removes a resting order from its price level and the index.
// Cancellation never triggers matching.
func (b *OrderBook) CancelOrder(orderID string) (string, models.ErrorCode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	o, ok := b.index[orderID]
	if !ok {
		return noOrderID, models.CodeBadID
	}

	b.unlink(o)
	delete(b.index, orderID)
	b.logEvent(models.EventCancel, o)

	return orderID, models.CodeOK
}

// GetOrder returns a copy of any order this book has ever seen, along with
// whether it is currently resting.
func (b *OrderBook) GetOrder(orderID string) (models.Order, bool, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	o, ok := b.orders[orderID]
	if !ok {
		return models.Order{}, false, false
	}
	_, resting := b.index[orderID]
	return *o, resting, true
}

// OrderHistory returns a copy of the append-only order event log.
func (b *OrderBook) OrderHistory() []models.OrderEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.OrderEvent(nil), b.orderHistory...)
}

// TradeHistory returns a copy of the append-only trade log.
func (b *OrderBook) TradeHistory() []models.Trade {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Trade(nil), b.tradeHistory...)
}

// RestingCount is the number of orders currently in the book.
func (b *OrderBook) RestingCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.index)
}

// LevelCount is the number of populated price levels on one side.
func (b *OrderBook) LevelCount(side models.Side) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sideTree(side).Len()
}

func (b *OrderBook) sideTree(side models.Side) *btree.BTreeG[*priceLevel] {
	if side == models.SideBuy {
		return b.buys
	}
	return b.sells
}

// link appends the order to its side's level at o.Price, creating the level
// if none exists, and records it in the resting index.
func (b *OrderBook) link(o *models.Order) {
	tree := b.sideTree(o.Side)
	level, ok := tree.Get(&priceLevel{price: o.Price})
	if !ok {
		level = &priceLevel{price: o.Price}
		tree.ReplaceOrInsert(level)
	}
	level.add(o)
	b.index[o.ID] = o
}

// unlink removes the order from its price level, dropping the level when it
// becomes empty. The index entry is left to the caller.
func (b *OrderBook) unlink(o *models.Order) {
	tree := b.sideTree(o.Side)
	level, ok := tree.Get(&priceLevel{price: o.Price})
	if !ok {
		return
	}
	level.remove(o.ID)
	if level.empty() {
		tree.Delete(level)
	}
}

func (b *OrderBook) logEvent(typ models.EventType, o *models.Order) {
	ev := models.OrderEvent{Type: typ, Order: *o, At: b.ids.NowMillis()}
	b.orderHistory = append(b.orderHistory, ev)
	if b.journal != nil {
		b.journal.RecordEvent(ev)
	}
}

func (b *OrderBook) logTrade(t models.Trade) {
	b.tradeHistory = append(b.tradeHistory, t)
	if b.journal != nil {
		b.journal.RecordTrade(t)
	}
}
