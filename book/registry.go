package book

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/tzabcoder/OrderBookSimulator/utils"
)

var log = logrus.New()

// Registry maps instrument symbol to its OrderBook. Books are created on
// first use and share one id generator and journal. Requests for one symbol
// serialize on that book's own lock; the registry lock only guards the map.
type Registry struct {
	mu      sync.RWMutex
	books   map[string]*OrderBook
	ids     *utils.IDGenerator
	journal Journal
}

func NewRegistry(ids *utils.IDGenerator, journal Journal) *Registry {
	if ids == nil {
		ids = utils.DefaultIDGenerator()
	}
	return &Registry{
		books:   make(map[string]*OrderBook),
		ids:     ids,
		journal: journal,
	}
}

// GetOrCreate returns the book for the symbol, creating it on first use.
func (r *Registry) GetOrCreate(symbol string) *OrderBook {
	r.mu.RLock()
	b, ok := r.books[symbol]
	r.mu.RUnlock()
	if ok {
		return b
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.books[symbol]; ok {
		return b
	}
	log.WithField("symbol", symbol).Info("creating order book")
	b = New(symbol, r.ids, r.journal)
	r.books[symbol] = b
	return b
}

// Get returns the book for the symbol if one exists.
func (r *Registry) Get(symbol string) (*OrderBook, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.books[symbol]
	return b, ok
}

// Symbols lists every symbol with a live book.
func (r *Registry) Symbols() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	symbols := make([]string, 0, len(r.books))
	for s := range r.books {
		symbols = append(symbols, s)
	}
	return symbols
}
