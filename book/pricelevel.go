package book

import (
	"github.com/google/btree"

	"github.com/tzabcoder/OrderBookSimulator/models"
)

// priceLevel is the FIFO group of resting orders sharing one exact price on
// one side of the book. Arrival order is time priority.
type priceLevel struct {
	price  float64
	orders []*models.Order
}

func lessByPrice(a, b *priceLevel) bool { return a.price < b.price }

func newLevelTree() *btree.BTreeG[*priceLevel] {
	return btree.NewG(8, lessByPrice)
}

func (l *priceLevel) add(o *models.Order) {
	l.orders = append(l.orders, o)
}

// remove drops the order with the given id, preserving FIFO order of the
// remaining entries.
func (l *priceLevel) remove(id string) bool {
	for i, o := range l.orders {
		if o.ID == id {
			l.orders = append(l.orders[:i], l.orders[i+1:]...)
			return true
		}
	}
	return false
}

func (l *priceLevel) volume() int {
	total := 0
	for _, o := range l.orders {
		total += o.RemainingQty
	}
	return total
}

func (l *priceLevel) empty() bool {
	return len(l.orders) == 0
}
