package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tzabcoder/OrderBookSimulator/models"
	"github.com/tzabcoder/OrderBookSimulator/repository"
)

// DBJournal mirrors the in-memory histories into Postgres. Record calls are
// made under a book's lock, so they only enqueue; a single consumer goroutine
// performs the inserts. The journal is best effort: a full queue drops the
// entry with a warning and never stalls matching.
type DBJournal struct {
	events chan models.OrderEvent
	trades chan models.Trade
	quit   chan struct{}
	done   chan struct{}

	eventRepo *repository.EventRepository
	tradeRepo *repository.TradeRepository
}

const journalQueueDepth = 1024

func NewDBJournal(eventRepo *repository.EventRepository, tradeRepo *repository.TradeRepository) *DBJournal {
	j := &DBJournal{
		events:    make(chan models.OrderEvent, journalQueueDepth),
		trades:    make(chan models.Trade, journalQueueDepth),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
		eventRepo: eventRepo,
		tradeRepo: tradeRepo,
	}
	go j.run()
	return j
}

func (j *DBJournal) RecordEvent(ev models.OrderEvent) {
	select {
	case j.events <- ev:
	default:
		log.WithField("order_id", ev.Order.ID).Warn("journal queue full, dropping order event")
	}
}

func (j *DBJournal) RecordTrade(t models.Trade) {
	select {
	case j.trades <- t:
	default:
		log.WithField("trade_id", t.ID).Warn("journal queue full, dropping trade")
	}
}

// Close stops the consumer after draining whatever is already queued.
func (j *DBJournal) Close() {
	close(j.quit)
	<-j.done
}

func (j *DBJournal) run() {
	defer close(j.done)
	for {
		select {
		case ev := <-j.events:
			j.writeEvent(ev)
		case t := <-j.trades:
			j.writeTrade(t)
		case <-j.quit:
			for {
				select {
				case ev := <-j.events:
					j.writeEvent(ev)
				case t := <-j.trades:
					j.writeTrade(t)
				default:
					return
				}
			}
		}
	}
}

func (j *DBJournal) writeEvent(ev models.OrderEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := j.eventRepo.InsertEvent(ctx, &ev); err != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"order_id": ev.Order.ID,
			"type":     ev.Type,
		}).Error("failed to journal order event")
	}
}

func (j *DBJournal) writeTrade(t models.Trade) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := j.tradeRepo.InsertTrade(ctx, &t); err != nil {
		log.WithError(err).WithField("trade_id", t.ID).Error("failed to journal trade")
	}
}
