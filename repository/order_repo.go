package repository

import (
	"context"

	"github.com/tzabcoder/OrderBookSimulator/db/postgres/providers"
	"github.com/tzabcoder/OrderBookSimulator/models"
)

type EventRepository struct {
	DBHelper *providers.DBHelper
}

func NewEventRepository(db *providers.DBHelper) *EventRepository {
	return &EventRepository{DBHelper: db}
}

// InsertEvent appends one order event to the journal.
func (r *EventRepository) InsertEvent(ctx context.Context, ev *models.OrderEvent) error {
	query := `
		INSERT INTO order_events (event_type, order_id, symbol, side, order_type, price, quantity, remaining_quantity, event_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.DBHelper.PostgresClient.ExecContext(ctx, query,
		ev.Type, ev.Order.ID, ev.Order.Symbol, ev.Order.Side, ev.Order.Type,
		ev.Order.Price, ev.Order.Qty, ev.Order.RemainingQty, ev.At,
	)
	return err
}

// ListEventsBySymbol fetches the journaled order events for a symbol in
// applied order.
func (r *EventRepository) ListEventsBySymbol(ctx context.Context, symbol string) ([]models.OrderEvent, error) {
	query := `
		SELECT event_type, order_id, symbol, side, order_type, price, quantity, remaining_quantity, event_at
		FROM order_events
		WHERE symbol = $1
		ORDER BY id ASC`
	rows, err := r.DBHelper.PostgresClient.QueryContext(ctx, query, symbol)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.OrderEvent
	for rows.Next() {
		var ev models.OrderEvent
		if err := rows.Scan(&ev.Type, &ev.Order.ID, &ev.Order.Symbol, &ev.Order.Side, &ev.Order.Type,
			&ev.Order.Price, &ev.Order.Qty, &ev.Order.RemainingQty, &ev.At); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
