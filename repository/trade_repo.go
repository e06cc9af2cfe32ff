package repository

import (
	"context"

	"github.com/tzabcoder/OrderBookSimulator/db/postgres/providers"
	"github.com/tzabcoder/OrderBookSimulator/models"
)

type TradeRepository struct {
	DBHelper *providers.DBHelper
}

func NewTradeRepository(db *providers.DBHelper) *TradeRepository {
	return &TradeRepository{DBHelper: db}
}

// InsertTrade appends one trade to the journal.
func (r *TradeRepository) InsertTrade(ctx context.Context, trade *models.Trade) error {
	query := `
		INSERT INTO trades (trade_id, symbol, buy_order_id, sell_order_id, price, quantity, executed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.DBHelper.PostgresClient.ExecContext(ctx, query,
		trade.ID, trade.Symbol, trade.BuyOrderID, trade.SellOrderID,
		trade.Price, trade.Qty, trade.ExecutedAt,
	)
	return err
}

// ListTradesBySymbol fetches the journaled trades for a symbol in execution
// order.
func (r *TradeRepository) ListTradesBySymbol(ctx context.Context, symbol string) ([]models.Trade, error) {
	query := `
		SELECT trade_id, symbol, buy_order_id, sell_order_id, price, quantity, executed_at
		FROM trades
		WHERE symbol = $1
		ORDER BY id ASC`
	rows, err := r.DBHelper.PostgresClient.QueryContext(ctx, query, symbol)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		var t models.Trade
		if err := rows.Scan(&t.ID, &t.Symbol, &t.BuyOrderID, &t.SellOrderID, &t.Price, &t.Qty, &t.ExecutedAt); err != nil {
			return nil, err
		}
		trades = append(trades, t)
	}
	return trades, rows.Err()
}
