package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/tzabcoder/OrderBookSimulator/book"
	"github.com/tzabcoder/OrderBookSimulator/models"
	"github.com/tzabcoder/OrderBookSimulator/repository"
)

var log = logrus.New()

// OrderService routes requests to the per-symbol order books and shapes the
// core's (id, code) results into responses. Repos are nil when no journal
// database is configured; reporting then serves from the in-memory histories.
type OrderService struct {
	Registry  *book.Registry
	EventRepo *repository.EventRepository
	TradeRepo *repository.TradeRepository
}

func NewOrderService(registry *book.Registry, eventRepo *repository.EventRepository, tradeRepo *repository.TradeRepository) *OrderService {
	return &OrderService{
		Registry:  registry,
		EventRepo: eventRepo,
		TradeRepo: tradeRepo,
	}
}

var codeMessages = map[models.ErrorCode]string{
	models.CodeOK:          "request processed",
	models.CodeBadQty:      "order quantity must be positive",
	models.CodeBadPrice:    "order price must be positive",
	models.CodeBadSide:     "order side must be buy or sell",
	models.CodeBadType:     "unrecognized order type",
	models.CodeBadID:       "order not found",
	models.CodePartialFill: "order has fill progress and cannot be modified",
	models.CodeFatal:       "internal error",
}

func response(id string, code models.ErrorCode) *models.OrderResponse {
	return &models.OrderResponse{OrderID: id, Code: code, Message: codeMessages[code]}
}

// PlaceOrder creates an order on the symbol's book, creating the book on
// first use.
func (s *OrderService) PlaceOrder(ctx context.Context, req *models.PlaceOrderRequest) *models.OrderResponse {
	b := s.Registry.GetOrCreate(req.Symbol)
	id, code := b.CreateOrder(req.Quantity, req.Price, models.Side(req.Side), models.OrderType(req.Type))
	if code != models.CodeOK {
		log.WithFields(logrus.Fields{"symbol": req.Symbol, "code": code}).Debug("create rejected")
	}
	return response(id, code)
}

// ModifyOrder resizes and reprices an order on the symbol's book. An unknown
// symbol is indistinguishable from an unknown order id.
func (s *OrderService) ModifyOrder(ctx context.Context, orderID string, req *models.ModifyOrderRequest) *models.OrderResponse {
	b, ok := s.Registry.Get(req.Symbol)
	if !ok {
		return response("", models.CodeBadID)
	}
	id, code := b.ModifyOrder(orderID, req.Quantity, req.Price)
	return response(id, code)
}

// CancelOrder removes a resting order from the symbol's book.
func (s *OrderService) CancelOrder(ctx context.Context, symbol, orderID string) *models.OrderResponse {
	b, ok := s.Registry.Get(symbol)
	if !ok {
		return response("", models.CodeBadID)
	}
	id, code := b.CancelOrder(orderID)
	return response(id, code)
}

// GetOrderStatus reports fill progress for any order the symbol's book has
// seen, resting or not.
func (s *OrderService) GetOrderStatus(ctx context.Context, symbol, orderID string) (*models.OrderStatusResponse, models.ErrorCode) {
	b, ok := s.Registry.Get(symbol)
	if !ok {
		return nil, models.CodeBadID
	}
	o, resting, found := b.GetOrder(orderID)
	if !found {
		return nil, models.CodeBadID
	}
	return &models.OrderStatusResponse{
		OrderID:           o.ID,
		Symbol:            o.Symbol,
		Side:              o.Side,
		Type:              o.Type,
		Price:             o.Price,
		Filled:            o.Filled,
		Resting:           resting,
		ExecutedQuantity:  o.FilledQty,
		RemainingQuantity: o.RemainingQty,
		AvgFillPrice:      o.AvgFillPrice,
	}, models.CodeOK
}

// GetOrderBook returns the aggregated depth snapshot for a symbol. A symbol
// with no book yet snapshots as empty.
func (s *OrderService) GetOrderBook(ctx context.Context, symbol string) *models.OrderBookResponse {
	b, ok := s.Registry.Get(symbol)
	if !ok {
		return &models.OrderBookResponse{Symbol: symbol}
	}
	resp := b.Snapshot()
	return &resp
}

// ListTrades serves the trade history for a symbol, preferring the journal
// database when one is configured.
func (s *OrderService) ListTrades(ctx context.Context, symbol string) ([]models.Trade, error) {
	if s.TradeRepo != nil {
		return s.TradeRepo.ListTradesBySymbol(ctx, symbol)
	}
	if b, ok := s.Registry.Get(symbol); ok {
		return b.TradeHistory(), nil
	}
	return nil, nil
}

// ListOrderEvents serves the order event history for a symbol, preferring the
// journal database when one is configured.
func (s *OrderService) ListOrderEvents(ctx context.Context, symbol string) ([]models.OrderEvent, error) {
	if s.EventRepo != nil {
		return s.EventRepo.ListEventsBySymbol(ctx, symbol)
	}
	if b, ok := s.Registry.Get(symbol); ok {
		return b.OrderHistory(), nil
	}
	return nil, nil
}
