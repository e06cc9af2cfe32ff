package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tzabcoder/OrderBookSimulator/handlers"
	"github.com/tzabcoder/OrderBookSimulator/service"
)

func RegisterRoutes(router *gin.Engine, service *service.OrderService) {
	orderHandler := handlers.NewOrderHandler(service)

	api := router.Group("/api")
	{
		api.POST("/orders", orderHandler.PlaceOrder)
		api.PUT("/orders/:id", orderHandler.ModifyOrder)
		api.DELETE("/orders/:id", orderHandler.CancelOrder)
		api.GET("/orders/:id", orderHandler.GetOrderStatus)
		api.GET("/orders", orderHandler.ListOrderEvents)
		api.GET("/orderbook", orderHandler.GetOrderBook)
		api.GET("/trades", orderHandler.ListTrades)
	}
}
