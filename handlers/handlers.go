package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/tzabcoder/OrderBookSimulator/models"
	"github.com/tzabcoder/OrderBookSimulator/service"
	"github.com/tzabcoder/OrderBookSimulator/utils"
)

type OrderHandler struct {
	Service   *service.OrderService
	Validator *validator.Validate
}

func NewOrderHandler(s *service.OrderService) *OrderHandler {
	return &OrderHandler{
		Service:   s,
		Validator: utils.GetValidator(),
	}
}

// statusForCode maps core error codes to HTTP statuses. BAD_REQUEST is the
// transport's own code for structurally broken requests.
func statusForCode(code models.ErrorCode) int {
	switch code {
	case models.CodeOK:
		return http.StatusOK
	case models.CodeBadID:
		return http.StatusNotFound
	case models.CodePartialFill:
		return http.StatusConflict
	case models.CodeFatal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, models.OrderResponse{
		Code:    models.CodeBadRequest,
		Message: "invalid request body",
	})
}

// POST /orders
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req models.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		badRequest(c)
		return
	}

	resp := h.Service.PlaceOrder(c.Request.Context(), &req)
	c.JSON(statusForCode(resp.Code), resp)
}

// PUT /orders/:id
func (h *OrderHandler) ModifyOrder(c *gin.Context) {
	var req models.ModifyOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		badRequest(c)
		return
	}

	resp := h.Service.ModifyOrder(c.Request.Context(), c.Param("id"), &req)
	c.JSON(statusForCode(resp.Code), resp)
}

// DELETE /orders/:id?symbol=XYZ
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		badRequest(c)
		return
	}

	resp := h.Service.CancelOrder(c.Request.Context(), symbol, c.Param("id"))
	c.JSON(statusForCode(resp.Code), resp)
}

// GET /orders/:id?symbol=XYZ
func (h *OrderHandler) GetOrderStatus(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		badRequest(c)
		return
	}

	resp, code := h.Service.GetOrderStatus(c.Request.Context(), symbol, c.Param("id"))
	if code != models.CodeOK {
		c.JSON(statusForCode(code), models.OrderResponse{Code: code, Message: "order not found"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /orderbook?symbol=XYZ
func (h *OrderHandler) GetOrderBook(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		badRequest(c)
		return
	}

	c.JSON(http.StatusOK, h.Service.GetOrderBook(c.Request.Context(), symbol))
}

// GET /trades?symbol=XYZ
func (h *OrderHandler) ListTrades(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		badRequest(c)
		return
	}

	trades, err := h.Service.ListTrades(c.Request.Context(), symbol)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, trades)
}

// GET /orders?symbol=XYZ
func (h *OrderHandler) ListOrderEvents(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		badRequest(c)
		return
	}

	events, err := h.Service.ListOrderEvents(c.Request.Context(), symbol)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, events)
}
