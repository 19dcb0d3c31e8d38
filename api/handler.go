package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"api_orders/internal/catalog"
	"api_orders/internal/orders"
	"api_orders/internal/userclient"
)

// orderHandler holds the order service and implements HTTP handlers for order
// operations.
type orderHandler struct {
	orderService *orders.Service
	catalog      *catalog.Store
	ledger       *orders.Ledger
	logger       *zap.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orderService *orders.Service, store *catalog.Store, ledger *orders.Ledger, logger *zap.Logger) *orderHandler {
	return &orderHandler{
		orderService: orderService,
		catalog:      store,
		ledger:       ledger,
		logger:       logger,
	}
}

type placeOrderReq struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
	UserID    int64 `json:"user_id"`
}

// handlePlaceOrder handles the POST /orders endpoint.
func (h *orderHandler) handlePlaceOrder(ctx *gin.Context) {
	var req placeOrderReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	order, err := h.orderService.PlaceOrder(ctx.Request.Context(), orders.PlaceOrderInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		UserID:    req.UserID,
	})
	if err != nil {
		h.logger.Warn("failed to place order",
			zap.Int64("user_id", req.UserID),
			zap.Int64("product_id", req.ProductID),
			zap.Error(err))
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, order)
}

// statusFor maps placement failures to HTTP statuses. ErrOrderNotFulfilled is
// checked first: it wraps an insufficient-stock error but is a server-side
// inconsistency, not a client error.
func statusFor(err error) int {
	var stockErr *catalog.InsufficientStockError
	var balanceErr *orders.InsufficientBalanceError
	switch {
	case errors.Is(err, orders.ErrOrderNotFulfilled):
		return http.StatusInternalServerError
	case errors.Is(err, orders.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, userclient.ErrUserNotFound):
		return http.StatusNotFound
	case errors.As(err, &stockErr), errors.As(err, &balanceErr):
		return http.StatusBadRequest
	case errors.Is(err, orders.ErrPaymentFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// handleListOrders handles GET /orders, optionally filtered by user_id.
func (h *orderHandler) handleListOrders(ctx *gin.Context) {
	if raw := ctx.Query("user_id"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id filter"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"orders": h.ledger.ListByUser(userID)})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"orders": h.ledger.ListAll()})
}

// handleGetOrder handles GET /orders/:id.
func (h *orderHandler) handleGetOrder(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	order, err := h.ledger.Get(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	ctx.JSON(http.StatusOK, order)
}

// handleListProducts handles GET /products.
func (h *orderHandler) handleListProducts(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"products": h.catalog.List()})
}
