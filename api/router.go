package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"api_orders/internal/catalog"
	"api_orders/internal/metrics"
	"api_orders/internal/orders"
	"api_orders/internal/userclient"
)

// Deps carries the collaborators InitRoutes wires together. Tests supply
// in-memory stores and a stub user service here.
type Deps struct {
	Catalog *catalog.Store
	Ledger  *orders.Ledger
	Users   userclient.UserService
	Metrics *metrics.Recorder
	Logger  *zap.Logger
}

// InitRoutes registers all order endpoints on the given Gin engine.
// It initializes the order service and handler from the injected
// dependencies, then binds each HTTP method and path to the appropriate
// handler function.
func InitRoutes(e *gin.Engine, d Deps) {
	orderService := orders.NewService(d.Catalog, d.Ledger, d.Users, d.Metrics, d.Logger)
	orderHandler := NewOrderHandler(orderService, d.Catalog, d.Ledger, d.Logger)

	e.Use(gin.Recovery(), RequestID(), RequestLogger(d.Logger), d.Metrics.Middleware())

	e.POST("/orders", orderHandler.handlePlaceOrder)
	e.GET("/orders", orderHandler.handleListOrders)
	e.GET("/orders/:id", orderHandler.handleGetOrder)
	e.GET("/products", orderHandler.handleListProducts)

	// Prometheus endpoint (scraped by Prometheus)
	e.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	e.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
}
