package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"api_orders/api"
	"api_orders/internal/catalog"
	"api_orders/internal/config"
	"api_orders/internal/metrics"
	"api_orders/internal/orders"
	"api_orders/internal/userclient"
)

func main() {
	cfg := config.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	store := catalog.NewStore()
	store.Seed(defaultProducts())

	users := userclient.New(cfg.UserServiceURL, cfg.UserServiceTimeout)
	defer users.Close()

	r := gin.New()
	api.InitRoutes(r, api.Deps{
		Catalog: store,
		Ledger:  orders.NewLedger(),
		Users:   users,
		Metrics: metrics.NewRecorder(prometheus.NewRegistry()),
		Logger:  logger,
	})

	logger.Info("starting server",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("user_service_url", cfg.UserServiceURL))
	if err := r.Run(cfg.HTTPAddr); err != nil {
		panic(fmt.Errorf("error trying to start server: %v", err))
	}
}

func defaultProducts() []catalog.Product {
	return []catalog.Product{
		{ID: 1, Name: "Laptop", Price: decimal.NewFromFloat(999.99), Stock: 10, Category: "electronics"},
		{ID: 2, Name: "Smartphone", Price: decimal.NewFromFloat(599.99), Stock: 20, Category: "electronics"},
		{ID: 3, Name: "Headphones", Price: decimal.NewFromFloat(149.99), Stock: 50, Category: "accessories"},
		{ID: 4, Name: "Keyboard", Price: decimal.NewFromFloat(79.99), Stock: 30, Category: "accessories"},
	}
}
