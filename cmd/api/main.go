package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"tradeledger/internal/config"
	"tradeledger/internal/handlers"
	"tradeledger/internal/metrics"
	"tradeledger/internal/prices"
	"tradeledger/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults or environment variables")
	}

	cfg := config.Load()

	st, err := store.Open(cfg)
	if err != nil {
		log.Fatal("Failed to open trade store:", err)
	}
	defer st.Close()
	log.Printf("trade store ready (backend=%s)", cfg.StoreBackend)

	met := metrics.New()

	quoter := prices.NewAlphaVantage(cfg.AlphaVantageAPIKey)
	refresher := prices.NewRefresher(quoter, cfg.PriceFetchDelay, met)

	// Seed the refresher with every symbol already in the ledger so prices
	// are available right after startup.
	if trades, err := st.List(context.Background()); err == nil {
		for _, t := range trades {
			refresher.Track(t.Symbol)
		}
	}

	stopRefresher := refresher.Start(context.Background(), cfg.PriceRefreshInterval)
	defer stopRefresher()

	processor := handlers.NewTradeProcessor(st, 4)
	processor.Start()
	defer processor.Stop()

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	handlers.New(st, refresher, processor, met).RegisterRoutes(router)

	log.Println("Server starting on", cfg.HTTPAddr)
	if err := router.Run(cfg.HTTPAddr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
