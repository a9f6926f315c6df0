package handlers

import (
	"github.com/gin-gonic/gin"

	"tradeledger/internal/metrics"
	"tradeledger/internal/store"
)

// PriceSource supplies the current price snapshot and accepts new symbols to
// track. Satisfied by prices.Refresher.
type PriceSource interface {
	Snapshot() map[string]float64
	Track(symbols ...string)
}

// Handler wires the trade store, price source and accounting engine to HTTP.
type Handler struct {
	store     store.TradeStore
	prices    PriceSource
	processor *TradeProcessor
	met       *metrics.Metrics
}

func New(st store.TradeStore, ps PriceSource, tp *TradeProcessor, met *metrics.Metrics) *Handler {
	return &Handler{store: st, prices: ps, processor: tp, met: met}
}

// RegisterRoutes mounts all endpoints on the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.POST("/trades", h.CreateTrade)
		api.GET("/trades", h.ListTrades)
		api.DELETE("/trades/:id", h.DeleteTrade)
		api.GET("/holdings", h.GetHoldings)
		api.GET("/summary", h.GetSummary)
	}

	router.GET("/ws/portfolio", h.StreamPortfolio)
	router.GET("/metrics", gin.WrapH(h.met.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})
}
