package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradeledger/internal/models"
	"tradeledger/internal/portfolio"
)

// GetHoldings handles GET /api/holdings
func (h *Handler) GetHoldings(c *gin.Context) {
	trades, err := h.store.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trades"})
		return
	}

	holdings := portfolio.ComputeHoldings(trades, h.prices.Snapshot())
	c.JSON(http.StatusOK, gin.H{
		"holdings": holdings,
		"count":    len(holdings),
	})
}

// GetSummary handles GET /api/summary
func (h *Handler) GetSummary(c *gin.Context) {
	trades, err := h.store.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trades"})
		return
	}

	resp := h.buildPortfolio(trades)
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) buildPortfolio(trades []models.Trade) models.PortfolioResponse {
	holdings := portfolio.ComputeHoldings(trades, h.prices.Snapshot())
	realized := portfolio.ComputeRealizedPnL(trades)
	return models.PortfolioResponse{
		Summary:  portfolio.Summarize(holdings, realized),
		Holdings: holdings,
	}
}
