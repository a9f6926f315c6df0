package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tradeledger/internal/models"
	"tradeledger/internal/store"
)

// CreateTrade handles POST /api/trades
func (h *Handler) CreateTrade(c *gin.Context) {
	var req models.TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	trade := models.Trade{
		ID:        uuid.NewString(),
		Symbol:    req.Symbol,
		Name:      req.Name,
		Side:      models.TradeSide(req.Side),
		Quantity:  req.Quantity,
		Price:     req.Price,
		Date:      date,
		CreatedAt: time.Now().UTC(),
	}

	result := h.processor.SubmitTrade(trade)
	if !result.Success {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error})
		return
	}

	h.met.TradesRecorded.Inc()
	h.prices.Track(trade.Symbol)

	c.JSON(http.StatusCreated, trade)
}

// ListTrades handles GET /api/trades
func (h *Handler) ListTrades(c *gin.Context) {
	trades, err := h.store.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trades"})
		return
	}

	// Newest first for display
	for i, j := 0, len(trades)-1; i < j; i, j = i+1, j-1 {
		trades[i], trades[j] = trades[j], trades[i]
	}

	c.JSON(http.StatusOK, gin.H{
		"trades": trades,
		"count":  len(trades),
	})
}

// DeleteTrade handles DELETE /api/trades/:id. Derived figures are recomputed
// from the remaining list on the next read, so no bookkeeping happens here.
func (h *Handler) DeleteTrade(c *gin.Context) {
	id := c.Param("id")

	err := h.store.Delete(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Trade not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete trade"})
		return
	}

	h.met.TradesDeleted.Inc()
	c.Status(http.StatusNoContent)
}
