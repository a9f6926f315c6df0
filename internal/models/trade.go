package models

import "time"

// TradeSide is the direction of a trade
type TradeSide string

const (
	SideBuy  TradeSide = "buy"
	SideSell TradeSide = "sell"
)

// Trade represents one buy/sell transaction in the ledger
type Trade struct {
	ID        string    `json:"id"`
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	Side      TradeSide `json:"side"`
	Quantity  float64   `json:"quantity"`
	Price     float64   `json:"price"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// Holding represents the current net position in one symbol
type Holding struct {
	Symbol               string  `json:"symbol"`
	Name                 string  `json:"name"`
	Quantity             float64 `json:"quantity"`
	AvgBuyPrice          float64 `json:"avg_buy_price"`
	CurrentPrice         float64 `json:"current_price"`
	TotalInvested        float64 `json:"total_invested"`
	CurrentValue         float64 `json:"current_value"`
	UnrealizedPnL        float64 `json:"unrealized_pnl"`
	UnrealizedPnLPercent float64 `json:"unrealized_pnl_percent"`
}

// PortfolioSummary aggregates holdings plus realized P&L into portfolio totals
type PortfolioSummary struct {
	TotalInvested        float64 `json:"total_invested"`
	CurrentValue         float64 `json:"current_value"`
	UnrealizedPnL        float64 `json:"unrealized_pnl"`
	UnrealizedPnLPercent float64 `json:"unrealized_pnl_percent"`
	RealizedPnL          float64 `json:"realized_pnl"`
}

// TradeRequest - what the client sends to record a trade
type TradeRequest struct {
	Symbol   string  `json:"symbol" binding:"required"`
	Name     string  `json:"name" binding:"required"`
	Side     string  `json:"side" binding:"required,oneof=buy sell"`
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
	Price    float64 `json:"price" binding:"required,gt=0"`
	Date     string  `json:"date" binding:"required,datetime=2006-01-02"`
}

// PortfolioResponse - what we send back for the portfolio view
type PortfolioResponse struct {
	Summary  PortfolioSummary `json:"summary"`
	Holdings []Holding        `json:"holdings"`
}
