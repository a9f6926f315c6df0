package portfolio

import "tradeledger/internal/models"

// Summarize folds a holdings set plus a realized P&L figure into portfolio
// totals. The realized figure is passed through unchanged.
func Summarize(holdings []models.Holding, realizedPnL float64) models.PortfolioSummary {
	var invested, value float64
	for _, h := range holdings {
		invested += h.TotalInvested
		value += h.CurrentValue
	}

	unrealized := value - invested
	pct := 0.0
	if invested > 0 {
		pct = (unrealized / invested) * 100
	}

	return models.PortfolioSummary{
		TotalInvested:        invested,
		CurrentValue:         value,
		UnrealizedPnL:        unrealized,
		UnrealizedPnLPercent: pct,
		RealizedPnL:          realizedPnL,
	}
}
