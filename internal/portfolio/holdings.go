package portfolio

import (
	"sort"

	"tradeledger/internal/models"
)

// ComputeHoldings reduces the trade list into current per-symbol positions and
// values them against the given price snapshot. A symbol missing from the
// snapshot is valued at 0. Symbols whose net quantity is not strictly positive
// are dropped from the result.
//
// Average buy price is gross: sells reduce the tracked quantity but never the
// accumulated buy cost, so total_invested after a partial sell still reflects
// the full cost of all buys for that symbol.
func ComputeHoldings(trades []models.Trade, prices map[string]float64) []models.Holding {
	type acc struct {
		symbol   string
		name     string
		quantity float64
		cost     float64
	}
	bucket := make(map[string]*acc)

	for _, t := range trades {
		a := bucket[t.Symbol]
		if a == nil {
			a = &acc{symbol: t.Symbol, name: t.Name}
			bucket[t.Symbol] = a
		}
		switch t.Side {
		case models.SideBuy:
			a.quantity += t.Quantity
			a.cost += t.Quantity * t.Price
		case models.SideSell:
			a.quantity -= t.Quantity
		}
	}

	holdings := make([]models.Holding, 0, len(bucket))
	for _, a := range bucket {
		if a.quantity <= 0 {
			continue
		}

		currentPrice := prices[a.symbol]
		currentValue := a.quantity * currentPrice
		unrealized := currentValue - a.cost
		pct := 0.0
		if a.cost > 0 {
			pct = (unrealized / a.cost) * 100
		}

		holdings = append(holdings, models.Holding{
			Symbol:               a.symbol,
			Name:                 a.name,
			Quantity:             a.quantity,
			AvgBuyPrice:          a.cost / a.quantity,
			CurrentPrice:         currentPrice,
			TotalInvested:        a.cost,
			CurrentValue:         currentValue,
			UnrealizedPnL:        unrealized,
			UnrealizedPnLPercent: pct,
		})
	}

	sort.Slice(holdings, func(i, j int) bool { return holdings[i].Symbol < holdings[j].Symbol })
	return holdings
}
