package portfolio

import (
	"sort"

	"tradeledger/internal/models"
)

// lot is an open buy quantity at a specific price, queued for FIFO matching.
type lot struct {
	remaining float64
	price     float64
}

// ComputeRealizedPnL replays each symbol's trades in date order and matches
// every sell against the oldest open buy lots, first-in-first-out. Trades
// sharing a date keep their relative input order; the matching result depends
// on that tie-break. Sell quantity beyond all recorded buys is dropped from
// matching and contributes nothing.
func ComputeRealizedPnL(trades []models.Trade) float64 {
	bySymbol := make(map[string][]models.Trade)
	for _, t := range trades {
		bySymbol[t.Symbol] = append(bySymbol[t.Symbol], t)
	}

	var total float64

	for _, group := range bySymbol {
		sort.SliceStable(group, func(i, j int) bool { return group[i].Date.Before(group[j].Date) })

		var queue []lot
		for _, t := range group {
			if t.Side == models.SideBuy {
				queue = append(queue, lot{remaining: t.Quantity, price: t.Price})
				continue
			}

			toSell := t.Quantity
			for toSell > 0 && len(queue) > 0 {
				front := &queue[0]
				matched := toSell
				if front.remaining < matched {
					matched = front.remaining
				}

				total += matched * (t.Price - front.price)

				front.remaining -= matched
				toSell -= matched
				if front.remaining <= 0 {
					queue = queue[1:]
				}
			}
		}
	}

	return total
}
