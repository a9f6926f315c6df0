package prices

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"tradeledger/internal/metrics"
)

// Refresher keeps a snapshot of current prices for a tracked symbol set.
// Fetches run sequentially with a fixed inter-call delay so external rate
// limits are respected; one symbol failing never aborts the batch, it just
// keeps its previous price (or stays absent).
type Refresher struct {
	quoter Quoter
	delay  time.Duration
	met    *metrics.Metrics

	mu      sync.RWMutex
	symbols map[string]struct{}
	prices  map[string]float64
}

func NewRefresher(quoter Quoter, delay time.Duration, met *metrics.Metrics) *Refresher {
	return &Refresher{
		quoter:  quoter,
		delay:   delay,
		met:     met,
		symbols: make(map[string]struct{}),
		prices:  make(map[string]float64),
	}
}

// Track adds symbols to the refresh set.
func (r *Refresher) Track(symbols ...string) {
	r.mu.Lock()
	for _, s := range symbols {
		if s != "" {
			r.symbols[s] = struct{}{}
		}
	}
	n := len(r.symbols)
	r.mu.Unlock()
	r.met.TrackedSymbols.Set(float64(n))
}

// Snapshot returns a copy of the current price map. Callers own the copy;
// the refresher never hands out its internal state.
func (r *Refresher) Snapshot() map[string]float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cp := make(map[string]float64, len(r.prices))
	for k, v := range r.prices {
		cp[k] = v
	}
	return cp
}

// RefreshAll fetches every tracked symbol once, pacing calls by the
// configured delay.
func (r *Refresher) RefreshAll(ctx context.Context) {
	r.mu.RLock()
	symbols := make([]string, 0, len(r.symbols))
	for s := range r.symbols {
		symbols = append(symbols, s)
	}
	r.mu.RUnlock()
	sort.Strings(symbols)

	for i, sym := range symbols {
		if i > 0 && r.delay > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(r.delay):
			}
		}

		start := time.Now()
		price, err := r.quoter.Quote(ctx, sym)
		r.met.PriceFetchDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			r.met.PriceFetchErrors.Inc()
			log.Printf("price fetch failed for %s: %v", sym, err)
			continue
		}

		r.mu.Lock()
		r.prices[sym] = price
		r.mu.Unlock()
	}
}

// Start refreshes on the given interval until ctx is cancelled. The first
// refresh runs immediately.
func (r *Refresher) Start(ctx context.Context, interval time.Duration) (cancel func()) {
	ctx, cancel = context.WithCancel(ctx)

	go func() {
		r.RefreshAll(ctx)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				r.RefreshAll(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()

	return cancel
}
