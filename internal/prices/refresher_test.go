package prices

import (
	"context"
	"errors"
	"testing"

	"tradeledger/internal/metrics"
)

type stubQuoter struct {
	prices map[string]float64
	calls  []string
}

func (q *stubQuoter) Quote(_ context.Context, symbol string) (float64, error) {
	q.calls = append(q.calls, symbol)
	p, ok := q.prices[symbol]
	if !ok {
		return 0, errors.New("no quote")
	}
	return p, nil
}

func TestRefreshAll_PopulatesSnapshot(t *testing.T) {
	q := &stubQuoter{prices: map[string]float64{"AAPL": 150, "MSFT": 380}}
	r := NewRefresher(q, 0, metrics.New())
	r.Track("AAPL", "MSFT")

	r.RefreshAll(context.Background())

	snap := r.Snapshot()
	if snap["AAPL"] != 150 || snap["MSFT"] != 380 {
		t.Errorf("Expected snapshot with both prices, got %v", snap)
	}
}

func TestRefreshAll_OneFailureDoesNotAbortBatch(t *testing.T) {
	q := &stubQuoter{prices: map[string]float64{"MSFT": 380}}
	r := NewRefresher(q, 0, metrics.New())
	r.Track("AAPL", "MSFT")

	r.RefreshAll(context.Background())

	if len(q.calls) != 2 {
		t.Errorf("Expected both symbols fetched despite failure, got calls %v", q.calls)
	}

	snap := r.Snapshot()
	if _, ok := snap["AAPL"]; ok {
		t.Error("Expected failed symbol to stay absent from snapshot")
	}
	if snap["MSFT"] != 380 {
		t.Errorf("Expected MSFT price 380, got %f", snap["MSFT"])
	}
}

func TestRefreshAll_KeepsStalePriceOnFailure(t *testing.T) {
	q := &stubQuoter{prices: map[string]float64{"AAPL": 150}}
	r := NewRefresher(q, 0, metrics.New())
	r.Track("AAPL")

	r.RefreshAll(context.Background())

	// Quote source goes dark; the last good price survives.
	q.prices = map[string]float64{}
	r.RefreshAll(context.Background())

	if snap := r.Snapshot(); snap["AAPL"] != 150 {
		t.Errorf("Expected stale price 150 retained, got %v", snap)
	}
}

func TestSnapshot_ReturnsIndependentCopy(t *testing.T) {
	q := &stubQuoter{prices: map[string]float64{"AAPL": 150}}
	r := NewRefresher(q, 0, metrics.New())
	r.Track("AAPL")
	r.RefreshAll(context.Background())

	snap := r.Snapshot()
	snap["AAPL"] = 1

	if r.Snapshot()["AAPL"] != 150 {
		t.Error("Expected mutating a snapshot to leave the refresher untouched")
	}
}

func TestTrack_IgnoresEmptySymbol(t *testing.T) {
	q := &stubQuoter{prices: map[string]float64{}}
	r := NewRefresher(q, 0, metrics.New())
	r.Track("", "AAPL")

	r.RefreshAll(context.Background())

	if len(q.calls) != 1 || q.calls[0] != "AAPL" {
		t.Errorf("Expected only AAPL fetched, got %v", q.calls)
	}
}
