package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"tradeledger/internal/metrics"
	"tradeledger/internal/models"
	"tradeledger/internal/store"
)

type staticPrices struct {
	prices  map[string]float64
	tracked []string
}

func (s *staticPrices) Snapshot() map[string]float64 { return s.prices }
func (s *staticPrices) Track(symbols ...string)      { s.tracked = append(s.tracked, symbols...) }

func setupRouter(t *testing.T, prices map[string]float64) (*gin.Engine, *store.MemoryStore, *staticPrices) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemoryStore()
	ps := &staticPrices{prices: prices}
	tp := NewTradeProcessor(st, 1)
	tp.Start()
	t.Cleanup(tp.Stop)

	h := New(st, ps, tp, metrics.New())
	router := gin.New()
	h.RegisterRoutes(router)
	return router, st, ps
}

func postTrade(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/trades", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func tradeBody(symbol, side string, qty, price float64, date string) string {
	return fmt.Sprintf(`{"symbol":%q,"name":"%s Inc","side":%q,"quantity":%f,"price":%f,"date":%q}`,
		symbol, symbol, side, qty, price, date)
}

func TestCreateTrade_Success(t *testing.T) {
	router, st, ps := setupRouter(t, nil)

	w := postTrade(router, tradeBody("AAPL", "buy", 10, 150, "2024-01-02"))
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var created models.Trade
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if created.ID == "" {
		t.Error("Expected a generated trade ID")
	}
	if created.Side != models.SideBuy {
		t.Errorf("Expected side buy, got %s", created.Side)
	}

	trades, _ := st.List(context.Background())
	if len(trades) != 1 {
		t.Fatalf("Expected 1 trade persisted, got %d", len(trades))
	}
	if len(ps.tracked) != 1 || ps.tracked[0] != "AAPL" {
		t.Errorf("Expected AAPL tracked for pricing, got %v", ps.tracked)
	}
}

func TestCreateTrade_ValidationRejects(t *testing.T) {
	router, st, _ := setupRouter(t, nil)

	bad := []string{
		tradeBody("AAPL", "hold", 10, 150, "2024-01-02"), // unknown side
		tradeBody("AAPL", "buy", 0, 150, "2024-01-02"),   // zero quantity
		tradeBody("AAPL", "buy", -5, 150, "2024-01-02"),  // negative quantity
		tradeBody("AAPL", "buy", 10, 0, "2024-01-02"),    // zero price
		tradeBody("AAPL", "buy", 10, 150, "Jan 2 2024"),  // bad date
		`{"name":"Apple Inc","side":"buy","quantity":1,"price":1,"date":"2024-01-02"}`, // missing symbol
	}

	for _, body := range bad {
		if w := postTrade(router, body); w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for %s, got %d", body, w.Code)
		}
	}

	trades, _ := st.List(context.Background())
	if len(trades) != 0 {
		t.Errorf("Expected no trades persisted, got %d", len(trades))
	}
}

func TestListTrades_NewestFirst(t *testing.T) {
	router, _, _ := setupRouter(t, nil)

	postTrade(router, tradeBody("AAPL", "buy", 1, 100, "2024-01-01"))
	postTrade(router, tradeBody("MSFT", "buy", 1, 300, "2024-01-02"))

	req := httptest.NewRequest(http.MethodGet, "/api/trades", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp struct {
		Trades []models.Trade `json:"trades"`
		Count  int            `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Count != 2 {
		t.Fatalf("Expected 2 trades, got %d", resp.Count)
	}
	if resp.Trades[0].Symbol != "MSFT" || resp.Trades[1].Symbol != "AAPL" {
		t.Errorf("Expected newest trade first, got %s then %s", resp.Trades[0].Symbol, resp.Trades[1].Symbol)
	}
}

func TestGetHoldings(t *testing.T) {
	router, _, _ := setupRouter(t, map[string]float64{"AAPL": 200})

	postTrade(router, tradeBody("AAPL", "buy", 10, 150, "2024-01-01"))
	postTrade(router, tradeBody("AAPL", "sell", 4, 180, "2024-01-02"))

	req := httptest.NewRequest(http.MethodGet, "/api/holdings", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp struct {
		Holdings []models.Holding `json:"holdings"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Holdings) != 1 {
		t.Fatalf("Expected 1 holding, got %d", len(resp.Holdings))
	}

	h := resp.Holdings[0]
	if h.Quantity != 6 {
		t.Errorf("Expected quantity 6, got %f", h.Quantity)
	}
	if h.TotalInvested != 1500 {
		t.Errorf("Expected gross invested 1500, got %f", h.TotalInvested)
	}
	if h.CurrentValue != 1200 {
		t.Errorf("Expected current value 1200, got %f", h.CurrentValue)
	}
}

func TestGetSummary(t *testing.T) {
	router, _, _ := setupRouter(t, map[string]float64{"AAPL": 200})

	postTrade(router, tradeBody("AAPL", "buy", 10, 100, "2024-01-01"))
	postTrade(router, tradeBody("AAPL", "sell", 10, 120, "2024-01-02"))
	postTrade(router, tradeBody("AAPL", "buy", 5, 150, "2024-01-03"))

	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp models.PortfolioResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if resp.Summary.RealizedPnL != 200 {
		t.Errorf("Expected realized PnL 200, got %f", resp.Summary.RealizedPnL)
	}
	// Gross cost basis: the sell reduced quantity but not recorded cost, so
	// invested is 10*100 + 5*150 = 1750 against 5 shares valued at 200.
	if resp.Summary.TotalInvested != 1750 {
		t.Errorf("Expected total invested 1750, got %f", resp.Summary.TotalInvested)
	}
	if resp.Summary.CurrentValue != 1000 {
		t.Errorf("Expected current value 1000, got %f", resp.Summary.CurrentValue)
	}
	if resp.Summary.UnrealizedPnL != -750 {
		t.Errorf("Expected unrealized PnL -750, got %f", resp.Summary.UnrealizedPnL)
	}
}

func TestDeleteTrade(t *testing.T) {
	router, st, _ := setupRouter(t, nil)

	w := postTrade(router, tradeBody("AAPL", "buy", 10, 150, "2024-01-01"))
	var created models.Trade
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/trades/"+created.ID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d", rec.Code)
	}

	trades, _ := st.List(context.Background())
	if len(trades) != 0 {
		t.Errorf("Expected empty ledger after delete, got %d trades", len(trades))
	}

	// Holdings must reflect the deletion on the next read.
	req = httptest.NewRequest(http.MethodGet, "/api/holdings", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Count != 0 {
		t.Errorf("Expected no holdings after delete, got %d", resp.Count)
	}
}

func TestDeleteTrade_NotFound(t *testing.T) {
	router, _, _ := setupRouter(t, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/trades/no-such-id", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestHealth(t *testing.T) {
	router, _, _ := setupRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
}
