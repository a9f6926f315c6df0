package prices

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	ErrPriceNotFound  = errors.New("price not found")
	ErrAPIRateLimited = errors.New("alpha vantage rate limit or information note")
)

// AlphaVantage fetches quotes from the Alpha Vantage GLOBAL_QUOTE endpoint.
type AlphaVantage struct {
	apiKey string
	cli    *http.Client
}

func NewAlphaVantage(apiKey string) *AlphaVantage {
	return &AlphaVantage{
		apiKey: apiKey,
		cli:    &http.Client{Timeout: 8 * time.Second},
	}
}

func (p *AlphaVantage) Quote(ctx context.Context, symbol string) (float64, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return 0, ErrPriceNotFound
	}

	params := url.Values{
		"function": {"GLOBAL_QUOTE"},
		"symbol":   {symbol},
		"apikey":   {p.apiKey},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://www.alphavantage.co/query?"+params.Encode(), nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", "tradeledger/1.0")

	resp, err := p.cli.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("alphavantage http %d", resp.StatusCode)
	}

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return 0, err
	}
	if _, ok := raw["Note"]; ok {
		return 0, ErrAPIRateLimited
	}
	if _, ok := raw["Information"]; ok {
		return 0, ErrAPIRateLimited
	}

	gq, ok := raw["Global Quote"].(map[string]any)
	if !ok || len(gq) == 0 {
		return 0, ErrPriceNotFound
	}

	priceStr, _ := gq["05. price"].(string)
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price <= 0 {
		return 0, ErrPriceNotFound
	}

	return price, nil
}
