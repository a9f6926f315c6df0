package prices

import "context"

// Quoter returns the latest market price for a symbol.
type Quoter interface {
	Quote(ctx context.Context, symbol string) (float64, error)
}
