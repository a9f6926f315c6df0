package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tradeledger/internal/config"
	"tradeledger/internal/models"
)

// TradeStore persists the ordered trade list. List returns trades in append
// order; all derived figures are recomputed from the full list on every read.
type TradeStore interface {
	Insert(ctx context.Context, t models.Trade) error
	List(ctx context.Context) ([]models.Trade, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

var ErrNotFound = errors.New("trade not found")

const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

// Open returns the store for the configured backend.
func Open(cfg *config.Config) (TradeStore, error) {
	switch strings.ToLower(cfg.StoreBackend) {
	case BackendPostgres:
		return OpenPostgres(cfg)
	case BackendSQLite:
		return OpenSQLite(cfg.SQLitePath)
	case BackendMemory, "":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", cfg.StoreBackend)
	}
}
