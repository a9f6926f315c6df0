package store

import (
	"context"
	"sync"

	"tradeledger/internal/models"
)

// MemoryStore keeps trades in memory. Default backend when none is
// configured; also used by tests.
type MemoryStore struct {
	mu     sync.RWMutex
	trades []models.Trade
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{trades: make([]models.Trade, 0)}
}

func (s *MemoryStore) Insert(_ context.Context, t models.Trade) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trades = append(s.trades, t)
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]models.Trade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := make([]models.Trade, len(s.trades))
	copy(cp, s.trades)
	return cp, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.trades {
		if t.ID == id {
			s.trades = append(s.trades[:i], s.trades[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) Close() error { return nil }
