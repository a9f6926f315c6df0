package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"tradeledger/internal/config"
	"tradeledger/internal/models"
)

const pgSchema = `
CREATE TABLE IF NOT EXISTS trades (
    seq        BIGSERIAL,
    id         TEXT PRIMARY KEY,
    symbol     TEXT NOT NULL,
    name       TEXT NOT NULL,
    side       TEXT NOT NULL,
    quantity   DOUBLE PRECISION NOT NULL,
    price      DOUBLE PRECISION NOT NULL,
    trade_date DATE NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresStore keeps the trade ledger in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgres connects, configures the pool and ensures the schema exists.
func OpenPostgres(cfg *config.Config) (*PostgresStore, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if _, err = db.Exec(pgSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating schema: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Insert(ctx context.Context, t models.Trade) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO trades (id, symbol, name, side, quantity, price, trade_date, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `, t.ID, t.Symbol, t.Name, string(t.Side), t.Quantity, t.Price, t.Date, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting trade: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]models.Trade, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, symbol, name, side, quantity, price, trade_date, created_at
        FROM trades
        ORDER BY seq
    `)
	if err != nil {
		return nil, fmt.Errorf("error listing trades: %w", err)
	}
	defer rows.Close()

	trades := make([]models.Trade, 0)
	for rows.Next() {
		var t models.Trade
		var side string
		if err := rows.Scan(&t.ID, &t.Symbol, &t.Name, &side, &t.Quantity, &t.Price, &t.Date, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning trade: %w", err)
		}
		t.Side = models.TradeSide(side)
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM trades WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("error deleting trade: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
