package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"tradeledger/internal/models"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS trades (
    id         TEXT PRIMARY KEY,
    symbol     TEXT NOT NULL,
    name       TEXT NOT NULL,
    side       TEXT NOT NULL,
    quantity   REAL NOT NULL,
    price      REAL NOT NULL,
    trade_date TIMESTAMP NOT NULL,
    created_at TIMESTAMP NOT NULL
)`

// SQLiteStore keeps the trade ledger in a local SQLite file. Zero-setup
// alternative to PostgreSQL for single-user deployments.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("error opening sqlite database: %w", err)
	}

	// SQLite allows a single writer; serialize access through one connection.
	db.SetMaxOpenConns(1)

	if _, err = db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Insert(ctx context.Context, t models.Trade) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO trades (id, symbol, name, side, quantity, price, trade_date, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `, t.ID, t.Symbol, t.Name, string(t.Side), t.Quantity, t.Price, t.Date, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting trade: %w", err)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]models.Trade, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, symbol, name, side, quantity, price, trade_date, created_at
        FROM trades
        ORDER BY rowid
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

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM trades WHERE id = ?", id)
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

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
