package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/gofinances/internal/database"
	"github.com/MrJamesThe3rd/gofinances/internal/transaction"
)

const keyPrefix = "@gofinances:transactions_user:"

// Key returns the storage key of a user's transaction collection.
func Key(userID string) string {
	return keyPrefix + userID
}

// Store keeps each user's transactions as one JSON blob in a key-value table.
type Store struct {
	db *database.DB
}

func New(db *database.DB) *Store {
	return &Store{db: db}
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) read(ctx context.Context, q queryer, key string, lock bool) ([]byte, error) {
	query := `SELECT value FROM storage WHERE key = $1`
	if lock {
		query += s.db.Dialect.LockClause()
	}

	var value string

	err := q.QueryRowContext(ctx, s.db.Dialect.Rebind(query), key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return []byte(value), nil
}

func (s *Store) ListTransactions(ctx context.Context, userID string) ([]transaction.Transaction, error) {
	blob, err := s.read(ctx, s.db, Key(userID), false)
	if err != nil {
		return nil, fmt.Errorf("reading transactions: %w", err)
	}

	txs, err := transaction.Decode(blob)
	if err != nil {
		return nil, fmt.Errorf("decoding transactions for user %s: %w", userID, err)
	}

	return txs, nil
}

// AppendTransactions adds txs to the end of the user's collection atomically.
func (s *Store) AppendTransactions(ctx context.Context, userID string, txs ...transaction.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	key := Key(userID)

	// The row must exist before the locking read, otherwise two first appends
	// for the same user both see an empty collection.
	seed := `INSERT INTO storage (key, value) VALUES ($1, '[]') ON CONFLICT (key) DO NOTHING`
	if _, err := dbTx.ExecContext(ctx, s.db.Dialect.Rebind(seed), key); err != nil {
		return fmt.Errorf("seeding transactions: %w", err)
	}

	blob, err := s.read(ctx, dbTx, key, true)
	if err != nil {
		return fmt.Errorf("reading transactions: %w", err)
	}

	current, err := transaction.Decode(blob)
	if err != nil {
		return fmt.Errorf("decoding transactions for user %s: %w", userID, err)
	}

	data, err := transaction.Encode(append(current, txs...))
	if err != nil {
		return err
	}

	query := `
		INSERT INTO storage (key, value, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := dbTx.ExecContext(ctx, s.db.Dialect.Rebind(query), key, string(data)); err != nil {
		return fmt.Errorf("writing transactions: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}
