package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/text/cases"

	"github.com/MrJamesThe3rd/gofinances/internal/category"
	"github.com/MrJamesThe3rd/gofinances/internal/database"
)

type Store struct {
	db *database.DB
}

func New(db *database.DB) *Store {
	return &Store{db: db}
}

// fold lowers s with full Unicode case folding. Patterns are stored folded so
// matching does not depend on the database's own LOWER, which in SQLite only
// handles ASCII.
func fold(s string) string {
	return cases.Fold().String(s)
}

func (s *Store) FindMatch(ctx context.Context, userID, name string) (category.Key, error) {
	query := `
		SELECT category_key
		FROM category_mappings
		WHERE user_id = $1 AND $2 LIKE '%' || raw_pattern || '%'
		ORDER BY LENGTH(raw_pattern) DESC, created_at DESC, id DESC
		LIMIT 1
	`

	var key string

	err := s.db.QueryRowContext(ctx, s.db.Dialect.Rebind(query), userID, fold(name)).Scan(&key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}

		return "", fmt.Errorf("finding match: %w", err)
	}

	return category.Key(key), nil
}

func (s *Store) CreateMapping(ctx context.Context, userID, rawPattern string, key category.Key) error {
	query := `
		INSERT INTO category_mappings (user_id, raw_pattern, category_key, created_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id, raw_pattern) DO UPDATE
		SET category_key = excluded.category_key, created_at = excluded.created_at
	`

	_, err := s.db.ExecContext(ctx, s.db.Dialect.Rebind(query), userID, fold(rawPattern), string(key))
	if err != nil {
		return fmt.Errorf("creating mapping: %w", err)
	}

	return nil
}
