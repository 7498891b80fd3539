package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect selects the SQL flavour of the configured store.
type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

// ParseDialect maps a STORE_DRIVER value onto a Dialect.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "postgres", "pgx":
		return Postgres, nil
	case "sqlite":
		return SQLite, nil
	}

	return 0, fmt.Errorf("unknown store driver %q", name)
}

func (d Dialect) String() string {
	if d == SQLite {
		return "sqlite"
	}

	return "postgres"
}

func (d Dialect) driverName() string {
	if d == SQLite {
		return "sqlite"
	}

	return "pgx"
}

// Rebind rewrites $N placeholders into the dialect's form.
// Queries are written for Postgres; SQLite gets positional '?'.
func (d Dialect) Rebind(query string) string {
	if d != SQLite {
		return query
	}

	var sb strings.Builder
	sb.Grow(len(query))

	for i := 0; i < len(query); i++ {
		if query[i] != '$' {
			sb.WriteByte(query[i])
			continue
		}

		j := i + 1
		for j < len(query) && query[j] >= '0' && query[j] <= '9' {
			j++
		}

		if j == i+1 {
			sb.WriteByte('$')
			continue
		}

		sb.WriteByte('?')
		i = j - 1
	}

	return sb.String()
}

// LockClause is appended to a SELECT that is followed by a write in the same transaction.
func (d Dialect) LockClause() string {
	if d == SQLite {
		return ""
	}

	return " FOR UPDATE"
}

// DB bundles the connection pool with its dialect.
type DB struct {
	*sql.DB
	Dialect Dialect
}

func New(dialect Dialect, connStr string) (*DB, error) {
	if dialect == SQLite {
		if err := os.MkdirAll(filepath.Dir(connStr), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open(dialect.driverName(), connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	switch dialect {
	case SQLite:
		db.SetMaxOpenConns(1)
	default:
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	return &DB{DB: db, Dialect: dialect}, nil
}

// Open connects and applies pending migrations.
func Open(dialect Dialect, connStr string) (*DB, error) {
	db, err := New(dialect, connStr)
	if err != nil {
		return nil, err
	}

	if err := Migrate(dialect, connStr); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
