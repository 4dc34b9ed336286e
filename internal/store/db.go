// Package store owns the relational connection shared by the ledger, the
// order repository and the checkout workflow.
//
// Two dialects are supported. MySQL is the production store and provides the
// row-level locks the checkout relies on. SQLite (modernc, pure Go) is used
// for local runs and tests; it has no FOR UPDATE, so the pool is pinned to a
// single connection and transactions serialise on it instead.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"github.com/jcmexdev/storefront/internal/config"
)

type Dialect string

const (
	MySQL  Dialect = "mysql"
	SQLite Dialect = "sqlite"
)

// LockSuffix is appended to SELECTs that must hold row locks until the
// surrounding transaction ends. When tables are named only their rows are
// locked; the other joined tables are read without locks.
func (d Dialect) LockSuffix(tables ...string) string {
	if d != MySQL {
		return ""
	}
	if len(tables) == 0 {
		return " FOR UPDATE"
	}
	return " FOR UPDATE OF " + strings.Join(tables, ", ")
}

// Querier is satisfied by *sql.DB, *sql.Tx and *DB, so repository helpers can
// run inside or outside a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type DB struct {
	*sql.DB
	Dialect Dialect
}

// Open creates the connection pool described by cfg and pings it.
func Open(ctx context.Context, cfg *config.DBConfig) (*DB, error) {
	switch Dialect(cfg.Driver) {
	case MySQL:
		db, err := sql.Open("mysql", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("store: open mysql: %w", err)
		}
		if cfg.MaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("store: ping mysql: %w", err)
		}
		return &DB{DB: db, Dialect: MySQL}, nil
	case SQLite:
		return OpenSQLite(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("store: unsupported driver %q", cfg.Driver)
	}
}

// OpenSQLite opens (or creates) the SQLite database file at path.
func OpenSQLite(ctx context.Context, path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite %q: %w", path, err)
	}

	// One connection: transactions queue behind each other, which stands in
	// for the row locks SQLite cannot take.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: ping sqlite %q: %w", path, err)
	}
	return &DB{DB: db, Dialect: SQLite}, nil
}

// InTx runs fn inside a transaction, committing on success and rolling back
// on error or panic.
func (db *DB) InTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}
