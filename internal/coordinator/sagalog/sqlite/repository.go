// Package sqlite stores the checkout log in its own SQLite file, apart from
// the order database, so log writes never join a checkout transaction.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jcmexdev/storefront/internal/coordinator/sagalog"
	"github.com/jcmexdev/storefront/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS checkout_logs (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    saga_id         TEXT NOT NULL,
    order_id        TEXT NOT NULL DEFAULT '',
    status          TEXT NOT NULL,
    step            TEXT NOT NULL DEFAULT '',
    -- request summary, STARTED rows only
    payload         TEXT,
    error_messages  TEXT NOT NULL DEFAULT '[]',
    trace_id        TEXT NOT NULL DEFAULT '',
    span_id         TEXT NOT NULL DEFAULT '',
    updated_at      TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_checkout_logs_saga_id ON checkout_logs(saga_id, id);
CREATE INDEX IF NOT EXISTS idx_checkout_logs_order_id ON checkout_logs(order_id);
CREATE INDEX IF NOT EXISTS idx_checkout_logs_trace_id ON checkout_logs(trace_id);
`

type Repository struct {
	db *store.DB
}

// Open opens (or creates) the log database at path and applies the schema.
func Open(ctx context.Context, path string) (*Repository, error) {
	db, err := store.OpenSQLite(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) Save(ctx context.Context, entry *sagalog.Entry) error {
	const q = `
		INSERT INTO checkout_logs
			(saga_id, order_id, status, step, payload, error_messages, trace_id, span_id, updated_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		entry.SagaID,
		entry.OrderID,
		string(entry.Status),
		entry.Step,
		nullableString(entry.Payload),
		entry.Errors,
		entry.TraceID,
		entry.SpanID,
		store.FormatTimestamp(entry.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save checkout log for %q: %w", entry.SagaID, err)
	}
	return nil
}

// History returns every entry of a run in write order.
func (r *Repository) History(ctx context.Context, sagaID string) ([]sagalog.Entry, error) {
	const q = `
		SELECT saga_id, order_id, status, step, COALESCE(payload, ''), error_messages,
		       trace_id, span_id, updated_at
		FROM   checkout_logs
		WHERE  saga_id = ?
		ORDER  BY id`

	rows, err := r.db.QueryContext(ctx, q, sagaID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: history of %q: %w", sagaID, err)
	}
	defer rows.Close()

	var entries []sagalog.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate history of %q: %w", sagaID, err)
	}
	return entries, nil
}

func scanEntry(rows *sql.Rows) (sagalog.Entry, error) {
	var e sagalog.Entry
	var status, updatedAt string
	err := rows.Scan(&e.SagaID, &e.OrderID, &status, &e.Step, &e.Payload, &e.Errors,
		&e.TraceID, &e.SpanID, &updatedAt)
	if err != nil {
		return sagalog.Entry{}, fmt.Errorf("sqlite: scan checkout log: %w", err)
	}
	e.Status = sagalog.Status(status)
	if e.UpdatedAt, err = store.ParseTimestamp(updatedAt); err != nil {
		return sagalog.Entry{}, err
	}
	return e, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
