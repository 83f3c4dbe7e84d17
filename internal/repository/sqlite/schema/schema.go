// Package schema holds the embedded table definitions for the SQLite store.
// The DDL is idempotent and is applied as a whole on every startup; there is
// no versioned migration history.
package schema

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
)

//go:embed schema.sql
var ddl string

// Tables lists the tables created by Apply, in creation order.
var Tables = []string{"users", "books", "quotes"}

// Apply creates any missing tables and indexes inside a single transaction.
func Apply(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	slog.Debug("schema applied", "tables", Tables)
	return nil
}
