package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/msomdec/shelfnotes/internal/domain"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// requireAffected maps a statement that touched no rows to ErrNotFound. A
// row that exists under another owner is indistinguishable from a missing one.
func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
