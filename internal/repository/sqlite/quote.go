package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/shelfnotes/internal/domain"
)

// QuoteRepository implements domain.QuoteRepository using SQLite.
type QuoteRepository struct {
	db *sql.DB
}

// NewQuoteRepository creates a new SQLite-backed QuoteRepository.
func NewQuoteRepository(db *DB) *QuoteRepository {
	return &QuoteRepository{db: db.SqlDB}
}

const quoteColumns = `id, quote_text, author, user_id, created_at`

func (r *QuoteRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Quote, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+quoteColumns+` FROM quotes WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()

	quotes := []domain.Quote{}
	for rows.Next() {
		var q domain.Quote
		if err := rows.Scan(&q.ID, &q.QuoteText, &q.Author, &q.UserID, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

func (r *QuoteRepository) GetByID(ctx context.Context, userID, id int64) (*domain.Quote, error) {
	return getQuote(ctx, r.db, userID, id)
}

func (r *QuoteRepository) Create(ctx context.Context, quote *domain.Quote) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO quotes (quote_text, author, user_id, created_at) VALUES (?, ?, ?, ?)`,
		quote.QuoteText, quote.Author, quote.UserID, now,
	)
	if err != nil {
		return fmt.Errorf("insert quote: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	quote.ID = id
	quote.CreatedAt = now
	return nil
}

// Update overwrites the text and author of the quote matching quote.ID and
// quote.UserID, then reloads it into quote.
func (r *QuoteRepository) Update(ctx context.Context, quote *domain.Quote) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE quotes SET quote_text = ?, author = ? WHERE id = ? AND user_id = ?`,
		quote.QuoteText, quote.Author, quote.ID, quote.UserID,
	)
	if err != nil {
		return fmt.Errorf("update quote: %w", err)
	}
	if err := requireAffected(result); err != nil {
		return err
	}

	updated, err := getQuote(ctx, tx, quote.UserID, quote.ID)
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit quote update: %w", err)
	}

	*quote = *updated
	return nil
}

func (r *QuoteRepository) Delete(ctx context.Context, userID, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM quotes WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	return requireAffected(result)
}

func getQuote(ctx context.Context, q querier, userID, id int64) (*domain.Quote, error) {
	quote := &domain.Quote{}
	err := q.QueryRowContext(ctx,
		`SELECT `+quoteColumns+` FROM quotes WHERE id = ? AND user_id = ?`, id, userID,
	).Scan(&quote.ID, &quote.QuoteText, &quote.Author, &quote.UserID, &quote.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}
	return quote, nil
}
