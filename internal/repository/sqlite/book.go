package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/shelfnotes/internal/domain"
)

// BookRepository implements domain.BookRepository using SQLite. Every
// statement that addresses a single book matches on id and user_id together.
type BookRepository struct {
	db *sql.DB
}

// NewBookRepository creates a new SQLite-backed BookRepository.
func NewBookRepository(db *DB) *BookRepository {
	return &BookRepository{db: db.SqlDB}
}

const bookColumns = `id, title, author, publication_date, user_id, created_at`

func (r *BookRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Book, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := []domain.Book{}
	for rows.Next() {
		var b domain.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.PublicationDate, &b.UserID, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (r *BookRepository) GetByID(ctx context.Context, userID, id int64) (*domain.Book, error) {
	return getBook(ctx, r.db, userID, id)
}

func (r *BookRepository) Create(ctx context.Context, book *domain.Book) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO books (title, author, publication_date, user_id, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		book.Title, book.Author, book.PublicationDate, book.UserID, now,
	)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	book.ID = id
	book.CreatedAt = now
	return nil
}

// Update overwrites title, author and publication date of the book matching
// book.ID and book.UserID, then reloads it into book.
func (r *BookRepository) Update(ctx context.Context, book *domain.Book) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE books SET title = ?, author = ?, publication_date = ?
		 WHERE id = ? AND user_id = ?`,
		book.Title, book.Author, book.PublicationDate, book.ID, book.UserID,
	)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	if err := requireAffected(result); err != nil {
		return err
	}

	updated, err := getBook(ctx, tx, book.UserID, book.ID)
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit book update: %w", err)
	}

	*book = *updated
	return nil
}

func (r *BookRepository) Delete(ctx context.Context, userID, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM books WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return requireAffected(result)
}

func getBook(ctx context.Context, q querier, userID, id int64) (*domain.Book, error) {
	b := &domain.Book{}
	err := q.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = ? AND user_id = ?`, id, userID,
	).Scan(&b.ID, &b.Title, &b.Author, &b.PublicationDate, &b.UserID, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	return b, nil
}
