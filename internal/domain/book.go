package domain

import (
	"context"
	"time"
)

// Book is a single entry in a user's reading list.
type Book struct {
	ID              int64
	Title           string
	Author          string
	PublicationDate *string
	UserID          int64
	CreatedAt       time.Time
}

// BookRepository defines ownership-scoped persistence for books. Every
// point lookup takes the owner's ID; a book owned by someone else is
// reported as ErrNotFound.
type BookRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]Book, error)
	GetByID(ctx context.Context, userID, id int64) (*Book, error)
	Create(ctx context.Context, book *Book) error
	Update(ctx context.Context, book *Book) error
	Delete(ctx context.Context, userID, id int64) error
}
