package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/msomdec/shelfnotes/internal/domain"
)

// BookInput carries the client-writable fields of a book. Updates replace
// all of them.
type BookInput struct {
	Title           string
	Author          string
	PublicationDate *string
}

// BookService handles ownership-scoped book CRUD.
type BookService struct {
	books domain.BookRepository
}

// NewBookService creates a new BookService.
func NewBookService(books domain.BookRepository) *BookService {
	return &BookService{books: books}
}

// List returns every book owned by userID in insertion order.
func (s *BookService) List(ctx context.Context, userID int64) ([]domain.Book, error) {
	return s.books.ListByUser(ctx, userID)
}

// Get returns the book with the given id if userID owns it.
func (s *BookService) Get(ctx context.Context, userID, id int64) (*domain.Book, error) {
	return s.books.GetByID(ctx, userID, id)
}

// Create stores a new book owned by userID.
func (s *BookService) Create(ctx context.Context, userID int64, in BookInput) (*domain.Book, error) {
	if err := validateBook(in); err != nil {
		return nil, err
	}

	book := &domain.Book{
		Title:           in.Title,
		Author:          in.Author,
		PublicationDate: normalizeOptional(in.PublicationDate),
		UserID:          userID,
	}
	if err := s.books.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}
	return book, nil
}

// Update overwrites the book with the given id if userID owns it.
func (s *BookService) Update(ctx context.Context, userID, id int64, in BookInput) (*domain.Book, error) {
	if err := validateBook(in); err != nil {
		return nil, err
	}

	book := &domain.Book{
		ID:              id,
		Title:           in.Title,
		Author:          in.Author,
		PublicationDate: normalizeOptional(in.PublicationDate),
		UserID:          userID,
	}
	if err := s.books.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// Delete permanently removes the book with the given id if userID owns it.
func (s *BookService) Delete(ctx context.Context, userID, id int64) error {
	return s.books.Delete(ctx, userID, id)
}

func validateBook(in BookInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Author) == "" {
		return fmt.Errorf("%w: author is required", domain.ErrInvalidInput)
	}
	return nil
}

// normalizeOptional maps blank optional text to nil.
func normalizeOptional(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
