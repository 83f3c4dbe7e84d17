package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/msomdec/shelfnotes/internal/domain"
)

// QuoteInput carries the client-writable fields of a quote.
type QuoteInput struct {
	QuoteText string
	Author    string
}

// QuoteService handles ownership-scoped quote CRUD.
type QuoteService struct {
	quotes domain.QuoteRepository
}

// NewQuoteService creates a new QuoteService.
func NewQuoteService(quotes domain.QuoteRepository) *QuoteService {
	return &QuoteService{quotes: quotes}
}

func (s *QuoteService) List(ctx context.Context, userID int64) ([]domain.Quote, error) {
	return s.quotes.ListByUser(ctx, userID)
}

func (s *QuoteService) Get(ctx context.Context, userID, id int64) (*domain.Quote, error) {
	return s.quotes.GetByID(ctx, userID, id)
}

func (s *QuoteService) Create(ctx context.Context, userID int64, in QuoteInput) (*domain.Quote, error) {
	if err := validateQuote(in); err != nil {
		return nil, err
	}

	quote := &domain.Quote{QuoteText: in.QuoteText, Author: in.Author, UserID: userID}
	if err := s.quotes.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("create quote: %w", err)
	}
	return quote, nil
}

func (s *QuoteService) Update(ctx context.Context, userID, id int64, in QuoteInput) (*domain.Quote, error) {
	if err := validateQuote(in); err != nil {
		return nil, err
	}

	quote := &domain.Quote{ID: id, QuoteText: in.QuoteText, Author: in.Author, UserID: userID}
	if err := s.quotes.Update(ctx, quote); err != nil {
		return nil, err
	}
	return quote, nil
}

func (s *QuoteService) Delete(ctx context.Context, userID, id int64) error {
	return s.quotes.Delete(ctx, userID, id)
}

func validateQuote(in QuoteInput) error {
	if strings.TrimSpace(in.QuoteText) == "" {
		return fmt.Errorf("%w: quote text is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Author) == "" {
		return fmt.Errorf("%w: author is required", domain.ErrInvalidInput)
	}
	return nil
}
