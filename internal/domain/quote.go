package domain

import (
	"context"
	"time"
)

// Quote is a saved passage with its attribution.
type Quote struct {
	ID        int64
	QuoteText string
	Author    string
	UserID    int64
	CreatedAt time.Time
}

// QuoteRepository defines ownership-scoped persistence for quotes.
type QuoteRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]Quote, error)
	GetByID(ctx context.Context, userID, id int64) (*Quote, error)
	Create(ctx context.Context, quote *Quote) error
	Update(ctx context.Context, quote *Quote) error
	Delete(ctx context.Context, userID, id int64) error
}
