package handler

import (
	"time"

	"github.com/msomdec/shelfnotes/internal/domain"
	"github.com/msomdec/shelfnotes/internal/service"
)

// ErrorDTO is the body of every error response.
type ErrorDTO struct {
	Detail string `json:"detail"`
}

// MessageDTO is a plain acknowledgement body.
type MessageDTO struct {
	Message string `json:"message"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Email    string `json:"email"    validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=1024"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type bookRequest struct {
	Title           string  `json:"title"            validate:"required,max=500"`
	Author          string  `json:"author"           validate:"required,max=300"`
	PublicationDate *string `json:"publication_date" validate:"omitempty,max=64"`
}

func (b bookRequest) input() service.BookInput {
	return service.BookInput{Title: b.Title, Author: b.Author, PublicationDate: b.PublicationDate}
}

type quoteRequest struct {
	QuoteText string `json:"quote_text" validate:"required,max=5000"`
	Author    string `json:"author"     validate:"required,max=300"`
}

func (q quoteRequest) input() service.QuoteInput {
	return service.QuoteInput{QuoteText: q.QuoteText, Author: q.Author}
}

// TokenDTO is the login response.
type TokenDTO struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserDTO is the JSON representation of a user. The password digest is
// never included.
type UserDTO struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// BookDTO is the JSON representation of a book.
type BookDTO struct {
	ID              int64   `json:"id"`
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	PublicationDate *string `json:"publication_date"`
	UserID          int64   `json:"user_id"`
	CreatedAt       string  `json:"created_at"`
}

func toBookDTO(b *domain.Book) BookDTO {
	return BookDTO{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		PublicationDate: b.PublicationDate,
		UserID:          b.UserID,
		CreatedAt:       b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toBookDTOs(books []domain.Book) []BookDTO {
	dtos := make([]BookDTO, len(books))
	for i := range books {
		dtos[i] = toBookDTO(&books[i])
	}
	return dtos
}

// QuoteDTO is the JSON representation of a quote.
type QuoteDTO struct {
	ID        int64  `json:"id"`
	QuoteText string `json:"quote_text"`
	Author    string `json:"author"`
	UserID    int64  `json:"user_id"`
	CreatedAt string `json:"created_at"`
}

func toQuoteDTO(q *domain.Quote) QuoteDTO {
	return QuoteDTO{
		ID:        q.ID,
		QuoteText: q.QuoteText,
		Author:    q.Author,
		UserID:    q.UserID,
		CreatedAt: q.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toQuoteDTOs(quotes []domain.Quote) []QuoteDTO {
	dtos := make([]QuoteDTO, len(quotes))
	for i := range quotes {
		dtos[i] = toQuoteDTO(&quotes[i])
	}
	return dtos
}
