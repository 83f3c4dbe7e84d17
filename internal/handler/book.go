package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/shelfnotes/internal/domain"
	"github.com/msomdec/shelfnotes/internal/service"
)

// BookHandler serves the authenticated user's book collection.
type BookHandler struct {
	books *service.BookService
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(books *service.BookService) *BookHandler {
	return &BookHandler{books: books}
}

// HandleList returns every book owned by the caller.
// GET /books
func (h *BookHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	books, err := h.books.List(r.Context(), userID)
	if err != nil {
		h.writeBookError(w, r, "list books", err)
		return
	}
	writeJSON(w, http.StatusOK, toBookDTOs(books))
}

// HandleGet returns a single book.
// GET /books/{id}
func (h *BookHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	book, err := h.books.Get(r.Context(), userID, id)
	if err != nil {
		h.writeBookError(w, r, "get book", err)
		return
	}
	writeJSON(w, http.StatusOK, toBookDTO(book))
}

// HandleCreate adds a book to the caller's collection.
// POST /books
// Request: {"title":"...","author":"...","publication_date":"..."}
func (h *BookHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req bookRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	book, err := h.books.Create(r.Context(), userID, req.input())
	if err != nil {
		h.writeBookError(w, r, "create book", err)
		return
	}
	writeJSON(w, http.StatusOK, toBookDTO(book))
}

// HandleUpdate replaces every field of a book.
// PUT /books/{id}
func (h *BookHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req bookRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	book, err := h.books.Update(r.Context(), userID, id, req.input())
	if err != nil {
		h.writeBookError(w, r, "update book", err)
		return
	}
	writeJSON(w, http.StatusOK, toBookDTO(book))
}

// HandleDelete removes a book.
// DELETE /books/{id}
func (h *BookHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.books.Delete(r.Context(), userID, id); err != nil {
		h.writeBookError(w, r, "delete book", err)
		return
	}
	writeJSON(w, http.StatusOK, MessageDTO{Message: "Book deleted successfully"})
}

func (h *BookHandler) writeBookError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Book not found")
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusUnprocessableEntity, "Title and author are required")
	default:
		slog.ErrorContext(r.Context(), op, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
