package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/shelfnotes/internal/domain"
	"github.com/msomdec/shelfnotes/internal/service"
)

// QuoteHandler serves the authenticated user's quotes.
type QuoteHandler struct {
	quotes *service.QuoteService
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(quotes *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quotes: quotes}
}

// HandleList returns every quote owned by the caller.
// GET /quotes
func (h *QuoteHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	quotes, err := h.quotes.List(r.Context(), userID)
	if err != nil {
		h.writeQuoteError(w, r, "list quotes", err)
		return
	}
	writeJSON(w, http.StatusOK, toQuoteDTOs(quotes))
}

// HandleGet returns a single quote.
// GET /quotes/{id}
func (h *QuoteHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	quote, err := h.quotes.Get(r.Context(), userID, id)
	if err != nil {
		h.writeQuoteError(w, r, "get quote", err)
		return
	}
	writeJSON(w, http.StatusOK, toQuoteDTO(quote))
}

// HandleCreate saves a new quote.
// POST /quotes
// Request: {"quote_text":"...","author":"..."}
func (h *QuoteHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req quoteRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	quote, err := h.quotes.Create(r.Context(), userID, req.input())
	if err != nil {
		h.writeQuoteError(w, r, "create quote", err)
		return
	}
	writeJSON(w, http.StatusOK, toQuoteDTO(quote))
}

// HandleUpdate replaces a quote's text and author.
// PUT /quotes/{id}
func (h *QuoteHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req quoteRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	quote, err := h.quotes.Update(r.Context(), userID, id, req.input())
	if err != nil {
		h.writeQuoteError(w, r, "update quote", err)
		return
	}
	writeJSON(w, http.StatusOK, toQuoteDTO(quote))
}

// HandleDelete removes a quote.
// DELETE /quotes/{id}
func (h *QuoteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.quotes.Delete(r.Context(), userID, id); err != nil {
		h.writeQuoteError(w, r, "delete quote", err)
		return
	}
	writeJSON(w, http.StatusOK, MessageDTO{Message: "Quote deleted successfully"})
}

func (h *QuoteHandler) writeQuoteError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Quote not found")
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusUnprocessableEntity, "Quote text and author are required")
	default:
		slog.ErrorContext(r.Context(), op, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
