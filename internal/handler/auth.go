package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/shelfnotes/internal/domain"
	"github.com/msomdec/shelfnotes/internal/service"
)

// AuthHandler handles registration, login and identity requests.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// HandleRegister creates a new account.
// POST /register
// Request:  {"username":"...","email":"...","password":"..."}
// Response: {"id":1,"username":"...","email":"...","created_at":"..."}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	user, err := h.auth.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateUser):
			writeError(w, http.StatusBadRequest, "Username or email already registered")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusUnprocessableEntity, "Username, email and password are required")
		default:
			slog.ErrorContext(r.Context(), "register user", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toUserDTO(user))
}

// HandleLogin exchanges credentials for a bearer token.
// POST /login
// Request:  {"username":"...","password":"..."}
// Response: {"access_token":"...","token_type":"bearer"}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeError(w, http.StatusUnauthorized, "Incorrect username or password")
			return
		}
		slog.ErrorContext(r.Context(), "login user", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, TokenDTO{AccessToken: token.Token, TokenType: "bearer"})
}

// HandleMe returns the authenticated user.
// GET /me
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeUnauthorized(w)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(user))
}
