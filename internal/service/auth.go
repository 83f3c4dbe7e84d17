package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/msomdec/shelfnotes/internal/domain"
)

// AuthService handles registration, login and resolving bearer tokens back
// to users.
type AuthService struct {
	users  domain.UserRepository
	hasher PasswordHasher
	tokens *TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, hasher PasswordHasher, tokens *TokenService) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register creates a new user account. Usernames and emails are unique
// across all accounts.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: username, email, and password are required", domain.ErrInvalidInput)
	}

	taken, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if taken {
		return nil, domain.ErrDuplicateUser
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateUser) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and issues an access token. Unknown usernames
// and wrong passwords both yield domain.ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, username, password string) (AccessToken, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return AccessToken{}, domain.ErrUnauthorized
		}
		return AccessToken{}, fmt.Errorf("get user: %w", err)
	}

	if !s.hasher.Check(password, user.PasswordHash) {
		return AccessToken{}, domain.ErrUnauthorized
	}

	if r, ok := s.hasher.(interface{ NeedsRehash(string) bool }); ok && r.NeedsRehash(user.PasswordHash) {
		slog.DebugContext(ctx, "stored password digest uses outdated parameters", "user_id", user.ID)
	}

	token, err := s.tokens.Issue(user.Username, 0)
	if err != nil {
		return AccessToken{}, fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// ResolveUser maps a bearer token to the user it was issued for. It returns
// domain.ErrUnauthorized when the token is rejected for any reason and
// domain.ErrNotFound when the token is valid but its user no longer exists.
func (s *AuthService) ResolveUser(ctx context.Context, token string) (*domain.User, error) {
	username, err := s.tokens.Verify(token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}
