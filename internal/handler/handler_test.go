package handler_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/shelfnotes/internal/handler"
	"github.com/msomdec/shelfnotes/internal/repository/sqlite"
	"github.com/msomdec/shelfnotes/internal/service"
)

const testJWTSecret = "test-secret-for-handler-tests"

var testCORSOrigins = []string{"http://localhost:3000"}

type testEnv struct {
	db     *sqlite.DB
	tokens *service.TokenService
	svc    handler.Services
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.EnsureSchema(context.Background()))
	t.Cleanup(func() { db.Close() })

	tokens, err := service.NewTokenService(service.TokenConfig{
		Secret:    testJWTSecret,
		Algorithm: "HS256",
		TTL:       30 * time.Minute,
	})
	require.NoError(t, err)

	hasher := service.NewArgon2Hasher(service.Argon2Params{MemoryKiB: 1024, Iterations: 1, Parallelism: 1})

	return &testEnv{
		db:     db,
		tokens: tokens,
		svc: handler.Services{
			Auth:   service.NewAuthService(db.Users(), hasher, tokens),
			Books:  service.NewBookService(db.Books()),
			Quotes: service.NewQuoteService(db.Quotes()),
		},
	}
}

// newTestClient starts the full router behind an httptest server.
func newTestClient(t *testing.T, env *testEnv) *resty.Client {
	t.Helper()
	srv := httptest.NewServer(handler.NewRouter(env.svc, testCORSOrigins))
	t.Cleanup(srv.Close)
	return resty.New().SetBaseURL(srv.URL)
}

// registerAndLogin creates an account and returns its bearer token.
func registerAndLogin(t *testing.T, env *testEnv, username string) string {
	t.Helper()
	ctx := context.Background()
	_, err := env.svc.Auth.Register(ctx, username, username+"@example.com", "pw-"+username)
	require.NoError(t, err)
	token, err := env.svc.Auth.Login(ctx, username, "pw-"+username)
	require.NoError(t, err)
	return token.Token
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
