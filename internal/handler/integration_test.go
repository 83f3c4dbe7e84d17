package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/shelfnotes/internal/handler"
)

func login(t *testing.T, client *resty.Client, username, password string) string {
	t.Helper()
	var tok handler.TokenDTO
	resp, err := client.R().
		SetBody(map[string]string{"username": username, "password": password}).
		SetResult(&tok).
		Post("/login")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode(), resp.String())
	return tok.AccessToken
}

func register(t *testing.T, client *resty.Client, username, email, password string) handler.UserDTO {
	t.Helper()
	var user handler.UserDTO
	resp, err := client.R().
		SetBody(map[string]string{"username": username, "email": email, "password": password}).
		SetResult(&user).
		Post("/register")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode(), resp.String())
	return user
}

func TestIntegration_RegisterAndLogin(t *testing.T) {
	client := newTestClient(t, newTestEnv(t))

	user := register(t, client, "alice", "a@x.com", "pw1")
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "a@x.com", user.Email)
	assert.NotEmpty(t, user.CreatedAt)

	var apiErr handler.ErrorDTO
	resp, err := client.R().
		SetBody(map[string]string{"username": "alice", "email": "other@x.com", "password": "pw2"}).
		SetError(&apiErr).
		Post("/register")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())
	assert.Equal(t, "Username or email already registered", apiErr.Detail)

	var tok handler.TokenDTO
	resp, err = client.R().
		SetBody(map[string]string{"username": "alice", "password": "pw1"}).
		SetResult(&tok).
		Post("/login")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.NotEmpty(t, tok.AccessToken)
	assert.Equal(t, "bearer", tok.TokenType)

	resp, err = client.R().
		SetBody(map[string]string{"username": "alice", "password": "wrong"}).
		SetError(&apiErr).
		Post("/login")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
	assert.Equal(t, "Incorrect username or password", apiErr.Detail)

	var me handler.UserDTO
	resp, err = client.R().SetAuthToken(tok.AccessToken).SetResult(&me).Get("/me")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, user, me)
	assert.NotContains(t, resp.String(), "password")
}

func TestIntegration_RegisterInvalidBody(t *testing.T) {
	client := newTestClient(t, newTestEnv(t))

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"malformed json", `{"username":`, http.StatusBadRequest},
		{"missing password", map[string]string{"username": "alice", "email": "a@x.com"}, http.StatusUnprocessableEntity},
		{"invalid email", map[string]string{"username": "alice", "email": "nope", "password": "pw"}, http.StatusUnprocessableEntity},
		{"blank username", map[string]string{"username": "   ", "email": "a@x.com", "password": "pw"}, http.StatusUnprocessableEntity},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var apiErr handler.ErrorDTO
			resp, err := client.R().
				SetHeader("Content-Type", "application/json").
				SetBody(tc.body).
				SetError(&apiErr).
				Post("/register")
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode())
			assert.NotEmpty(t, apiErr.Detail)
		})
	}
}

func TestIntegration_BookLifecycle(t *testing.T) {
	client := newTestClient(t, newTestEnv(t))

	alice := register(t, client, "alice", "a@x.com", "pw1")
	register(t, client, "bob", "b@x.com", "pw2")
	aliceToken := login(t, client, "alice", "pw1")
	bobToken := login(t, client, "bob", "pw2")

	var book handler.BookDTO
	resp, err := client.R().
		SetAuthToken(aliceToken).
		SetBody(map[string]string{"title": "Dune", "author": "Herbert"}).
		SetResult(&book).
		Post("/books")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode(), resp.String())
	assert.EqualValues(t, 1, book.ID)
	assert.Equal(t, alice.ID, book.UserID)
	assert.Equal(t, "Dune", book.Title)
	assert.Nil(t, book.PublicationDate)

	// Another user's book is indistinguishable from a missing one.
	var ownedErr, missingErr handler.ErrorDTO
	resp, err = client.R().SetAuthToken(bobToken).SetError(&ownedErr).Get("/books/1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
	resp, err = client.R().SetAuthToken(bobToken).SetError(&missingErr).Get("/books/999")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
	assert.Equal(t, "Book not found", ownedErr.Detail)
	assert.Equal(t, ownedErr, missingErr)

	resp, err = client.R().
		SetAuthToken(bobToken).
		SetBody(map[string]string{"title": "Stolen", "author": "Bob"}).
		Put("/books/1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())

	resp, err = client.R().SetAuthToken(bobToken).Delete("/books/1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())

	var bobBooks []handler.BookDTO
	resp, err = client.R().SetAuthToken(bobToken).SetResult(&bobBooks).Get("/books")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.JSONEq(t, `[]`, resp.String())

	update := map[string]any{"title": "Dune Messiah", "author": "Herbert", "publication_date": "1969"}
	for range 2 {
		var updated handler.BookDTO
		resp, err = client.R().SetAuthToken(aliceToken).SetBody(update).SetResult(&updated).Put("/books/1")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode(), resp.String())
		assert.Equal(t, "Dune Messiah", updated.Title)
		require.NotNil(t, updated.PublicationDate)
		assert.Equal(t, "1969", *updated.PublicationDate)
		assert.Equal(t, book.CreatedAt, updated.CreatedAt)
	}

	var fetched handler.BookDTO
	resp, err = client.R().SetAuthToken(aliceToken).SetResult(&fetched).Get("/books/1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "Dune Messiah", fetched.Title)

	var list []handler.BookDTO
	resp, err = client.R().SetAuthToken(aliceToken).SetResult(&list).Get("/books")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	require.Len(t, list, 1)
	assert.Equal(t, fetched, list[0])

	var msg handler.MessageDTO
	resp, err = client.R().SetAuthToken(aliceToken).SetResult(&msg).Delete("/books/1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "Book deleted successfully", msg.Message)

	resp, err = client.R().SetAuthToken(aliceToken).Delete("/books/1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
}

func TestIntegration_BookValidation(t *testing.T) {
	env := newTestEnv(t)
	client := newTestClient(t, env)
	token := registerAndLogin(t, env, "alice")

	tests := []struct {
		name   string
		path   string
		body   any
		status int
	}{
		{"missing author", "/books", map[string]string{"title": "Dune"}, http.StatusUnprocessableEntity},
		{"blank title", "/books", map[string]string{"title": "  ", "author": "Herbert"}, http.StatusUnprocessableEntity},
		{"malformed json", "/books", `{"title":`, http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := client.R().
				SetAuthToken(token).
				SetHeader("Content-Type", "application/json").
				SetBody(tc.body).
				Post(tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode())
		})
	}

	resp, err := client.R().SetAuthToken(token).Get("/books/abc")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode())
}

func TestIntegration_QuoteLifecycle(t *testing.T) {
	env := newTestEnv(t)
	client := newTestClient(t, env)
	aliceToken := registerAndLogin(t, env, "alice")
	bobToken := registerAndLogin(t, env, "bob")

	var quote handler.QuoteDTO
	resp, err := client.R().
		SetAuthToken(aliceToken).
		SetBody(map[string]string{"quote_text": "Fear is the mind-killer.", "author": "Herbert"}).
		SetResult(&quote).
		Post("/quotes")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode(), resp.String())
	assert.NotZero(t, quote.ID)
	assert.Equal(t, "Fear is the mind-killer.", quote.QuoteText)

	var apiErr handler.ErrorDTO
	resp, err = client.R().SetAuthToken(bobToken).SetError(&apiErr).Get("/quotes/" + itoa(quote.ID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
	assert.Equal(t, "Quote not found", apiErr.Detail)

	var updated handler.QuoteDTO
	resp, err = client.R().
		SetAuthToken(aliceToken).
		SetBody(map[string]string{"quote_text": "I must not fear.", "author": "Frank Herbert"}).
		SetResult(&updated).
		Put("/quotes/" + itoa(quote.ID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "I must not fear.", updated.QuoteText)
	assert.Equal(t, "Frank Herbert", updated.Author)

	var list []handler.QuoteDTO
	resp, err = client.R().SetAuthToken(aliceToken).SetResult(&list).Get("/quotes")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	require.Len(t, list, 1)
	assert.Equal(t, updated, list[0])

	var msg handler.MessageDTO
	resp, err = client.R().SetAuthToken(aliceToken).SetResult(&msg).Delete("/quotes/" + itoa(quote.ID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "Quote deleted successfully", msg.Message)

	resp, err = client.R().SetAuthToken(aliceToken).Delete("/quotes/" + itoa(quote.ID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
}

func TestIntegration_ExpiredTokenChallenged(t *testing.T) {
	env := newTestEnv(t)
	client := newTestClient(t, env)
	registerAndLogin(t, env, "alice")

	past := func() time.Time { return time.Now().Add(-time.Hour) }
	expired, err := env.tokens.WithClock(past).Issue("alice", time.Minute)
	require.NoError(t, err)

	for _, path := range []string{"/me", "/books", "/quotes", "/books/1"} {
		var apiErr handler.ErrorDTO
		resp, err := client.R().SetAuthToken(expired.Token).SetError(&apiErr).Get(path)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode(), path)
		assert.Equal(t, "Bearer", resp.Header().Get("WWW-Authenticate"), path)
		assert.Equal(t, "Could not validate credentials", apiErr.Detail, path)
	}
}

func TestIntegration_CORSPreflight(t *testing.T) {
	client := newTestClient(t, newTestEnv(t))

	resp, err := client.R().
		SetHeader("Origin", "http://localhost:3000").
		SetHeader("Access-Control-Request-Method", http.MethodPost).
		SetHeader("Access-Control-Request-Headers", "authorization,content-type").
		Options("/books")
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, resp.StatusCode())
	assert.Equal(t, "http://localhost:3000", resp.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header().Get("Access-Control-Allow-Credentials"))
	assert.Empty(t, resp.Header().Get("WWW-Authenticate"))
}
