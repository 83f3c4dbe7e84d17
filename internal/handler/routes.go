package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/msomdec/shelfnotes/internal/service"
)

// Services bundles the application services the router dispatches to.
type Services struct {
	Auth   *service.AuthService
	Books  *service.BookService
	Quotes *service.QuoteService
}

// NewRouter builds the HTTP handler for the whole API.
func NewRouter(svc Services, corsOrigins []string) http.Handler {
	authHandler := NewAuthHandler(svc.Auth)
	bookHandler := NewBookHandler(svc.Books)
	quoteHandler := NewQuoteHandler(svc.Quotes)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(RequestLogger)
	r.Use(Recoverer)
	r.Use(CORS(corsOrigins))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Get("/", HandleRoot)
	r.Get("/healthz", HandleHealthz)
	r.Post("/register", authHandler.HandleRegister)
	r.Post("/login", authHandler.HandleLogin)

	r.Group(func(r chi.Router) {
		r.Use(RequireAuth(svc.Auth))

		r.Get("/me", authHandler.HandleMe)

		r.Route("/books", func(r chi.Router) {
			r.Get("/", bookHandler.HandleList)
			r.Post("/", bookHandler.HandleCreate)
			r.Get("/{id}", bookHandler.HandleGet)
			r.Put("/{id}", bookHandler.HandleUpdate)
			r.Delete("/{id}", bookHandler.HandleDelete)
		})

		r.Route("/quotes", func(r chi.Router) {
			r.Get("/", quoteHandler.HandleList)
			r.Post("/", quoteHandler.HandleCreate)
			r.Get("/{id}", quoteHandler.HandleGet)
			r.Put("/{id}", quoteHandler.HandleUpdate)
			r.Delete("/{id}", quoteHandler.HandleDelete)
		})
	})

	return SecurityHeaders(r)
}
