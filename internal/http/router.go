package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/gofinances/internal/auth"
	"github.com/MrJamesThe3rd/gofinances/internal/http/category"
	"github.com/MrJamesThe3rd/gofinances/internal/http/dashboard"
	"github.com/MrJamesThe3rd/gofinances/internal/http/export"
	"github.com/MrJamesThe3rd/gofinances/internal/http/importcsv"
	"github.com/MrJamesThe3rd/gofinances/internal/http/matching"
	"github.com/MrJamesThe3rd/gofinances/internal/http/respond"
	"github.com/MrJamesThe3rd/gofinances/internal/http/transaction"
)

type Handlers struct {
	Categories   *category.Handler
	Transactions *transaction.Handler
	Dashboard    *dashboard.Handler
	Import       *importcsv.Handler
	Export       *export.Handler
	Matching     *matching.Handler
}

func New(tokens *auth.Tokens, allowedOrigins []string, h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(tokens.Middleware)

		r.Route("/categories", h.Categories.Routes)

		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Transactions.Routes(r)
		})

		r.Group(h.Dashboard.Routes)

		r.Route("/import", h.Import.Routes)

		r.Route("/export", h.Export.Routes)

		r.Route("/matching", func(r chi.Router) {
			h.Matching.Routes(r)
		})
	})

	return router
}
