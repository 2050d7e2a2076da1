package api

import (
	"net/http"

	"github.com/futig/ragdesk/internal/api/docs"
	"github.com/futig/ragdesk/internal/api/middleware"
	"github.com/futig/ragdesk/internal/api/ui"
	"github.com/futig/ragdesk/internal/config"
	"github.com/futig/ragdesk/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(cfg config.ServerConfig, uiHandler *ui.Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Event streams stay open for the life of the page.
	ui.RegisterStreamRoutes(r, uiHandler)

	r.Group(func(r chi.Router) {
		r.Use(chimiddleware.Timeout(cfg.RequestTimeout))

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			response.Success(w, map[string]string{"status": "healthy"})
		})

		docs.RegisterRoutes(r)
		ui.RegisterRoutes(r, uiHandler)
	})

	return r
}
