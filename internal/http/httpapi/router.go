package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"server/internal/http/handlers"
	"server/internal/infra"
	"server/internal/middleware"
)

// NewRouter wires the HTTP surface: session lifecycle, AI text and image
// operations, stock search, artwork binding, exports and static artwork
// serving.
func NewRouter(app *handlers.App, cfg *infra.Config, logger infra.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		middleware.Logger(logger),
		chimw.Recoverer,
		middleware.CORS(cfg.AllowedOrigins),
		middleware.RateLimit(cfg.RateLimitPerMin, time.Minute),
	)

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/sessions", func(r chi.Router) {
		r.Post("/", app.SessionCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", app.SessionGet)
			r.Patch("/", app.SessionPatch)
			r.Delete("/", app.SessionDelete)

			r.Post("/describe", app.PromptDescribe)
			r.Post("/enhance", app.PromptEnhance)
			r.Post("/generate", app.ImagesGenerate)
			r.Get("/search", app.StockSearch)

			r.Post("/artwork", app.ArtworkUpload)
			r.Delete("/artwork", app.ArtworkDelete)

			r.Get("/mesh", app.Mesh)
			r.Get("/screenshot", app.Screenshot)
			r.Get("/bundle", app.Bundle)
		})
	})

	if base := app.Files.BasePath(); base != "" {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.Dir(base)))
		r.Get("/static/*", fileServer.ServeHTTP)
	}

	return r
}
