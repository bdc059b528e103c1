package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"daylog/internal/handlers"
	"daylog/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Journal service.JournalService
	Store   handlers.Pinger
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	journalHandler := handlers.NewJournalHandler(deps.Journal)
	noteHandler := handlers.NewNoteHandler(deps.Journal)
	healthHandler := handlers.NewHealthHandler(deps.Store, deps.Journal)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)
		r.Get("/status", journalHandler.Status)

		r.Route("/metrics", func(r chi.Router) {
			r.Get("/", journalHandler.RecentMetrics)
			r.Post("/sync", journalHandler.SyncMetrics)
		})

		r.Route("/notes", func(r chi.Router) {
			r.Post("/today/ingest", journalHandler.IngestToday)
			r.Post("/backfill", journalHandler.Backfill)
			r.Post("/{day}/ingest", journalHandler.IngestDay)
			r.Method(http.MethodGet, "/{day}", noteHandler)
		})

		r.Post("/entries/categorize", journalHandler.Categorize)
		r.Get("/timeline", journalHandler.Timeline)
		r.Get("/days/{day}", journalHandler.DayDetail)
		r.Post("/credentials/validate", journalHandler.ValidateCredentials)

		r.Get("/vault", journalHandler.VaultStatus)
		r.Delete("/vault", journalHandler.DisconnectVault)
	})

	return r
}
