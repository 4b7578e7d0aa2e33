package api

import (
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nrjt/eduplatform/internal/api/handlers"
	apimiddleware "github.com/nrjt/eduplatform/internal/api/middleware"
	"github.com/nrjt/eduplatform/internal/logging"
	"github.com/nrjt/eduplatform/internal/metrics"
	"github.com/nrjt/eduplatform/internal/portal"
)

// Router represents the HTTP router of the page and the JSON API
type Router struct {
	portal *portal.Portal
}

// NewRouter creates a new router
func NewRouter(p *portal.Portal) *Router {
	return &Router{portal: p}
}

// SetupRoutes configures all routes using modular handlers
func (r *Router) SetupRoutes() *chi.Mux {
	router := chi.NewRouter()

	// Standard middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(logging.Middleware)
	router.Use(metrics.Middleware)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(r.portal)
	catalogHandler := handlers.NewCatalogHandler()
	resourceHandler := handlers.NewResourceHandler(r.portal)
	systemHandler := handlers.NewSystemHandler(r.portal)
	pageHandler := handlers.NewPageHandler(r.portal)

	// Health check and metrics
	router.Get("/health", healthHandler.HealthCheck)
	router.Handle("/metrics", metrics.Handler())

	// Page
	router.Get("/", pageHandler.Index)
	router.Get("/s/{standard}", pageHandler.ShowStandard)
	router.Get("/s/{standard}/{board}", pageHandler.ShowBoard)

	// Synthesized resource paths
	if base := strings.TrimSuffix(r.portal.Config().Paths.ResourceBase, "/"); base != "" {
		router.Handle(base+"/*", handlers.ResourceFiles(r.portal))
	}

	// Page actions, bound to the session cookie
	router.Route("/session", func(session chi.Router) {
		session.Post("/select-standard", pageHandler.SelectStandard)
		session.Post("/select-board", pageHandler.SelectBoard)

		session.Route("/{kind}", func(kind chi.Router) {
			kind.Post("/toggle", pageHandler.Toggle)
			kind.Post("/open-reference", pageHandler.OpenReference)
			kind.Post("/open-file", pageHandler.OpenFile)
			kind.Post("/select-file", pageHandler.SelectFile)
			kind.Post("/create-folder", pageHandler.CreateFolder)
			kind.Post("/submit", pageHandler.Submit)
			kind.Post("/cancel", pageHandler.Cancel)
		})
	})

	// API routes
	router.Route("/api/v1", func(api chi.Router) {
		api.Use(apimiddleware.CORS)

		api.Get("/standards", catalogHandler.ListStandards)

		// Resource operations, the board comes from ?board=
		api.Route("/resources/{standard}/{kind}", func(res chi.Router) {
			res.Get("/", resourceHandler.ListResources)
			res.Post("/", resourceHandler.Upload)
			res.Delete("/{folder}", resourceHandler.DeleteFolder)
		})

		// System operations
		api.Post("/reset", systemHandler.Reset)
		api.Get("/config", systemHandler.GetConfig)
		api.Get("/tables", systemHandler.GetTables)
		api.Get("/tables/{tableName}/count", systemHandler.GetTableCount)
	})

	return router
}
