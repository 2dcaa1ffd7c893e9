package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"uavi-backend/application/services"
	"uavi-backend/infrastructure/config"
	"uavi-backend/interfaces/http/rest/handlers"
	"uavi-backend/interfaces/http/rest/middleware"
	"uavi-backend/pkg/observability"
)

// Router creates and configures the HTTP router
type Router struct {
	service *services.KernelService
	cfg     *config.Config
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewRouter creates a new router instance
func NewRouter(
	service *services.KernelService,
	cfg *config.Config,
	logger *zap.Logger,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		service: service,
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	router.Use(middleware.Instrument(rt.metrics))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Method(http.MethodGet, "/metrics", rt.metrics.Handler())

	// API v1 routes
	router.Route("/api/v1", func(r chi.Router) {
		proposalHandler := handlers.NewProposalHandler(rt.service, rt.logger)
		r.Post("/proposals", proposalHandler.Propose)

		graphHandler := handlers.NewGraphHandler(rt.service, rt.logger)
		traversalHandler := handlers.NewTraversalHandler(rt.service, rt.logger)
		r.Route("/nodes", func(r chi.Router) {
			r.Get("/{nodeID}", graphHandler.GetNode)
			r.Get("/{nodeID}/context", traversalHandler.GetContext)
			r.Get("/{nodeID}/chain", traversalHandler.GetReasoningChain)
		})

		r.Route("/graph", func(r chi.Router) {
			r.Get("/", graphHandler.GetSnapshot)
			r.Get("/versions", graphHandler.GetVersions)
			r.Post("/reset", graphHandler.Reset)
		})

		queryHandler := handlers.NewQueryHandler(rt.service, rt.logger)
		r.Get("/search", queryHandler.Search)

		insightHandler := handlers.NewInsightHandler(rt.service, rt.logger)
		r.Get("/insights", insightHandler.Detect)
	})

	return router
}

// healthCheck responds to health probes
func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
