// Package server provides the HTTP server for the REST API
package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/nutriplan/v1/internal/infrastructure/config"
	"github.com/nutriplan/v1/internal/infrastructure/http/handlers"
	"github.com/nutriplan/v1/internal/infrastructure/http/middleware"
	"github.com/nutriplan/v1/internal/ports/inbound"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server represents the HTTP server
type Server struct {
	config   *config.Config
	logger   *zap.Logger
	router   *chi.Mux
	server   *http.Server
	handlers *handlers.APIHandlers
	registry *prometheus.Registry
}

// NewServer creates a new HTTP server instance
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	planner inbound.PlannerService,
	assistant inbound.AssistantService,
	video inbound.VideoService,
	feedback inbound.FeedbackService,
) *Server {
	s := &Server{
		config:   cfg,
		logger:   logger,
		handlers: handlers.NewAPIHandlers(planner, assistant, video, feedback, logger),
		registry: prometheus.NewRegistry(),
	}

	s.router = s.setupRouter()

	s.server = &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRouter configures the HTTP router with middleware and routes
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	metrics := middleware.NewMetrics(s.registry)

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	r.Use(middleware.CORS(s.config.Server.AllowedOrigins))
	r.Use(middleware.UserContext())
	r.Use(metrics.Handler())

	// Generation calls can take a while; bounded by the request timeout
	r.Use(chimiddleware.Timeout(s.config.Server.RequestTimeout))
	r.Use(chimiddleware.Compress(5))

	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		s.setupAPIRoutes(r)
	})

	return r
}

// setupAPIRoutes configures REST API routes
func (s *Server) setupAPIRoutes(r chi.Router) {
	h := s.handlers

	r.Route("/meal-plans", func(r chi.Router) {
		r.Post("/generate", h.GenerateMealPlan)
		r.Post("/shopping-list", h.ShoppingList)
		r.Post("/calendar", h.Calendar)

		r.Post("/", h.SavePlan)
		r.Get("/", h.ListPlans)
		r.Get("/favorites", h.ListFavorites)
		r.Get("/{id}", h.GetPlan)
		r.Delete("/{id}", h.DeletePlan)
		r.Put("/{id}/favorite", h.SetFavorite)
	})

	r.Post("/recipes/generate", h.GenerateRecipe)

	r.Post("/assistant", h.Chat)

	r.Route("/videos", func(r chi.Router) {
		r.Post("/", h.GenerateVideo)
		r.Post("/script", h.GenerateVideoScript)
		r.Get("/budget", h.VideoBudget)
	})

	r.Post("/feedback", h.SubmitFeedback)
	r.Get("/feedback", h.ListFeedback)

	r.Get("/health", h.HealthCheck)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
