package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/m-mizutani/dirhook/pkg/domain/interfaces"
)

// config holds internal HTTP server configuration
type config struct {
	addr          string
	webhookSecret string
	projectName   string
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithWebhookSecret sets the webhook secret
func WithWebhookSecret(secret string) Option {
	return func(c *config) {
		c.webhookSecret = secret
	}
}

// WithProjectName sets the project name reported by /health
func WithProjectName(name string) Option {
	return func(c *config) {
		c.projectName = name
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	webhookUC interfaces.WebhookUseCase,
	structureUC interfaces.StructureUseCase,
	scanUC interfaces.ScanUseCase,
	opts ...Option,
) (*Server, error) {
	// Default configuration
	cfg := &config{
		addr: "localhost:8001",
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	// Health check
	router.Get("/health", healthHandler(cfg.projectName))

	structureHandler := NewStructureHandler(structureUC)
	scanHandler := NewScanHandler(scanUC)
	webhookHandler := NewWebhookHandler(cfg.webhookSecret, webhookUC)

	router.Route("/api", func(r chi.Router) {
		r.Get("/get_structure", structureHandler.GetStructure)
		r.Get("/get_structure/metadata", structureHandler.GetMetadata)
		r.Get("/get_structure/tree", structureHandler.GetTree)
		r.Get("/scan_project", scanHandler.StartScan)
		r.Get("/get_scan_result", scanHandler.GetScanResult)
		r.Post("/webhook", webhookHandler.Handle)
	})

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
