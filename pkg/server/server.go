package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/editkit-dev/editkit/pkg/conversion"
	"github.com/editkit-dev/editkit/pkg/features/image"
	"github.com/editkit-dev/editkit/pkg/middleware"
	"github.com/editkit-dev/editkit/pkg/upload"
)

// Config configures the EditKit server.
type Config struct {
	// Address is the listen address (default ":8080").
	Address string

	// Store enables the /v1/upload endpoint when set.
	Store upload.Store

	// Setup registers conversion handlers for each pass. Defaults to
	// the image feature.
	Setup func(*conversion.Conversion)

	// CheckOrigin validates WebSocket origins. Nil allows same-origin
	// only (the gorilla default).
	CheckOrigin func(r *http.Request) bool

	// MetricsNamespace is the Prometheus namespace (default "editkit").
	MetricsNamespace string

	// ShutdownTimeout bounds graceful shutdown (default 10s).
	ShutdownTimeout time.Duration

	// Logger is the server logger. Nil uses slog.Default().
	Logger *slog.Logger
}

// Server is the EditKit conversion service.
type Server struct {
	config     *Config
	logger     *slog.Logger
	upgrader   websocket.Upgrader
	httpServer *http.Server
}

// New creates a Server with the given configuration.
func New(config *Config) *Server {
	if config == nil {
		config = &Config{}
	}
	if config.Address == "" {
		config.Address = ":8080"
	}
	if config.Setup == nil {
		config.Setup = image.Register
	}
	if config.ShutdownTimeout == 0 {
		config.ShutdownTimeout = 10 * time.Second
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		config: config,
		logger: logger.With("component", "server"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     config.CheckOrigin,
		},
	}
}

// newConversion builds a fresh conversion for one pass or session.
func (s *Server) newConversion() *conversion.Conversion {
	c := conversion.New()
	s.config.Setup(c)
	return c
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logging(s.logger))
	var metricsOpts []middleware.MetricsOption
	if s.config.MetricsNamespace != "" {
		metricsOpts = append(metricsOpts, middleware.WithNamespace(s.config.MetricsNamespace))
	}
	r.Use(middleware.Metrics(metricsOpts...))
	r.Use(middleware.Tracing())

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Post("/v1/upcast", s.handleUpcast)
	r.Post("/v1/roundtrip", s.handleRoundtrip)
	r.Get("/v1/session", s.handleSession)

	if s.config.Store != nil {
		r.Method(http.MethodPost, "/v1/upload", upload.Handler(s.config.Store))
	}

	return r
}

// Start runs the server until Shutdown is called or the listener fails.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.logger.Info("listening", "address", s.config.Address)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
