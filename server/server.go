// Package server - HTTP surface of the application: routes, middleware and graceful shutdown.
package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/nvr-ai/tranquil-trails/models"
	"github.com/nvr-ai/tranquil-trails/pages"
	"github.com/nvr-ai/tranquil-trails/service"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Detector runs a crop model over uploaded image bytes.
type Detector interface {
	Detect(ctx context.Context, crop models.Crop, data []byte) (*service.DetectionResult, error)
}

// Chatter answers one chat prompt.
type Chatter interface {
	Reply(ctx context.Context, prompt string) (string, error)
}

// Config configures the listener.
type Config struct {
	Address         string
	Port            int
	MaxUploadBytes  int64
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Server serves the five pages.
type Server struct {
	cfg      Config
	router   *pages.Router
	detector Detector
	chat     Chatter
	logger   *slog.Logger
	handler  http.Handler
}

// New creates the server and registers its routes.
//
// Arguments:
//   - cfg: The listener configuration.
//   - router: The page renderer.
//   - detector: The detection use case.
//   - chat: The chat use case.
//   - logger: The request logger; nil uses slog.Default().
//
// Returns:
//   - *Server: The server, ready to Run.
func New(cfg Config, router *pages.Router, detector Detector, chat Chatter, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:      cfg,
		router:   router,
		detector: detector,
		chat:     chat,
		logger:   logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /page/{feature}", s.handlePage)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /detect", s.handleDetect)
	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	s.handler = s.logRequests(s.recoverPanics(mux))
	return s
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr is the listen address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Address, strconv.Itoa(s.cfg.Port))
}

// Run listens until ctx is cancelled, then drains in-flight requests within the
// shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr(),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "listen")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		s.logger.Info("server shutting down", "timeout", s.cfg.ShutdownTimeout)
		return errors.Wrap(srv.Shutdown(shutdownCtx), "shutdown")
	})
	return g.Wait()
}
