// Package api serves LDraw to LBCode conversion over HTTP.
//
// Routes:
//
//	GET  /healthz            liveness and build information
//	POST /convert            JSON body with a base64 model, JSON reply
//	POST /api/v1/convert     raw model body (gzip or zstd allowed), binary reply
//	POST /api/v1/inspect     raw LBCode body, decoded JSON reply
package api

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/lbcode/pkg/pipeline"
)

// DefaultMaxUploadBytes caps a model upload when Config leaves it unset.
const DefaultMaxUploadBytes = 10 << 20

// Config configures a Server.
type Config struct {
	Addr            string
	MaxUploadBytes  int64
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Server is the HTTP front end of a pipeline.Runner.
type Server struct {
	cfg            Config
	runner         *pipeline.Runner
	logger         *log.Logger
	maxUploadBytes int64
}

// New creates a server. A nil logger discards output.
func New(cfg Config, runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	return &Server{
		cfg:            cfg,
		runner:         runner,
		logger:         logger,
		maxUploadBytes: cfg.MaxUploadBytes,
	}
}

// Routes returns the router with all routes configured.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(s.requestIDHeader)

	r.MethodNotAllowed(s.handleMethodNotAllowed)
	r.NotFound(s.handleNotFound)

	r.Get("/healthz", s.handleHealth)

	// base64 inflates the model by a third; leave room for the JSON around it.
	r.With(limitBody(s.maxUploadBytes*4/3 + 64<<10)).Post("/convert", s.handleConvertJSON)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(limitBody(s.maxUploadBytes))
		r.Post("/convert", s.handleConvertRaw)
		r.Post("/inspect", s.handleInspect)
	})

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.Routes(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "address", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
