package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rivulet-dev/rivulet/internal/errors"
	"github.com/rivulet-dev/rivulet/pkg/render"
)

// PageFunc produces the page data for a request.
type PageFunc func(r *http.Request) (render.PageData, error)

// Middleware is a function that wraps an HTTP handler.
type Middleware func(http.Handler) http.Handler

type page struct {
	pattern string
	fn      PageFunc
}

// Server is the streaming SSR page server.
type Server struct {
	config *Config

	// Registered pages in registration order
	pages []page

	// Middleware applied around every page handler
	middleware []Middleware

	httpServer *http.Server

	logger *slog.Logger
}

// New creates a new Server with the given configuration. A nil config
// uses defaults.
func New(config *Config) *Server {
	if config == nil {
		config = DefaultConfig()
	} else {
		config.fillDefaults()
	}

	return &Server{
		config: config,
		logger: slog.Default().With("component", "server"),
	}
}

// RegisterPage registers a page at the given chi route pattern.
func (s *Server) RegisterPage(pattern string, fn PageFunc) {
	s.pages = append(s.pages, page{pattern: pattern, fn: fn})
}

// Use adds middleware to the server. Middleware wraps every page
// handler in registration order.
func (s *Server) Use(mw Middleware) {
	s.middleware = append(s.middleware, mw)
}

// Pages returns the registered page patterns in registration order.
func (s *Server) Pages() []string {
	patterns := make([]string, len(s.pages))
	for i, p := range s.pages {
		patterns[i] = p.pattern
	}
	return patterns
}

// Handler builds the http.Handler for the registered pages. This is
// the integration point for mounting inside an existing router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	for _, mw := range s.middleware {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	if s.config.EnableMetrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	for _, p := range s.pages {
		r.Get(p.pattern, s.pageHandler(p.fn))
	}

	return r
}

// pageHandler builds the streaming handler for one page.
func (s *Server) pageHandler(fn PageFunc) http.HandlerFunc {
	renderCfg := render.RendererConfig{
		Pretty: s.config.Pretty,
		Indent: s.config.Indent,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data, err := fn(r)
		if err != nil {
			s.logger.Error("page func failed", "path", r.URL.Path, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		tw := &trackingResponseWriter{ResponseWriter: w}
		sr := render.NewStreamingRenderer(tw, renderCfg)
		if err := sr.RenderPage(r.Context(), data); err != nil {
			// Content reaches the client only at section flushes. If
			// the head never flushed the response is still clean and a
			// 500 is possible; after the first flush all that is left
			// is to log and drop the connection mid-stream.
			s.logger.Error("page render failed", "path", r.URL.Path, "error", err)
			if !tw.wrote {
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
			return
		}
	}
}

// trackingResponseWriter records whether any response bytes have been
// committed, so the error path knows if a clean 500 is still possible.
type trackingResponseWriter struct {
	http.ResponseWriter
	wrote bool
}

func (t *trackingResponseWriter) Write(p []byte) (int, error) {
	t.wrote = true
	return t.ResponseWriter.Write(p)
}

func (t *trackingResponseWriter) WriteHeader(code int) {
	t.wrote = true
	t.ResponseWriter.WriteHeader(code)
}

// Flush implements http.Flusher when the underlying writer does.
func (t *trackingResponseWriter) Flush() {
	if f, ok := t.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Run starts the server and blocks until shutdown.
func (s *Server) Run() error {
	if err := s.config.Validate(); err != nil {
		return err
	}
	if len(s.pages) == 0 {
		return errors.New("E080")
	}

	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		ReadTimeout:       s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("server starting", "address", s.config.Address)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return err
		}
		return nil

	case <-shutdown:
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// Config returns the server configuration.
func (s *Server) Config() *Config {
	return s.config
}

// Logger returns the server logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}

// SetLogger sets the server logger.
func (s *Server) SetLogger(logger *slog.Logger) {
	s.logger = logger
}
