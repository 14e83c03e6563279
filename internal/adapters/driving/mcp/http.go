package mcp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/expense-tracker/internal/logger"
)

// HTTPLimits configures the token bucket guarding the HTTP transport.
// A zero RequestsPerSecond disables limiting.
type HTTPLimits struct {
	RequestsPerSecond float64
	Burst             int
}

// Handler returns the HTTP surface of the server:
//
//	/         streamable MCP endpoint, rate limited
//	/healthz  liveness probe
//	/metrics  Prometheus metrics
func (s *Server) Handler(limits HTTPLimits) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestLogger)
	r.Use(recoverer)
	r.Use(s.metrics.middleware)

	r.Get("/healthz", healthz)
	r.Handle("/metrics", s.metrics.handler())

	var endpoint http.Handler = mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)
	if limits.RequestsPerSecond > 0 {
		burst := max(limits.Burst, 1)
		endpoint = s.rateLimit(rate.NewLimiter(rate.Limit(limits.RequestsPerSecond), burst), endpoint)
	}
	r.Handle("/", endpoint)

	return r
}

// RunHTTP starts the MCP server over HTTP on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string, limits HTTPLimits) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(limits),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	logger.Info("MCP HTTP transport listening on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) rateLimit(limiter *rate.Limiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			s.metrics.rateLimited.Inc()
			logger.Warn("rate limit exceeded for %s %s (request %s)",
				r.Method, r.URL.Path, chimw.GetReqID(r.Context()))
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n")) //nolint:errcheck
}

// requestLogger logs each request at debug level.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		logger.Debug("%s %s -> %d (%d bytes, %s, request %s)",
			r.Method, r.URL.Path, ww.Status(), ww.BytesWritten(),
			time.Since(start), chimw.GetReqID(r.Context()))
	})
}

// recoverer turns a handler panic into a 500 and a warning.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Warn("panic serving %s %s (request %s): %v",
					r.Method, r.URL.Path, chimw.GetReqID(r.Context()), rec)
				w.WriteHeader(http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
