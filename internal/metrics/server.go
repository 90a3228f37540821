package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mftfind/mftfind/internal/logging"
)

// Server serves /metrics for the duration of a run.
type Server struct {
	http *http.Server
}

// Serve starts an HTTP server on addr exposing reg via promhttp, and
// returns a handle whose Shutdown stops it. A blank addr means metrics
// are disabled; Serve returns a nil *Server in that case.
func Serve(addr string, reg prometheus.Gatherer) (*Server, error) {
	if addr == "" {
		return nil, nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error("metrics server stopped", "addr", addr, "error", err)
		}
	}()

	return &Server{http: srv}, nil
}

// Shutdown stops the metrics server. Safe to call on a nil receiver.
func (s *Server) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}
