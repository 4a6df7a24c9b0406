package main

import (
	"context"
	"ejbctx/internal/core/app"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type healthStatus struct {
	Status     string `json:"status"`
	Interfaces int    `json:"interfaces"`
	Error      string `json:"error,omitempty"`
}

// metricsServer exposes /metrics and a /health check backed by the context store.
type metricsServer struct {
	addr   string
	app    *app.App
	server *http.Server
}

func newMetricsServer(addr string, a *app.App) *metricsServer {
	return &metricsServer{addr: addr, app: a}
}

func (s *metricsServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		status := s.check(r.Context())
		w.Header().Set("Content-Type", "application/json")
		if status.Status != "up" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(status)
	})
	return mux
}

func (s *metricsServer) check(ctx context.Context) healthStatus {
	if s.app == nil || s.app.Store == nil {
		return healthStatus{Status: "up"}
	}
	names, err := s.app.Store.InterfaceNames(ctx)
	if err != nil {
		return healthStatus{Status: "down", Error: err.Error()}
	}
	return healthStatus{Status: "up", Interfaces: len(names)}
}

// Start binds the listener synchronously so address errors surface to the caller.
func (s *metricsServer) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.server = &http.Server{Handler: s.handler()}

	slog.Info("metrics server starting", "addr", ln.Addr().String())
	go func() {
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics server failed", "error", err)
		}
	}()
	return nil
}

func (s *metricsServer) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
