package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/orgball2608/douyin-parser/internal/metrics"
	"github.com/orgball2608/douyin-parser/internal/ratelimit"
	"github.com/orgball2608/douyin-parser/internal/repositories/resolution"
	"github.com/orgball2608/douyin-parser/internal/resolver"
	"github.com/orgball2608/douyin-parser/pkg/config"
	apperrors "github.com/orgball2608/douyin-parser/pkg/errors"
	"github.com/orgball2608/douyin-parser/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

// resolveTimeout bounds a whole API call, including the upstream fetch.
const resolveTimeout = 45 * time.Second

type Opts struct {
	fx.In

	LC       fx.Lifecycle
	Config   *config.Config
	Logger   logger.Logger
	Resolver resolver.Client
	History  resolution.Repository
	Metrics  *metrics.Metrics
	Registry *prometheus.Registry
	Limiter  ratelimit.Limiter
}

type Server struct {
	resolver resolver.Client
	history  resolution.Repository
	metrics  *metrics.Metrics
	limiter  ratelimit.Limiter
	logger   logger.Logger
	handler  http.Handler
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type statsResponse struct {
	ContentID   string `json:"content_id"`
	Resolutions int64  `json:"resolutions"`
}

func New(opts Opts) *Server {
	s := &Server{
		resolver: opts.Resolver,
		history:  opts.History,
		metrics:  opts.Metrics,
		limiter:  opts.Limiter,
		logger:   opts.Logger.WithComponent("HTTPServer"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /api/v1/resolve", s.handleResolve)
	mux.HandleFunc("GET /api/v1/history/{contentID}", s.handleHistory)
	s.handler = mux

	if opts.LC != nil {
		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Config.App.Port),
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
		opts.LC.Append(fx.Hook{
			OnStart: func(context.Context) error {
				ln, err := net.Listen("tcp", srv.Addr)
				if err != nil {
					return err
				}
				s.logger.Info(fmt.Sprintf("Starting server on %s", srv.Addr))
				go func() {
					if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
						s.logger.Error("Server stopped unexpectedly", "error", err)
					}
				}()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				return srv.Shutdown(ctx)
			},
		})
	}

	return s
}

// Handler exposes the routes, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte("ok")); err != nil {
		s.logger.Error("Failed to write response", "error", err)
	}
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow(clientIP(r)) {
		s.metrics.ObserveRateLimited()
		s.writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "rate limit exceeded"})
		return
	}

	shareURL, err := resolver.ExtractShareURL(r.URL.Query().Get("url"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), resolveTimeout)
	defer cancel()

	record, err := s.resolver.Resolve(ctx, shareURL)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	contentID := r.PathValue("contentID")

	count, err := s.history.CountByContentID(r.Context(), contentID)
	if err != nil {
		s.logger.Error("Failed to read history", "content_id", contentID, "error", err)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "history unavailable"})
		return
	}

	s.writeJSON(w, http.StatusOK, statsResponse{ContentID: contentID, Resolutions: count})
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case apperrors.IsInvalidInput(err):
		status = http.StatusBadRequest
	case apperrors.IsResolution(err):
		status = http.StatusUnprocessableEntity
	case apperrors.IsNetwork(err):
		status = http.StatusBadGateway
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error(), Code: apperrors.GetCode(err)})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to write response", "error", err)
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
