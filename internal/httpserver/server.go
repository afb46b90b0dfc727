package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tinytelemetry/quiniela/internal/refresh"
)

// StatusSource is the narrow contract the diagnostics API reads from.
type StatusSource interface {
	Snapshot() refresh.Status
}

// Server exposes dashboard health and refresh metrics over HTTP.
type Server struct {
	addr      string
	status    StatusSource
	gatherer  prometheus.Gatherer
	server    *http.Server
	listener  net.Listener
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
}

// NewServer creates a diagnostics server. A nil gatherer disables /metrics.
func NewServer(addr string, status StatusSource, gatherer prometheus.Gatherer) *Server {
	if addr == "" {
		addr = "127.0.0.1:5090"
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:      addr,
		status:    status,
		gatherer:  gatherer,
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
	}
}

// Handler builds the gin engine serving the diagnostics routes.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/api/health", s.handleHealth)
	r.GET("/api/status", s.handleStatus)
	if s.gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}
	return r
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)

	s.server = &http.Server{
		Handler:           s.Handler(),
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = listener
	s.startTime = time.Now()

	go s.server.Serve(listener)
	return nil
}

// Addr returns the bound address once started.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(c *gin.Context) {
	snap := s.status.Snapshot()

	status := "ok"
	if !snap.Healthy() {
		status = "degraded"
	}

	regions := make(gin.H, len(snap.Regions))
	for _, r := range snap.Regions {
		entry := gin.H{
			"state":     r.State,
			"in_flight": r.InFlight > 0,
		}
		if !r.LastRenderedAt.IsZero() {
			entry["last_rendered_at"] = r.LastRenderedAt.Format(time.RFC3339)
		}
		if r.LastError != "" {
			entry["last_error"] = r.LastError
		}
		regions[r.Region] = entry
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  status,
		"uptime":  time.Since(s.startTime).String(),
		"visible": snap.Visible,
		"regions": regions,
	})
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.status.Snapshot())
}
