package fixtureapi

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// PathPrefix is where fixture endpoints are mounted, matching the backend.
const PathPrefix = "/api"

// Server replays a Fixture over HTTP so the dashboard can run without the
// real backend.
type Server struct {
	addr      string
	fixture   *Fixture
	server    *http.Server
	listener  net.Listener
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time

	mu   sync.Mutex
	hits map[string]int
}

// NewServer creates a fixture server. An empty addr binds 127.0.0.1:5000.
func NewServer(addr string, fx *Fixture) *Server {
	if addr == "" {
		addr = "127.0.0.1:5000"
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:      addr,
		fixture:   fx,
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
		hits:      make(map[string]int),
	}
}

// Handler builds the gin engine serving the fixture.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())

	if _, ok := s.fixture.Endpoints["/health"]; !ok {
		r.GET(PathPrefix+"/health", s.handleHealth)
	}
	for _, path := range s.fixture.Paths() {
		r.GET(PathPrefix+path, s.handleFixture(path))
	}
	return r
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Handler:           s.Handler(),
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
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

// Addr returns the bound address once started, the configured one before.
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
	return s.server.Shutdown(ctx)
}

// Hits returns how many requests an endpoint path has received.
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "quiniela fixture",
		"uptime":    time.Since(s.startTime).String(),
	})
}

func (s *Server) handleFixture(path string) gin.HandlerFunc {
	resp := s.fixture.Endpoints[path]
	return func(c *gin.Context) {
		s.mu.Lock()
		s.hits[path]++
		n := s.hits[path]
		s.mu.Unlock()

		if resp.Delay > 0 {
			timer := time.NewTimer(resp.Delay)
			select {
			case <-timer.C:
			case <-c.Request.Context().Done():
				timer.Stop()
				return
			}
		}

		c.Header("Cache-Control", "no-store")
		if resp.FailEvery > 0 && n%resp.FailEvery == 0 {
			c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "injected failure"})
			return
		}
		c.Data(resp.Status, "application/json; charset=utf-8", resp.Body)
	}
}
