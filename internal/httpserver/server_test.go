package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tinytelemetry/quiniela/internal/model"
	"github.com/tinytelemetry/quiniela/internal/refresh"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, status refresh.Status) (*refresh.StatusBoard, http.Handler) {
	t.Helper()
	board := refresh.NewStatusBoard()
	board.Publish(status)

	reg := prometheus.NewRegistry()
	metrics := refresh.NewMetrics(reg)
	metrics.RecordFetch(model.RegionCurrent, nil, 20*time.Millisecond)

	srv := NewServer("", board, reg)
	return board, srv.Handler()
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	rendered := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	_, h := newTestServer(t, refresh.Status{
		Visible: true,
		Regions: []refresh.RegionStatus{
			{Region: "current", State: "content", LastRenderedAt: rendered},
			{Region: "monthly", State: "loading", InFlight: 1},
		},
	})

	w := get(t, h, "/api/health")
	if w.Code != http.StatusOK {
		t.Fatalf("health status = %d, want %d", w.Code, http.StatusOK)
	}

	var body struct {
		Status  string                    `json:"status"`
		Visible bool                      `json:"visible"`
		Regions map[string]map[string]any `json:"regions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal health: %v", err)
	}
	if body.Status != "ok" || !body.Visible {
		t.Errorf("health = %+v", body)
	}
	if body.Regions["current"]["last_rendered_at"] != "2026-03-01T12:00:00Z" {
		t.Errorf("current = %v", body.Regions["current"])
	}
	if body.Regions["monthly"]["in_flight"] != true {
		t.Errorf("monthly = %v", body.Regions["monthly"])
	}
}

func TestHealthEndpoint_Degraded(t *testing.T) {
	_, h := newTestServer(t, refresh.Status{
		Regions: []refresh.RegionStatus{
			{Region: "recommendations", State: "error", LastError: "disabled", ConsecutiveErrors: 2},
		},
	})

	var body map[string]any
	if err := json.Unmarshal(get(t, h, "/api/health").Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal health: %v", err)
	}
	if body["status"] != "degraded" {
		t.Errorf("status = %v, want degraded", body["status"])
	}
}

func TestHealthEndpoint_WrongMethod(t *testing.T) {
	_, h := newTestServer(t, refresh.Status{})

	req := httptest.NewRequest(http.MethodPost, "/api/health", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed && w.Code != http.StatusNotFound {
		t.Errorf("health POST status = %d, want 405 or 404", w.Code)
	}
}

func TestStatusEndpoint_FollowsBoard(t *testing.T) {
	board, h := newTestServer(t, refresh.Status{Visible: true})
	board.Publish(refresh.Status{Visible: false, CurrentTimer: false, FullTimer: true})

	var snap refresh.Status
	if err := json.Unmarshal(get(t, h, "/api/status").Body.Bytes(), &snap); err != nil {
		t.Fatalf("unmarshal status: %v", err)
	}
	if snap.Visible || snap.CurrentTimer || !snap.FullTimer {
		t.Errorf("status = %+v", snap)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	_, h := newTestServer(t, refresh.Status{})

	w := get(t, h, "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `quiniela_fetches_total{outcome="ok",region="current"} 1`) {
		t.Errorf("metrics output missing fetch counter:\n%s", w.Body.String())
	}
}

func TestServer_StartStop(t *testing.T) {
	srv := NewServer("127.0.0.1:0", refresh.NewStatusBoard(), nil)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	resp, err := http.Get("http://" + srv.Addr() + "/api/health")
	if err != nil {
		t.Fatalf("GET health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if err := srv.Stop(); err != nil {
		t.Errorf("Stop: %v", err)
	}
}
