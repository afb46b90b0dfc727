package apiclient_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/tinytelemetry/quiniela/internal/apiclient"
	"github.com/tinytelemetry/quiniela/internal/fixtureapi"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const fixture = `
endpoints:
  /current:
    body:
      success: true
      data:
        Madrid: [["Draw A", "12"], ["Draw B", "7"]]
        Lisbon: "No data"
  /analytics/monthly:
    body:
      success: true
      data:
        total_draws: 20
        statistics: {total_unique_numbers: 14, avg_frequency: 1.43}
        most_frequent:
          - {numero: "32", frequency: 3, percentage: 15}
  /recommendations:
    body:
      success: false
      error: "Endpoint removed: recommendations disabled"
`

func startFixture(t *testing.T, src string) *apiclient.Client {
	t.Helper()
	fx, err := fixtureapi.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	ts := httptest.NewServer(fixtureapi.NewServer("", fx).Handler())
	t.Cleanup(ts.Close)
	return apiclient.New(ts.URL + fixtureapi.PathPrefix)
}

func TestRoundtrip(t *testing.T) {
	client := startFixture(t, fixture)
	ctx := context.Background()

	current, err := client.CurrentResults(ctx)
	if err != nil {
		t.Fatalf("CurrentResults: %v", err)
	}
	if got := current.Locations(); len(got) != 2 || got[0] != "Madrid" || got[1] != "Lisbon" {
		t.Fatalf("locations = %v, want [Madrid Lisbon]", got)
	}

	monthly, err := client.MonthlyStats(ctx)
	if err != nil {
		t.Fatalf("MonthlyStats: %v", err)
	}
	if monthly.TotalDraws != 20 || !monthly.HasStatistics() || len(monthly.MostFrequent) != 1 {
		t.Fatalf("monthly = %+v", monthly)
	}
	if monthly.MostFrequent[0].Number != "32" {
		t.Errorf("most frequent number = %q, want 32", monthly.MostFrequent[0].Number)
	}
}

func TestApplicationError(t *testing.T) {
	client := startFixture(t, fixture)

	_, err := client.Recommendations(context.Background())
	var appErr *apiclient.ApplicationError
	if !errors.As(err, &appErr) {
		t.Fatalf("err = %v (%T), want ApplicationError", err, err)
	}
	if appErr.Message != "Endpoint removed: recommendations disabled" {
		t.Errorf("message = %q", appErr.Message)
	}
}

func TestTransportError_Status(t *testing.T) {
	client := startFixture(t, `
endpoints:
  /current:
    status: 410
    body: {success: false, error: gone}
`)

	_, err := client.CurrentResults(context.Background())
	var tErr *apiclient.TransportError
	if !errors.As(err, &tErr) {
		t.Fatalf("err = %v (%T), want TransportError", err, err)
	}
	if tErr.StatusCode != http.StatusGone {
		t.Errorf("status = %d, want 410", tErr.StatusCode)
	}
}

func TestTransportError_Network(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	client := apiclient.New(url)
	_, err := client.Fetch(context.Background(), "/current")
	var tErr *apiclient.TransportError
	if !errors.As(err, &tErr) {
		t.Fatalf("err = %v (%T), want TransportError", err, err)
	}
	if tErr.StatusCode != 0 || tErr.Err == nil {
		t.Errorf("transport error = %+v, want underlying network error", tErr)
	}
}

func TestTransportError_BadJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": tru`))
	}))
	t.Cleanup(ts.Close)

	_, err := apiclient.New(ts.URL).Fetch(context.Background(), "/current")
	var tErr *apiclient.TransportError
	if !errors.As(err, &tErr) {
		t.Fatalf("err = %v (%T), want TransportError", err, err)
	}
}

func TestDataShapeError(t *testing.T) {
	client := startFixture(t, `
endpoints:
  /analytics/monthly:
    body:
      success: true
      data: {total_draws: 3, statistics: "broken"}
  /current:
    body:
      success: true
      data: [1, 2, 3]
`)

	var shapeErr *apiclient.DataShapeError
	if _, err := client.MonthlyStats(context.Background()); !errors.As(err, &shapeErr) {
		t.Fatalf("monthly err = %v (%T), want DataShapeError", err, err)
	}
	if _, err := client.CurrentResults(context.Background()); !errors.As(err, &shapeErr) {
		t.Fatalf("current err = %v (%T), want DataShapeError", err, err)
	}
}

func TestFetch_DisablesCaching(t *testing.T) {
	var cacheControl, pragma, method string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cacheControl = r.Header.Get("Cache-Control")
		pragma = r.Header.Get("Pragma")
		method = r.Method
		w.Write([]byte(`{"success": true, "data": {}}`))
	}))
	t.Cleanup(ts.Close)

	if _, err := apiclient.New(ts.URL + "/").Fetch(context.Background(), "/current"); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if method != http.MethodGet {
		t.Errorf("method = %s, want GET", method)
	}
	if cacheControl != "no-cache, no-store" {
		t.Errorf("Cache-Control = %q", cacheControl)
	}
	if pragma != "no-cache" {
		t.Errorf("Pragma = %q", pragma)
	}
}

func TestFetch_ContextCancelled(t *testing.T) {
	client := startFixture(t, fixture)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.CurrentResults(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled in chain", err)
	}
}
