package refresh

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tinytelemetry/quiniela/internal/apiclient"
	"github.com/tinytelemetry/quiniela/internal/model"
)

// Metrics collects Prometheus metrics for region refreshes. A nil *Metrics
// records nothing.
type Metrics struct {
	fetchesTotal  *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	skippedTotal  *prometheus.CounterVec
	staleTotal    *prometheus.CounterVec
	inFlight      *prometheus.GaugeVec
	lastSuccess   *prometheus.GaugeVec
}

// NewMetrics registers the refresh metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		fetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quiniela_fetches_total",
				Help: "Completed region fetches by outcome",
			},
			[]string{"region", "outcome"},
		),
		fetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quiniela_fetch_duration_seconds",
				Help:    "Region fetch duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"region"},
		),
		skippedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quiniela_refresh_skipped_total",
				Help: "Refreshes skipped because a fetch was already in flight",
			},
			[]string{"region"},
		),
		staleTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quiniela_stale_responses_total",
				Help: "Responses dropped because a newer one was already rendered",
			},
			[]string{"region"},
		),
		inFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "quiniela_fetches_in_flight",
				Help: "Region fetches currently in flight",
			},
			[]string{"region"},
		),
		lastSuccess: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "quiniela_last_success_timestamp_seconds",
				Help: "Unix time of the last successful render per region",
			},
			[]string{"region"},
		),
	}
}

// Outcome classifies a fetch result for labeling.
func Outcome(err error) string {
	var (
		appErr   *apiclient.ApplicationError
		shapeErr *apiclient.DataShapeError
		tErr     *apiclient.TransportError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.As(err, &appErr):
		return "application_error"
	case errors.As(err, &shapeErr):
		return "data_shape_error"
	case errors.As(err, &tErr):
		return "transport_error"
	default:
		return "error"
	}
}

// RecordFetch records a completed fetch.
func (m *Metrics) RecordFetch(region model.Region, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.fetchesTotal.WithLabelValues(region.String(), Outcome(err)).Inc()
	m.fetchDuration.WithLabelValues(region.String()).Observe(elapsed.Seconds())
}

// RecordSkipped records a refresh dropped by the overlap guard.
func (m *Metrics) RecordSkipped(region model.Region) {
	if m == nil {
		return
	}
	m.skippedTotal.WithLabelValues(region.String()).Inc()
}

// RecordStale records a response dropped by the sequence guard.
func (m *Metrics) RecordStale(region model.Region) {
	if m == nil {
		return
	}
	m.staleTotal.WithLabelValues(region.String()).Inc()
}

// UpdateInFlight sets the number of outstanding fetches for region.
func (m *Metrics) UpdateInFlight(region model.Region, count int) {
	if m == nil {
		return
	}
	m.inFlight.WithLabelValues(region.String()).Set(float64(count))
}

// MarkRendered records a successful render time.
func (m *Metrics) MarkRendered(region model.Region, at time.Time) {
	if m == nil {
		return
	}
	m.lastSuccess.WithLabelValues(region.String()).Set(float64(at.Unix()))
}
