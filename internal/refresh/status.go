package refresh

import (
	"sync"
	"time"

	"github.com/tinytelemetry/quiniela/internal/model"
)

// RegionStatus is a point-in-time view of one region.
type RegionStatus struct {
	Region            string    `json:"region"`
	State             string    `json:"state"`
	InFlight          int       `json:"in_flight"`
	LastRenderedAt    time.Time `json:"last_rendered_at,omitempty"`
	LastError         string    `json:"last_error,omitempty"`
	ConsecutiveErrors int       `json:"consecutive_errors"`
}

// Status is the dashboard-wide snapshot.
type Status struct {
	Visible      bool           `json:"visible"`
	CurrentTimer bool           `json:"current_timer_active"`
	FullTimer    bool           `json:"full_timer_active"`
	Regions      []RegionStatus `json:"regions"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// StatusBoard holds the latest Status for readers outside the update loop.
type StatusBoard struct {
	mu     sync.RWMutex
	status Status
}

// NewStatusBoard returns a board with every region listed and idle.
func NewStatusBoard() *StatusBoard {
	b := &StatusBoard{}
	for _, r := range model.Regions {
		b.status.Regions = append(b.status.Regions, RegionStatus{Region: r.String(), State: "loading"})
	}
	b.status.Visible = true
	return b
}

// Publish replaces the snapshot.
func (b *StatusBoard) Publish(s Status) {
	if b == nil {
		return
	}
	regions := make([]RegionStatus, len(s.Regions))
	copy(regions, s.Regions)
	s.Regions = regions

	b.mu.Lock()
	b.status = s
	b.mu.Unlock()
}

// Snapshot returns a copy of the latest status.
func (b *StatusBoard) Snapshot() Status {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s := b.status
	s.Regions = append([]RegionStatus(nil), b.status.Regions...)
	return s
}

// Healthy reports whether no region is currently failing.
func (s Status) Healthy() bool {
	for _, r := range s.Regions {
		if r.ConsecutiveErrors > 0 {
			return false
		}
	}
	return true
}
