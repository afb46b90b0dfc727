package model

import "time"

// Region identifies one of the independently refreshed dashboard panels.
type Region int

const (
	RegionCurrent Region = iota
	RegionMonthly
	RegionRecommendations
)

// Regions lists every region in display order.
var Regions = []Region{RegionCurrent, RegionMonthly, RegionRecommendations}

func (r Region) String() string {
	switch r {
	case RegionCurrent:
		return "current"
	case RegionMonthly:
		return "monthly"
	case RegionRecommendations:
		return "recommendations"
	default:
		return "unknown"
	}
}

// Title is the heading shown above the region's surface.
func (r Region) Title() string {
	switch r {
	case RegionCurrent:
		return "Current Results"
	case RegionMonthly:
		return "Monthly Statistics"
	case RegionRecommendations:
		return "Recommendations"
	default:
		return "Unknown"
	}
}

// Endpoint is the API path queried for the region, relative to the base.
func (r Region) Endpoint() string {
	switch r {
	case RegionCurrent:
		return "/current"
	case RegionMonthly:
		return "/analytics/monthly"
	case RegionRecommendations:
		return "/recommendations"
	default:
		return ""
	}
}

// SectionIDs returns the rendering containers owned by the region.
// Monthly statistics render into two containers.
func (r Region) SectionIDs() []string {
	switch r {
	case RegionCurrent:
		return []string{"current-results"}
	case RegionMonthly:
		return []string{"monthly-stats", "frequent-numbers"}
	case RegionRecommendations:
		return []string{"recommendations"}
	default:
		return nil
	}
}

// DefaultInterval is the cadence that drives the region. Monthly and
// recommendations only refresh as part of the full batch.
func (r Region) DefaultInterval() time.Duration {
	if r == RegionCurrent {
		return DefaultCurrentInterval
	}
	return DefaultFullInterval
}
