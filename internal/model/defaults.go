package model

import "time"

// Shared defaults used by the dashboard and the fixture server.
const (
	DefaultAPIBase         = "http://127.0.0.1:5000/api"
	DefaultCurrentInterval = 30 * time.Second
	DefaultFullInterval    = 5 * time.Minute
	DefaultRevealStep      = 60 * time.Millisecond
	DefaultRevealMax       = 360 * time.Millisecond
	DefaultDiagnosticsAddr = "127.0.0.1:5090"
	DefaultFixtureAddr     = "127.0.0.1:5000"
)

// Display limits applied by the region renderers.
const (
	MaxFrequentShown        = 10
	MaxRecommendationsShown = 5
)
