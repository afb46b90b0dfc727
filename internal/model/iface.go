package model

import "context"

// DrawQuerier provides read-only access to the three dashboard regions.
type DrawQuerier interface {
	CurrentResults(ctx context.Context) (CurrentResults, error)
	MonthlyStats(ctx context.Context) (*MonthlyStats, error)
	Recommendations(ctx context.Context) (*Recommendations, error)
}
