//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_provider.go -package=mocks daylog/internal/metrics Provider

// Package metrics reconciles biometric data from a provider into the local
// date-keyed store.
package metrics

import (
	"context"

	"daylog/internal/journal"
)

// Provider is a source of per-day biometric summaries.
type Provider interface {
	// IsAvailable reports whether the provider can be queried at all.
	IsAvailable() bool
	// RequestAuthorization asks for read access. It is called once per sync.
	RequestAuthorization(ctx context.Context) error
	// FetchDay returns the summary for day. Fields with no data are nil.
	FetchDay(ctx context.Context, day journal.DateKey) (Snapshot, error)
}

// Snapshot is one day of biometric values as reported by a Provider.
type Snapshot struct {
	Steps            *int
	SleepHours       *float64
	WeightKg         *float64
	RestingHeartRate *int
}
