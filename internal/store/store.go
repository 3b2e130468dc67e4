// Package store persists a local journal of sync activity. The journal backs
// the status and activity commands; HubSpot is the system of record and the
// journal is strictly best-effort.
package store

import (
	"context"
	"time"

	"github.com/se-builders/crm-sync/internal/model"
)

// ActivityFilter specifies criteria for listing journal entries.
type ActivityFilter struct {
	Kind   model.ActivityKind `json:"kind,omitempty"`
	Source string             `json:"source,omitempty"`
	Limit  int                `json:"limit,omitempty"`
}

// Store defines the activity journal persistence interface.
type Store interface {
	RecordActivity(ctx context.Context, activity model.Activity) (*model.Activity, error)
	ListActivities(ctx context.Context, filter ActivityFilter) ([]model.Activity, error)
	// CountByKind returns per-kind activity counts within the lookback window.
	CountByKind(ctx context.Context, since time.Time) (map[model.ActivityKind]int, error)

	Migrate(ctx context.Context) error
	Close() error
}
