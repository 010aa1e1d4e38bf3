package usecase

import (
	"context"
	"time"

	"main/model"
)

// FactSource is the read-only feed of completion facts. The analytics engine
// never loads a user's full history; everything goes through bounded range
// queries against this interface.
type FactSource interface {
	FactsInRange(ctx context.Context, userID string, start, end time.Time) ([]*model.CompletionFact, error)
	CountInRange(ctx context.Context, userID string, start, end time.Time) (int, error)
	// DailyCounts returns completion counts keyed by "2006-01-02" day for the
	// given range. Days are calendar days in start's location, so callers and
	// implementations agree on where midnight falls. Days with zero
	// completions are absent from the map.
	DailyCounts(ctx context.Context, userID string, start, end time.Time) (map[string]int, error)
}

// GroupDirectory looks up a user's groups for breakdown decoration.
type GroupDirectory interface {
	GroupsByUser(ctx context.Context, userID string) (map[string]model.Group, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}

// TaskDirectory exposes the task totals the materializer folds into the
// persisted snapshot. Task CRUD itself lives outside this service.
type TaskDirectory interface {
	CountAll(ctx context.Context, userID string) (int, error)
	CountCompleted(ctx context.Context, userID string) (int, error)
	CountOverdue(ctx context.Context, userID string, now time.Time) (int, error)
	CountHighPriorityPending(ctx context.Context, userID string) (int, error)
}

// SnapshotStore persists materialized per-user stats. GetSnapshot returns
// (nil, nil) when the user has never been materialized.
type SnapshotStore interface {
	GetSnapshot(ctx context.Context, userID string) (*model.UserStatsSnapshot, error)
	UpsertSnapshot(ctx context.Context, snapshot *model.UserStatsSnapshot) error
	AllSnapshots(ctx context.Context) ([]*model.UserStatsSnapshot, error)
}
