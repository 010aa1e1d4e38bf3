package usecase

import (
	"context"
	"time"

	"main/model"
)

// fixedClock pins "now" so window math is deterministic.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// testNow is a Thursday; the Monday-start week around it runs
// 2025-10-06 through 2025-10-12, matching the documented example window.
var testNow = time.Date(2025, 10, 9, 15, 4, 5, 0, time.UTC)

func testResolver() *WeekResolver {
	return NewWeekResolver(fixedClock{now: testNow}, DefaultWeekConfig())
}

func fact(userID string, at time.Time, priority model.Priority, groupID string, minutes int) *model.CompletionFact {
	return &model.CompletionFact{
		TaskID:           "task-" + at.Format("20060102T150405"),
		UserID:           userID,
		GroupID:          groupID,
		Priority:         priority,
		CompletedAt:      at,
		EstimatedMinutes: minutes,
	}
}

// fakeFactSource serves range queries from an in-memory fact slice so the
// same data backs aggregation, trends and streak walks consistently.
type fakeFactSource struct {
	facts []*model.CompletionFact
	err   error
}

func (f *fakeFactSource) inRange(userID string, start, end time.Time) []*model.CompletionFact {
	var out []*model.CompletionFact
	for _, fc := range f.facts {
		if fc.UserID != userID {
			continue
		}
		if fc.CompletedAt.Before(start) || fc.CompletedAt.After(end) {
			continue
		}
		out = append(out, fc)
	}
	return out
}

func (f *fakeFactSource) FactsInRange(ctx context.Context, userID string, start, end time.Time) ([]*model.CompletionFact, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.inRange(userID, start, end), nil
}

func (f *fakeFactSource) CountInRange(ctx context.Context, userID string, start, end time.Time) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return len(f.inRange(userID, start, end)), nil
}

func (f *fakeFactSource) DailyCounts(ctx context.Context, userID string, start, end time.Time) (map[string]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	counts := make(map[string]int)
	for _, fc := range f.inRange(userID, start, end) {
		counts[fc.CompletedAt.In(start.Location()).Format("2006-01-02")]++
	}
	return counts, nil
}

type fakeGroupDirectory struct {
	groups map[string]model.Group
	err    error
}

func (f *fakeGroupDirectory) GroupsByUser(ctx context.Context, userID string) (map[string]model.Group, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.groups == nil {
		return map[string]model.Group{}, nil
	}
	return f.groups, nil
}

func (f *fakeGroupDirectory) CountByUser(ctx context.Context, userID string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return len(f.groups), nil
}

type fakeTaskDirectory struct {
	total        int
	completed    int
	overdue      int
	highPriority int
	err          error
}

func (f *fakeTaskDirectory) CountAll(ctx context.Context, userID string) (int, error) {
	return f.total, f.err
}

func (f *fakeTaskDirectory) CountCompleted(ctx context.Context, userID string) (int, error) {
	return f.completed, f.err
}

func (f *fakeTaskDirectory) CountOverdue(ctx context.Context, userID string, now time.Time) (int, error) {
	return f.overdue, f.err
}

func (f *fakeTaskDirectory) CountHighPriorityPending(ctx context.Context, userID string) (int, error) {
	return f.highPriority, f.err
}

type fakeSnapshotStore struct {
	snapshots map[string]*model.UserStatsSnapshot
	upserts   int
	err       error
}

func newFakeSnapshotStore() *fakeSnapshotStore {
	return &fakeSnapshotStore{snapshots: make(map[string]*model.UserStatsSnapshot)}
}

func (f *fakeSnapshotStore) GetSnapshot(ctx context.Context, userID string) (*model.UserStatsSnapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	snapshot, ok := f.snapshots[userID]
	if !ok {
		return nil, nil
	}
	clone := *snapshot
	return &clone, nil
}

func (f *fakeSnapshotStore) UpsertSnapshot(ctx context.Context, snapshot *model.UserStatsSnapshot) error {
	if f.err != nil {
		return f.err
	}
	clone := *snapshot
	f.snapshots[snapshot.UserID] = &clone
	f.upserts++
	return nil
}

func (f *fakeSnapshotStore) AllSnapshots(ctx context.Context) ([]*model.UserStatsSnapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*model.UserStatsSnapshot
	for _, snapshot := range f.snapshots {
		clone := *snapshot
		out = append(out, &clone)
	}
	return out, nil
}
