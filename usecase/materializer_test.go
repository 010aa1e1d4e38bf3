package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"main/model"
)

func newTestMaterializer(source *fakeFactSource, tasks *fakeTaskDirectory, groups *fakeGroupDirectory, store *fakeSnapshotStore) *Materializer {
	clock := fixedClock{now: testNow}
	return NewMaterializer(
		clock,
		source,
		tasks,
		groups,
		store,
		testResolver(),
		NewStreakCalculator(source, clock, DefaultStreakConfig()),
		NewScorer(DefaultScoreConfig()),
	)
}

func TestMaterializeBuildsFullSnapshot(t *testing.T) {
	source := &fakeFactSource{facts: []*model.CompletionFact{
		fact("u1", time.Date(2025, 10, 8, 9, 0, 0, 0, time.UTC), model.PriorityHigh, "", 0),
		fact("u1", time.Date(2025, 10, 9, 9, 0, 0, 0, time.UTC), model.PriorityLow, "", 0),
		fact("u1", time.Date(2025, 9, 20, 9, 0, 0, 0, time.UTC), model.PriorityLow, "", 0),
	}}
	tasks := &fakeTaskDirectory{total: 10, completed: 6, overdue: 2, highPriority: 1}
	groups := &fakeGroupDirectory{groups: map[string]model.Group{
		"g1": {GroupID: "g1", Name: "Work"},
	}}
	store := newFakeSnapshotStore()

	snapshot, err := newTestMaterializer(source, tasks, groups, store).Materialize(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Materialize failed: %v", err)
	}

	if snapshot.UserID != "u1" {
		t.Errorf("Expected user u1, got %s", snapshot.UserID)
	}
	if snapshot.TotalTasks != 10 || snapshot.CompletedTasks != 6 {
		t.Errorf("Unexpected task counts: %d/%d", snapshot.CompletedTasks, snapshot.TotalTasks)
	}
	if snapshot.CompletionRate != 0.6 {
		t.Errorf("Expected completion rate 0.6, got %v", snapshot.CompletionRate)
	}
	if snapshot.OverdueTasks != 2 || snapshot.HighPriorityTasks != 1 {
		t.Errorf("Unexpected overdue/high counts: %d/%d", snapshot.OverdueTasks, snapshot.HighPriorityTasks)
	}
	if snapshot.TotalGroups != 1 {
		t.Errorf("Expected 1 group, got %d", snapshot.TotalGroups)
	}

	// Two completions fall in the current week, none in October before it.
	if snapshot.WeeklyCompleted != 2 {
		t.Errorf("Expected 2 weekly completions, got %d", snapshot.WeeklyCompleted)
	}
	// The September completion is outside the current calendar month.
	if snapshot.MonthlyCompleted != 2 {
		t.Errorf("Expected 2 monthly completions, got %d", snapshot.MonthlyCompleted)
	}

	if snapshot.CurrentStreakDays != 2 {
		t.Errorf("Expected streak of 2, got %d", snapshot.CurrentStreakDays)
	}
	if snapshot.LongestStreakDays != 2 {
		t.Errorf("Expected longest streak of 2, got %d", snapshot.LongestStreakDays)
	}

	if snapshot.ProductivityScore <= 0 || snapshot.ProductivityScore > 100 {
		t.Errorf("Score out of range: %v", snapshot.ProductivityScore)
	}
	if !snapshot.LastUpdated.Equal(testNow) {
		t.Errorf("Expected LastUpdated %v, got %v", testNow, snapshot.LastUpdated)
	}

	if store.upserts != 1 {
		t.Errorf("Expected exactly one upsert, got %d", store.upserts)
	}
	persisted, _ := store.GetSnapshot(context.Background(), "u1")
	if persisted == nil || persisted.ProductivityScore != snapshot.ProductivityScore {
		t.Error("Persisted snapshot does not match the returned one")
	}
}

func TestMaterializeIsIdempotent(t *testing.T) {
	source := &fakeFactSource{facts: []*model.CompletionFact{
		fact("u1", time.Date(2025, 10, 9, 9, 0, 0, 0, time.UTC), model.PriorityHigh, "", 0),
	}}
	tasks := &fakeTaskDirectory{total: 4, completed: 1}
	store := newFakeSnapshotStore()
	m := newTestMaterializer(source, tasks, &fakeGroupDirectory{}, store)

	first, err := m.Materialize(context.Background(), "u1")
	if err != nil {
		t.Fatalf("First materialization failed: %v", err)
	}
	second, err := m.Materialize(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Second materialization failed: %v", err)
	}

	if first.ProductivityScore != second.ProductivityScore ||
		first.WeeklyCompleted != second.WeeklyCompleted ||
		first.CurrentStreakDays != second.CurrentStreakDays ||
		first.LongestStreakDays != second.LongestStreakDays ||
		first.CompletionRate != second.CompletionRate {
		t.Errorf("Repeated materialization diverged: %+v vs %+v", first, second)
	}
	if store.upserts != 2 {
		t.Errorf("Expected one upsert per call, got %d", store.upserts)
	}
}

func TestMaterializeLongestStreakNeverShrinks(t *testing.T) {
	source := &fakeFactSource{} // no completions, streak recomputes to 0
	store := newFakeSnapshotStore()
	store.snapshots["u1"] = &model.UserStatsSnapshot{
		UserID:            "u1",
		LongestStreakDays: 15,
	}
	m := newTestMaterializer(source, &fakeTaskDirectory{}, &fakeGroupDirectory{}, store)

	snapshot, err := m.Materialize(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Materialize failed: %v", err)
	}

	if snapshot.CurrentStreakDays != 0 {
		t.Errorf("Expected current streak of 0, got %d", snapshot.CurrentStreakDays)
	}
	if snapshot.LongestStreakDays != 15 {
		t.Errorf("Longest streak shrank from 15 to %d", snapshot.LongestStreakDays)
	}
}

func TestMaterializeZeroTasks(t *testing.T) {
	store := newFakeSnapshotStore()
	m := newTestMaterializer(&fakeFactSource{}, &fakeTaskDirectory{}, &fakeGroupDirectory{}, store)

	snapshot, err := m.Materialize(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Materialize failed: %v", err)
	}
	if snapshot.CompletionRate != 0 {
		t.Errorf("Expected completion rate 0 with no tasks, got %v", snapshot.CompletionRate)
	}
	if snapshot.ProductivityScore != 0 {
		t.Errorf("Expected score 0 for an empty user, got %v", snapshot.ProductivityScore)
	}
}

func TestMaterializeWritesNothingOnFailure(t *testing.T) {
	source := &fakeFactSource{err: errors.New("mongo down")}
	store := newFakeSnapshotStore()
	m := newTestMaterializer(source, &fakeTaskDirectory{}, &fakeGroupDirectory{}, store)

	_, err := m.Materialize(context.Background(), "u1")
	if err == nil {
		t.Fatal("Expected error when facts cannot be fetched")
	}
	var ce *ComputationError
	if !errors.As(err, &ce) {
		t.Errorf("Expected a computation error, got %v", err)
	}
	if store.upserts != 0 {
		t.Errorf("Expected no writes after a failed computation, got %d", store.upserts)
	}
}
