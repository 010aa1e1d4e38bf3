package usecase

import (
	"context"
	"time"

	"main/model"
)

// Materializer orchestrates aggregation, streaks and scoring for one user and
// upserts the persisted snapshot. The whole snapshot is computed first and
// written with a single atomic replace, so a reader never observes a
// half-updated document and a timed-out request writes nothing.
type Materializer struct {
	clock    Clock
	facts    FactSource
	tasks    TaskDirectory
	groups   GroupDirectory
	store    SnapshotStore
	resolver *WeekResolver
	streaks  *StreakCalculator
	scorer   *Scorer
}

func NewMaterializer(
	clock Clock,
	facts FactSource,
	tasks TaskDirectory,
	groups GroupDirectory,
	store SnapshotStore,
	resolver *WeekResolver,
	streaks *StreakCalculator,
	scorer *Scorer,
) *Materializer {
	return &Materializer{
		clock:    clock,
		facts:    facts,
		tasks:    tasks,
		groups:   groups,
		store:    store,
		resolver: resolver,
		streaks:  streaks,
		scorer:   scorer,
	}
}

// Materialize recomputes and persists the user's stats snapshot. Calling it
// twice with no new facts produces identical output except LastUpdated.
func (m *Materializer) Materialize(ctx context.Context, userID string) (*model.UserStatsSnapshot, error) {
	previous, err := m.store.GetSnapshot(ctx, userID)
	if err != nil {
		return nil, computeFailed("loading previous snapshot", err)
	}
	longestKnown := 0
	if previous != nil {
		longestKnown = previous.LongestStreakDays
	}

	now := m.clock.Now()
	snapshot := &model.UserStatsSnapshot{UserID: userID}

	if snapshot.TotalTasks, err = m.tasks.CountAll(ctx, userID); err != nil {
		return nil, computeFailed("counting tasks", err)
	}
	if snapshot.CompletedTasks, err = m.tasks.CountCompleted(ctx, userID); err != nil {
		return nil, computeFailed("counting completed tasks", err)
	}
	if snapshot.OverdueTasks, err = m.tasks.CountOverdue(ctx, userID, now); err != nil {
		return nil, computeFailed("counting overdue tasks", err)
	}
	if snapshot.HighPriorityTasks, err = m.tasks.CountHighPriorityPending(ctx, userID); err != nil {
		return nil, computeFailed("counting high priority tasks", err)
	}
	if snapshot.TotalGroups, err = m.groups.CountByUser(ctx, userID); err != nil {
		return nil, computeFailed("counting groups", err)
	}

	if snapshot.TotalTasks > 0 {
		snapshot.CompletionRate = float64(snapshot.CompletedTasks) / float64(snapshot.TotalTasks)
	}

	window, err := m.resolver.ResolveOffset(0)
	if err != nil {
		return nil, err
	}
	weekFacts, err := m.facts.FactsInRange(ctx, userID, window.Start, window.End)
	if err != nil {
		return nil, computeFailed("fetching weekly completions", err)
	}
	snapshot.WeeklyCompleted = len(weekFacts)

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if snapshot.MonthlyCompleted, err = m.facts.CountInRange(ctx, userID, monthStart, EndOfDay(now)); err != nil {
		return nil, computeFailed("counting monthly completions", err)
	}

	if snapshot.CurrentStreakDays, err = m.streaks.CurrentStreak(ctx, userID, longestKnown); err != nil {
		return nil, err
	}
	snapshot.LongestStreakDays = longestKnown
	if snapshot.CurrentStreakDays > snapshot.LongestStreakDays {
		snapshot.LongestStreakDays = snapshot.CurrentStreakDays
	}

	snapshot.ProductivityScore = m.scorer.Score(snapshot, weeklyHighShare(weekFacts))
	snapshot.LastUpdated = now

	if err := m.store.UpsertSnapshot(ctx, snapshot); err != nil {
		return nil, computeFailed("persisting snapshot", err)
	}
	return snapshot, nil
}

func weeklyHighShare(facts []*model.CompletionFact) float64 {
	if len(facts) == 0 {
		return 0
	}
	high := 0
	for _, fact := range facts {
		if fact.Priority == model.PriorityHigh {
			high++
		}
	}
	return float64(high) / float64(len(facts))
}
