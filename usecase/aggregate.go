package usecase

import (
	"context"

	"main/model"
)

// Aggregator buckets completion facts by day, priority and group within a
// window. Every endpoint projection is built on top of it so numbers never
// disagree between endpoints.
type Aggregator struct {
	facts  FactSource
	groups GroupDirectory
}

func NewAggregator(facts FactSource, groups GroupDirectory) *Aggregator {
	return &Aggregator{facts: facts, groups: groups}
}

// WeeklySnapshot fetches the facts for the window and aggregates them. The
// facts are returned alongside the snapshot so the weekly review endpoint can
// ship both without a second query.
func (a *Aggregator) WeeklySnapshot(ctx context.Context, userID string, window model.WeekWindow) (*model.WeeklySnapshot, []*model.CompletionFact, error) {
	facts, err := a.facts.FactsInRange(ctx, userID, window.Start, window.End)
	if err != nil {
		return nil, nil, computeFailed("fetching completions", err)
	}

	groups, err := a.groups.GroupsByUser(ctx, userID)
	if err != nil {
		return nil, nil, computeFailed("fetching groups", err)
	}

	return BuildWeeklySnapshot(window, facts, groups), facts, nil
}

// BuildWeeklySnapshot is the pure aggregation core: same window and facts in,
// same snapshot out. Facts outside the window are ignored.
func BuildWeeklySnapshot(window model.WeekWindow, facts []*model.CompletionFact, groups map[string]model.Group) *model.WeeklySnapshot {
	snapshot := &model.WeeklySnapshot{
		Window:            window,
		PriorityBreakdown: make(map[model.Priority]int),
		GroupBreakdown:    make(map[string]model.GroupStats),
	}

	// One bucket per day across the window, zero counts included.
	index := make(map[string]int)
	for day := StartOfDay(window.Start); !day.After(window.End); day = day.AddDate(0, 0, 1) {
		index[dayKey(day)] = len(snapshot.DailyPattern)
		snapshot.DailyPattern = append(snapshot.DailyPattern, model.DailyBucket{Date: day})
	}

	loc := window.Start.Location()
	for _, fact := range facts {
		at := fact.CompletedAt.In(loc)
		i, ok := index[dayKey(at)]
		if !ok || at.Before(window.Start) || at.After(window.End) {
			continue
		}

		snapshot.TotalCompleted++
		snapshot.DailyPattern[i].Count++
		snapshot.DailyPattern[i].TotalMinutes += fact.EstimatedMinutes
		snapshot.TotalTimeMinutes += fact.EstimatedMinutes

		if fact.Priority != "" {
			snapshot.PriorityBreakdown[fact.Priority]++
		}

		key := fact.GroupID
		if key == "" {
			key = model.UngroupedKey
		}
		entry := snapshot.GroupBreakdown[key]
		entry.Count++
		if group, ok := groups[fact.GroupID]; ok {
			entry.Name = group.Name
			entry.Color = group.Color
			entry.Icon = group.Icon
		}
		snapshot.GroupBreakdown[key] = entry
	}

	return snapshot
}
