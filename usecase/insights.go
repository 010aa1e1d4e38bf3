package usecase

import (
	"context"
	"fmt"

	"main/model"
)

// patternWeeks is how far back the engine looks for habitual patterns.
const patternWeeks = 8

// PatternSummary describes longer-horizon habits observed in the history.
type PatternSummary struct {
	MostProductiveDay string         `json:"most_productive_day"`
	PreferredPriority model.Priority `json:"preferred_priority"`
	WeekOverWeekDelta int            `json:"week_over_week_delta"`
}

// RecommendationEngine compares the requested week against the prior week
// and against historical patterns, producing templated advice. Rules fire
// independently; an empty result is replaced with a positive affirmation.
type RecommendationEngine struct {
	resolver *WeekResolver
	agg      *Aggregator
	facts    FactSource
	store    SnapshotStore
}

func NewRecommendationEngine(resolver *WeekResolver, agg *Aggregator, facts FactSource, store SnapshotStore) *RecommendationEngine {
	return &RecommendationEngine{resolver: resolver, agg: agg, facts: facts, store: store}
}

// Insights evaluates all rules for the week at the given offset.
func (e *RecommendationEngine) Insights(ctx context.Context, userID string, offset int) ([]model.Recommendation, PatternSummary, error) {
	window, err := e.resolver.ResolveOffset(offset)
	if err != nil {
		return nil, PatternSummary{}, err
	}

	current, _, err := e.agg.WeeklySnapshot(ctx, userID, window)
	if err != nil {
		return nil, PatternSummary{}, err
	}

	var previous *model.WeeklySnapshot
	if prevWindow, err := e.resolver.ResolveOffset(offset - 1); err == nil {
		previous, _, err = e.agg.WeeklySnapshot(ctx, userID, prevWindow)
		if err != nil {
			return nil, PatternSummary{}, err
		}
	}

	historyStart := window.Start.AddDate(0, 0, -7*(patternWeeks-1))
	history, err := e.facts.FactsInRange(ctx, userID, historyStart, window.End)
	if err != nil {
		return nil, PatternSummary{}, computeFailed("fetching completion history", err)
	}

	stats, err := e.store.GetSnapshot(ctx, userID)
	if err != nil {
		return nil, PatternSummary{}, computeFailed("loading stats snapshot", err)
	}

	pattern := summarizePatterns(history, current, previous)
	recs := BuildRecommendations(current, previous, historyHighShare(history), stats)
	return recs, pattern, nil
}

// BuildRecommendations is the pure rule evaluator.
func BuildRecommendations(current, previous *model.WeeklySnapshot, historyHighShare float64, stats *model.UserStatsSnapshot) []model.Recommendation {
	var recs []model.Recommendation

	if previous != nil && current.TotalCompleted < previous.TotalCompleted {
		delta := previous.TotalCompleted - current.TotalCompleted
		recs = append(recs, model.Recommendation{
			Icon:    "📉",
			Title:   "Productivity dipped",
			Message: fmt.Sprintf("You completed %d fewer tasks than the week before.", delta),
			Action:  "Review what got in the way this week",
		})
	}

	if historyHighShare > 0 {
		currentShare := prioritySnapshotShare(current, model.PriorityHigh)
		if currentShare < historyHighShare/2 {
			recs = append(recs, model.Recommendation{
				Icon:    "🎯",
				Title:   "Tackle important work",
				Message: "High-priority tasks made up a smaller share of your completions than usual.",
				Action:  "Pick one high-priority task to finish first tomorrow",
			})
		}
	}

	if stats != nil && stats.CurrentStreakDays == 0 && stats.LongestStreakDays > 3 {
		recs = append(recs, model.Recommendation{
			Icon:    "🔥",
			Title:   "Restart your streak",
			Message: fmt.Sprintf("Your longest streak was %d days. Complete one task today to start a new one.", stats.LongestStreakDays),
			Action:  "Complete any task today",
		})
	}

	if len(recs) == 0 {
		recs = append(recs, model.Recommendation{
			Icon:    "🌟",
			Title:   "You're on track",
			Message: "No course corrections needed. Keep up the steady work.",
		})
	}
	return recs
}

func summarizePatterns(history []*model.CompletionFact, current, previous *model.WeeklySnapshot) PatternSummary {
	byWeekday := make(map[string]int)
	byPriority := make(map[model.Priority]int)
	for _, fact := range history {
		byWeekday[fact.CompletedAt.Weekday().String()]++
		if fact.Priority != "" {
			byPriority[fact.Priority]++
		}
	}

	summary := PatternSummary{}
	bestDay := 0
	for day, count := range byWeekday {
		if count > bestDay || (count == bestDay && summary.MostProductiveDay > day) {
			bestDay = count
			summary.MostProductiveDay = day
		}
	}

	bestPriority := 0
	for priority, count := range byPriority {
		if count > bestPriority || (count == bestPriority && summary.PreferredPriority > priority) {
			bestPriority = count
			summary.PreferredPriority = priority
		}
	}

	if previous != nil {
		summary.WeekOverWeekDelta = current.TotalCompleted - previous.TotalCompleted
	}
	return summary
}

func historyHighShare(history []*model.CompletionFact) float64 {
	if len(history) == 0 {
		return 0
	}
	high := 0
	for _, fact := range history {
		if fact.Priority == model.PriorityHigh {
			high++
		}
	}
	return float64(high) / float64(len(history))
}

func prioritySnapshotShare(snapshot *model.WeeklySnapshot, priority model.Priority) float64 {
	if snapshot.TotalCompleted == 0 {
		return 0
	}
	return float64(snapshot.PriorityBreakdown[priority]) / float64(snapshot.TotalCompleted)
}
