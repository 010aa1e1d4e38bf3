package usecase

import (
	"context"
	"fmt"

	"main/model"
)

const (
	minTrendWeeks = 1
	maxTrendWeeks = 12
)

// TrendAnalyzer runs the week resolver over N consecutive weekly windows and
// summarizes the series. It only needs completion counts, so it streams
// per-window count queries instead of materializing facts.
type TrendAnalyzer struct {
	resolver *WeekResolver
	facts    FactSource
}

func NewTrendAnalyzer(resolver *WeekResolver, facts FactSource) *TrendAnalyzer {
	return &TrendAnalyzer{resolver: resolver, facts: facts}
}

// Analyze returns one trend point per week, oldest first, plus a summary.
// weeks must be within [1,12].
func (t *TrendAnalyzer) Analyze(ctx context.Context, userID string, weeks int) ([]model.TrendPoint, model.TrendSummary, error) {
	if weeks < minTrendWeeks || weeks > maxTrendWeeks {
		return nil, model.TrendSummary{}, NewValidationError("weeks",
			fmt.Sprintf("must be between %d and %d", minTrendWeeks, maxTrendWeeks))
	}

	points := make([]model.TrendPoint, 0, weeks)
	total := 0
	for i := weeks - 1; i >= 0; i-- {
		window, err := t.resolver.ResolveOffset(-i)
		if err != nil {
			return nil, model.TrendSummary{}, err
		}
		count, err := t.facts.CountInRange(ctx, userID, window.Start, window.End)
		if err != nil {
			return nil, model.TrendSummary{}, computeFailed("counting completions", err)
		}
		points = append(points, model.TrendPoint{
			WeekLabel: weekLabel(window),
			WeekStart: window.Start,
			Completed: count,
		})
		total += count
	}

	// Ties go to the most recent week, hence >= while scanning oldest first.
	best := points[0]
	for _, p := range points[1:] {
		if p.Completed >= best.Completed {
			best = p
		}
	}

	summary := model.TrendSummary{
		AverageCompletion: roundTo1(float64(total) / float64(weeks)),
		BestWeek:          best,
		TotalCompleted:    total,
		TotalWeeks:        weeks,
	}
	return points, summary, nil
}

func weekLabel(window model.WeekWindow) string {
	return window.Start.Format("Jan 2") + " - " + window.End.Format("Jan 2")
}
