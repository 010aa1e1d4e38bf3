package handler

import (
	"math"

	"main/dto"
	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// ReviewHandler serves the weekly review surface. Every endpoint is a thin
// projection over the same aggregation engine so numbers never disagree
// between weekly stats, insights, trends and quick stats.
type ReviewHandler struct {
	resolver *usecase.WeekResolver
	agg      *usecase.Aggregator
	trends   *usecase.TrendAnalyzer
	insights *usecase.RecommendationEngine
	streaks  *usecase.StreakCalculator
	store    usecase.SnapshotStore
	scoreCfg usecase.ScoreConfig
}

func NewReviewHandler(
	resolver *usecase.WeekResolver,
	agg *usecase.Aggregator,
	trends *usecase.TrendAnalyzer,
	insights *usecase.RecommendationEngine,
	streaks *usecase.StreakCalculator,
	store usecase.SnapshotStore,
	scoreCfg usecase.ScoreConfig,
) *ReviewHandler {
	return &ReviewHandler{
		resolver: resolver,
		agg:      agg,
		trends:   trends,
		insights: insights,
		streaks:  streaks,
		store:    store,
		scoreCfg: scoreCfg,
	}
}

// GetWeeklyReview handles GET /api/review/weekly with either ?weekOffset= or
// an explicit ?startDate=&endDate= pair.
func (h *ReviewHandler) GetWeeklyReview(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	var query dto.WeeklyReviewQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.ValidationFailed(c, []utils.FieldError{
			{Field: "query", Message: "invalid query parameters"},
		})
		return
	}

	window, err := h.resolveWindow(query)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	snapshot, facts, err := h.agg.WeeklySnapshot(c.Request.Context(), userID, window)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	if facts == nil {
		facts = []*model.CompletionFact{}
	}

	utils.Success(c, dto.WeeklyReviewResponse{
		Stats: snapshot,
		Tasks: facts,
	})
}

func (h *ReviewHandler) resolveWindow(query dto.WeeklyReviewQuery) (model.WeekWindow, error) {
	if query.StartDate != "" || query.EndDate != "" {
		if query.StartDate == "" {
			return model.WeekWindow{}, usecase.NewValidationError("startDate", "required when endDate is set")
		}
		if query.EndDate == "" {
			return model.WeekWindow{}, usecase.NewValidationError("endDate", "required when startDate is set")
		}
		return h.resolver.ResolveRange(query.StartDate, query.EndDate)
	}

	offset := 0
	if query.WeekOffset != nil {
		offset = *query.WeekOffset
	}
	return h.resolver.ResolveOffset(offset)
}

// GetInsights handles GET /api/review/insights.
func (h *ReviewHandler) GetInsights(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	var query dto.InsightsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.ValidationFailed(c, []utils.FieldError{
			{Field: "weekOffset", Message: "must be an integer"},
		})
		return
	}
	offset := 0
	if query.WeekOffset != nil {
		offset = *query.WeekOffset
	}

	recommendations, patterns, err := h.insights.Insights(c.Request.Context(), userID, offset)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	utils.Success(c, dto.InsightsResponse{
		Recommendations: recommendations,
		Patterns:        patterns,
	})
}

// GetTrends handles GET /api/review/trends?weeks=1..12.
func (h *ReviewHandler) GetTrends(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	var query dto.TrendsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.ValidationFailed(c, []utils.FieldError{
			{Field: "weeks", Message: "must be an integer"},
		})
		return
	}
	weeks := 4
	if query.Weeks != nil {
		weeks = *query.Weeks
	}

	trends, summary, err := h.trends.Analyze(c.Request.Context(), userID, weeks)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	utils.Success(c, dto.TrendsResponse{
		Trends:  trends,
		Summary: summary,
	})
}

// GetQuickStats handles GET /api/review/quick-stats: the current week's
// headline numbers plus the live streak.
func (h *ReviewHandler) GetQuickStats(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	window, err := h.resolver.ResolveOffset(0)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	snapshot, _, err := h.agg.WeeklySnapshot(ctx, userID, window)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	longestKnown := 0
	if stats, err := h.store.GetSnapshot(ctx, userID); err == nil && stats != nil {
		longestKnown = stats.LongestStreakDays
	}
	streak, err := h.streaks.CurrentStreak(ctx, userID, longestKnown)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	goal := h.scoreCfg.WeeklyGoal
	if goal < 1 {
		goal = 1
	}
	progress := int(math.Round(float64(snapshot.TotalCompleted) * 100 / float64(goal)))
	if progress > 100 {
		progress = 100
	}

	utils.Success(c, dto.QuickStatsResponse{
		CompletedThisWeek: snapshot.TotalCompleted,
		DailyAverage:      roundTo1(float64(snapshot.TotalCompleted) / 7),
		GoalProgress:      progress,
		Streak:            streak,
		TotalTimeMinutes:  snapshot.TotalTimeMinutes,
	})
}
