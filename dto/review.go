package dto

import (
	"main/model"
	"main/usecase"
)

// WeeklyReviewQuery binds the weekly review query string. weekOffset and the
// explicit date pair are mutually exclusive; isodate is a custom binding rule
// registered at startup.
type WeeklyReviewQuery struct {
	WeekOffset *int   `form:"weekOffset"`
	StartDate  string `form:"startDate" binding:"omitempty,isodate"`
	EndDate    string `form:"endDate" binding:"omitempty,isodate"`
}

type InsightsQuery struct {
	WeekOffset *int `form:"weekOffset"`
}

type TrendsQuery struct {
	Weeks *int `form:"weeks"`
}

type WeeklyReviewResponse struct {
	Stats *model.WeeklySnapshot   `json:"stats"`
	Tasks []*model.CompletionFact `json:"tasks"`
}

type InsightsResponse struct {
	Recommendations []model.Recommendation `json:"recommendations"`
	Patterns        usecase.PatternSummary `json:"patterns"`
}

type TrendsResponse struct {
	Trends  []model.TrendPoint `json:"trends"`
	Summary model.TrendSummary `json:"summary"`
}

type QuickStatsResponse struct {
	CompletedThisWeek int     `json:"completed_this_week"`
	DailyAverage      float64 `json:"daily_average"`
	GoalProgress      int     `json:"goal_progress"`
	Streak            int     `json:"streak"`
	TotalTimeMinutes  int     `json:"total_time_minutes"`
}
