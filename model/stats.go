package model

import "time"

// WeekWindow is the canonical fully-bounded range used for weekly aggregation.
// End is always end-of-day precision (23:59:59.999).
type WeekWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DailyBucket holds completions for a single calendar day inside a window.
// A window always carries one bucket per day, zero counts included.
type DailyBucket struct {
	Date         time.Time `json:"date"`
	Count        int       `json:"count"`
	TotalMinutes int       `json:"total_minutes"`
}

// GroupStats is the per-group slice of a weekly snapshot, decorated with
// the group's display attributes from the directory.
type GroupStats struct {
	Count int    `json:"count"`
	Name  string `json:"name,omitempty"`
	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

// WeeklySnapshot is the derived aggregate for one window. It is recomputed
// per request and never persisted.
type WeeklySnapshot struct {
	Window            WeekWindow            `json:"window"`
	TotalCompleted    int                   `json:"total_completed"`
	PriorityBreakdown map[Priority]int      `json:"priority_breakdown"`
	GroupBreakdown    map[string]GroupStats `json:"group_breakdown"`
	DailyPattern      []DailyBucket         `json:"daily_pattern"`
	TotalTimeMinutes  int                   `json:"total_time_minutes"`
}

// UserStatsSnapshot is the persisted per-user materialized view, one document
// per user, replaced atomically on every materialization.
type UserStatsSnapshot struct {
	UserID            string    `bson:"_id" json:"user_id"`
	TotalTasks        int       `bson:"total_tasks" json:"total_tasks"`
	CompletedTasks    int       `bson:"completed_tasks" json:"completed_tasks"`
	CompletionRate    float64   `bson:"completion_rate" json:"completion_rate"`
	CurrentStreakDays int       `bson:"current_streak_days" json:"current_streak_days"`
	LongestStreakDays int       `bson:"longest_streak_days" json:"longest_streak_days"`
	WeeklyCompleted   int       `bson:"weekly_completed" json:"weekly_completed"`
	MonthlyCompleted  int       `bson:"monthly_completed" json:"monthly_completed"`
	OverdueTasks      int       `bson:"overdue_tasks" json:"overdue_tasks"`
	HighPriorityTasks int       `bson:"high_priority_tasks" json:"high_priority_tasks"`
	TotalGroups       int       `bson:"total_groups" json:"total_groups"`
	ProductivityScore float64   `bson:"productivity_score" json:"productivity_score"`
	LastUpdated       time.Time `bson:"last_updated" json:"last_updated"`
}

// TrendPoint is one week of a multi-week trend series.
type TrendPoint struct {
	WeekLabel string    `json:"week_label"`
	WeekStart time.Time `json:"week_start"`
	Completed int       `json:"completed"`
}

type TrendSummary struct {
	AverageCompletion float64    `json:"average_completion"`
	BestWeek          TrendPoint `json:"best_week"`
	TotalCompleted    int        `json:"total_completed"`
	TotalWeeks        int        `json:"total_weeks"`
}

// LeaderboardEntry ranks one user's latest snapshot. Rank is 1-based and
// strictly increases down the board; percentile expresses "top X%".
type LeaderboardEntry struct {
	UserID            string  `json:"user_id"`
	CompletedTasks    int     `json:"completed_tasks"`
	ProductivityScore float64 `json:"productivity_score"`
	Rank              int     `json:"rank"`
	Percentile        int     `json:"percentile"`
}

// Recommendation is templated advice generated fresh per request.
type Recommendation struct {
	Icon    string `json:"icon"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
}
