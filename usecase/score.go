package usecase

import (
	"math"

	"main/model"
	"main/utils"
)

// ScoreConfig holds the scoring weights and targets. The weights are tunable
// configuration, not discovered constants, so they load from the environment.
type ScoreConfig struct {
	CompletionWeight float64
	StreakWeight     float64
	ActivityWeight   float64
	PriorityWeight   float64

	// WeeklyGoal is the completions-per-week target the activity term is
	// normalized against.
	WeeklyGoal int
	// StreakCapDays caps the streak term's benefit.
	StreakCapDays int
}

func DefaultScoreConfig() ScoreConfig {
	return ScoreConfig{
		CompletionWeight: 0.40,
		StreakWeight:     0.25,
		ActivityWeight:   0.20,
		PriorityWeight:   0.15,
		WeeklyGoal:       7,
		StreakCapDays:    14,
	}
}

func LoadScoreConfig() ScoreConfig {
	cfg := DefaultScoreConfig()
	cfg.CompletionWeight = utils.GetEnvAsFloat64("SCORE_COMPLETION_WEIGHT", cfg.CompletionWeight)
	cfg.StreakWeight = utils.GetEnvAsFloat64("SCORE_STREAK_WEIGHT", cfg.StreakWeight)
	cfg.ActivityWeight = utils.GetEnvAsFloat64("SCORE_ACTIVITY_WEIGHT", cfg.ActivityWeight)
	cfg.PriorityWeight = utils.GetEnvAsFloat64("SCORE_PRIORITY_WEIGHT", cfg.PriorityWeight)
	cfg.WeeklyGoal = utils.GetEnvAsInt("TARGET_WEEKLY_GOAL", cfg.WeeklyGoal)
	cfg.StreakCapDays = utils.GetEnvAsInt("SCORE_STREAK_CAP_DAYS", cfg.StreakCapDays)
	return cfg
}

// Scorer combines aggregated signals into a normalized 0-100 score.
type Scorer struct {
	cfg ScoreConfig
}

func NewScorer(cfg ScoreConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

func (s *Scorer) Config() ScoreConfig { return s.cfg }

// Score computes the weighted composite: completion rate, streak (capped at
// StreakCapDays), weekly activity against the goal, and the share of recent
// completions that were high priority. Each term is normalized to [0,1]
// before weighting; the result is clamped to [0,100].
func (s *Scorer) Score(snapshot *model.UserStatsSnapshot, highPriorityShare float64) float64 {
	completion := snapshot.CompletionRate
	streak := clamp01(float64(snapshot.CurrentStreakDays) / float64(maxInt(s.cfg.StreakCapDays, 1)))
	activity := clamp01(float64(snapshot.WeeklyCompleted) / float64(maxInt(s.cfg.WeeklyGoal, 1)))
	priority := clamp01(highPriorityShare)

	score := 100 * (s.cfg.CompletionWeight*clamp01(completion) +
		s.cfg.StreakWeight*streak +
		s.cfg.ActivityWeight*activity +
		s.cfg.PriorityWeight*priority)

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return roundTo1(score)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
