package dto

import "main/model"

type LeaderboardResponse struct {
	Leaderboard []model.LeaderboardEntry `json:"leaderboard"`
	TotalUsers  int                      `json:"total_users"`
	Me          *model.LeaderboardEntry  `json:"me,omitempty"`
}
