package usecase

import (
	"context"
	"math"
	"sort"

	"main/model"
)

// RankSnapshots orders snapshots by productivity score and assigns 1-based
// ranks and percentiles. Ties break by completed tasks, then by user ID so
// the ordering is deterministic; equal scores still occupy distinct ranks.
func RankSnapshots(snapshots []*model.UserStatsSnapshot) []model.LeaderboardEntry {
	sorted := make([]*model.UserStatsSnapshot, len(snapshots))
	copy(sorted, snapshots)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].ProductivityScore != sorted[j].ProductivityScore {
			return sorted[i].ProductivityScore > sorted[j].ProductivityScore
		}
		if sorted[i].CompletedTasks != sorted[j].CompletedTasks {
			return sorted[i].CompletedTasks > sorted[j].CompletedTasks
		}
		return sorted[i].UserID < sorted[j].UserID
	})

	total := len(sorted)
	entries := make([]model.LeaderboardEntry, 0, total)
	for i, snapshot := range sorted {
		rank := i + 1
		entries = append(entries, model.LeaderboardEntry{
			UserID:            snapshot.UserID,
			CompletedTasks:    snapshot.CompletedTasks,
			ProductivityScore: snapshot.ProductivityScore,
			Rank:              rank,
			Percentile:        percentile(rank, total),
		})
	}
	return entries
}

// percentile expresses rank as "top X%": rank 1 of N is 100.
func percentile(rank, total int) int {
	return int(math.Round(100 * (1 - float64(rank-1)/float64(total))))
}

// LeaderboardService ranks all users' latest materialized snapshots.
type LeaderboardService struct {
	store SnapshotStore
}

func NewLeaderboardService(store SnapshotStore) *LeaderboardService {
	return &LeaderboardService{store: store}
}

func (s *LeaderboardService) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	snapshots, err := s.store.AllSnapshots(ctx)
	if err != nil {
		return nil, computeFailed("loading stats snapshots", err)
	}
	return RankSnapshots(snapshots), nil
}
