package handler

import (
	"log"

	"main/dto"
	"main/model"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	leaderboard *usecase.LeaderboardService
	cache       *services.LeaderboardCache
}

func NewLeaderboardHandler(leaderboard *usecase.LeaderboardService, cache *services.LeaderboardCache) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboard: leaderboard,
		cache:       cache,
	}
}

// GetLeaderboard handles GET /api/leaderboard: the full ranked board plus the
// requesting user's own rank and percentile.
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var entries []model.LeaderboardEntry
	if h.cache.IsConnected() {
		cached, err := h.cache.GetLeaderboard(ctx)
		if err != nil {
			log.Printf("Leaderboard cache read failed: %v", err)
		}
		entries = cached
	}

	if entries == nil {
		ranked, err := h.leaderboard.Leaderboard(ctx)
		if err != nil {
			writeDomainError(c, err)
			return
		}
		entries = ranked

		if h.cache.IsConnected() {
			if err := h.cache.SetLeaderboard(ctx, entries); err != nil {
				log.Printf("Leaderboard cache write failed: %v", err)
			}
		}
	}

	var me *model.LeaderboardEntry
	for i := range entries {
		if entries[i].UserID == userID {
			me = &entries[i]
			break
		}
	}
	if me == nil {
		writeDomainError(c, &usecase.NotFoundError{Resource: "user ranking"})
		return
	}

	utils.Success(c, dto.LeaderboardResponse{
		Leaderboard: entries,
		TotalUsers:  len(entries),
		Me:          me,
	})
}
