package handler

import (
	"log"

	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	store        usecase.SnapshotStore
	materializer *usecase.Materializer
	cache        *services.LeaderboardCache
}

func NewStatsHandler(store usecase.SnapshotStore, materializer *usecase.Materializer, cache *services.LeaderboardCache) *StatsHandler {
	return &StatsHandler{
		store:        store,
		materializer: materializer,
		cache:        cache,
	}
}

// GetUserStats handles GET /api/stats. The snapshot is materialized on first
// request for users who have never been computed.
func (h *StatsHandler) GetUserStats(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	snapshot, err := h.store.GetSnapshot(ctx, userID)
	if err != nil {
		log.Printf("Error fetching stats for user %s: %v", userID, err)
		utils.TrackError("analytics", "snapshot_fetch_failed")
		utils.InternalError(c, "Failed to fetch stats")
		return
	}

	if snapshot == nil {
		snapshot, err = h.materializer.Materialize(ctx, userID)
		if err != nil {
			writeDomainError(c, err)
			return
		}
		utils.TrackMaterialization()
	}

	utils.Success(c, gin.H{"stats": snapshot})
}

// UpdateUserStats handles POST /api/stats/update: recompute, persist, and
// return the fresh snapshot. The leaderboard cache is invalidated because
// ranks may have shifted.
func (h *StatsHandler) UpdateUserStats(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	snapshot, err := h.materializer.Materialize(ctx, userID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	utils.TrackMaterialization()

	if h.cache.IsConnected() {
		if err := h.cache.Invalidate(ctx); err != nil {
			log.Printf("Failed to invalidate leaderboard cache: %v", err)
		}
	}

	utils.SuccessWithMessage(c, gin.H{"stats": snapshot}, "Stats updated")
}
