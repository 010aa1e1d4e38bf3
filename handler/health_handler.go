package handler

import (
	"context"
	"time"

	"main/config"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports Mongo, Redis and host status for probes.
func HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	mongoUp := config.MongoClient != nil && config.MongoClient.Ping(ctx, nil) == nil
	pool := utils.GetMongoMetrics()

	status := gin.H{
		"mongo":     mongoUp,
		"redis":     services.GlobalLeaderboardCache.IsConnected(),
		"cpu_usage": utils.GetCPUUsage(),
		"mongo_pool": gin.H{
			"active":  pool.ActiveConnections,
			"created": pool.CreatedConnections,
			"closed":  pool.ClosedConnections,
		},
	}

	if !mongoUp {
		utils.ServiceUnavailable(c, "Database unavailable")
		return
	}
	utils.Success(c, status)
}
