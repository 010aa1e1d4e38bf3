package main

import (
	"fmt"
	"log"
	"os"

	"main/config"
	"main/handler"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Fatalf("Error loading .env file: %v", err)
	}

	// Check required environment variables
	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"JWT_SECRET_KEY",
		"PORT",
	}
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	if os.Getenv("GO_ENV") == "test" {
		return
	}

	utils.InitJWT()
	config.InitMongoClient()

	if err := repository.SetupIndexes(config.Database()); err != nil {
		log.Printf("Warning: failed to set up indexes: %v", err)
	}

	// Leaderboard caching degrades gracefully when Redis is absent
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cache, err := services.NewLeaderboardCache(redisURL)
		if err != nil {
			log.Printf("Warning: leaderboard cache disabled: %v", err)
		} else {
			services.GlobalLeaderboardCache = cache
		}
	} else {
		log.Println("REDIS_URL not set, leaderboard cache disabled")
	}
}

func registerBindingRules() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("isodate", utils.ValidateISODate)
	}
}

func setupRouter() *gin.Engine {
	router := gin.Default()

	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.EnhancedRecoveryMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestSizeLimiter(1 << 20))

	// Shared analytics plumbing
	clock := usecase.SystemClock()
	factsRepo := repository.GetFactsRepo(config.MongoClient)
	tasksRepo := repository.GetTasksRepo(config.MongoClient)
	groupsRepo := repository.GetGroupsRepo(config.MongoClient)
	statsRepo := repository.GetStatsRepo(config.MongoClient)

	resolver := usecase.NewWeekResolver(clock, usecase.LoadWeekConfig())
	aggregator := usecase.NewAggregator(factsRepo, groupsRepo)
	streaks := usecase.NewStreakCalculator(factsRepo, clock, usecase.LoadStreakConfig())
	scoreCfg := usecase.LoadScoreConfig()
	scorer := usecase.NewScorer(scoreCfg)
	trends := usecase.NewTrendAnalyzer(resolver, factsRepo)
	insights := usecase.NewRecommendationEngine(resolver, aggregator, factsRepo, statsRepo)
	materializer := usecase.NewMaterializer(clock, factsRepo, tasksRepo, groupsRepo, statsRepo, resolver, streaks, scorer)
	leaderboard := usecase.NewLeaderboardService(statsRepo)

	reviewHandler := handler.NewReviewHandler(resolver, aggregator, trends, insights, streaks, statsRepo, scoreCfg)
	statsHandler := handler.NewStatsHandler(statsRepo, materializer, services.GlobalLeaderboardCache)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboard, services.GlobalLeaderboardCache)

	// Operational endpoints
	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Protected routes (authentication required)
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		review := protected.Group("/review")
		{
			review.GET("/weekly", reviewHandler.GetWeeklyReview)
			review.GET("/insights", reviewHandler.GetInsights)
			review.GET("/trends", reviewHandler.GetTrends)
			review.GET("/quick-stats", reviewHandler.GetQuickStats)
		}

		stats := protected.Group("/stats")
		{
			stats.GET("", statsHandler.GetUserStats)
			stats.POST("/update", statsHandler.UpdateUserStats)
		}

		protected.GET("/leaderboard",
			middleware.CacheControlMiddleware("30"),
			leaderboardHandler.GetLeaderboard)
	}

	return router
}

func main() {
	registerBindingRules()

	router := setupRouter()

	// Get port from environment variable or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	serverAddr := fmt.Sprintf(":%s", port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
