package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"anti-portfolio/internal/auth"
	"anti-portfolio/internal/config"
	"anti-portfolio/internal/profile"
	"anti-portfolio/internal/simulation"
)

func SetupRouter(cfg *config.Config, rdb *redis.Client, gdb *gorm.DB, engine *simulation.Engine, profiles *profile.Generator) *gin.Engine {
	r := gin.Default()

	authed := auth.AuthMiddleware(cfg, rdb, gdb)

	r.GET("/health", healthHandler)
	r.GET("/config", configHandler(cfg))

	// Profile
	r.POST("/profile/analyze", authed, AnalyzeProfileHandler(gdb, profiles, cfg))
	r.GET("/profile", authed, GetProfileHandler(gdb))

	// Simulations
	r.POST("/simulations/generate", authed, GenerateSimulationHandler(gdb, engine, cfg))
	r.GET("/simulations", authed, ListSimulationsHandler(gdb))
	r.GET("/simulations/:id", GetSimulationHandler(gdb))
	r.POST("/simulations/:id/messages", authed, SendMessageHandler(engine))
	r.GET("/simulations/:id/evaluation", GetEvaluationHandler(engine))
	r.POST("/simulations/:id/evaluation", authed, GenerateEvaluationHandler(engine))

	// Public feed of completed runs
	r.GET("/feed", FeedHandler(gdb))

	return r
}
