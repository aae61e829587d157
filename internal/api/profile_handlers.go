package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"anti-portfolio/internal/config"
	"anti-portfolio/internal/profile"
	"anti-portfolio/internal/settings"
)

// POST /profile/analyze
func AnalyzeProfileHandler(db *gorm.DB, gen *profile.Generator, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req struct {
			DesiredRole string `json:"desiredRole"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		model, err := settings.DefaultModel(db, cfg.Anthropic.Models)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve model"})
			return
		}

		analysis, err := gen.Analyze(c.Request.Context(), userID, req.DesiredRole, model)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, analysis)
	}
}

// GET /profile
func GetProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		analysis, err := profile.LatestCompleted(db, userID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, analysis)
	}
}
