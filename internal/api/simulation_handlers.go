package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"anti-portfolio/internal/config"
	"anti-portfolio/internal/settings"
	"anti-portfolio/internal/simulation"
)

// POST /simulations/generate
func GenerateSimulationHandler(db *gorm.DB, engine *simulation.Engine, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		fallbackModel, err := settings.DefaultModel(db, cfg.Anthropic.Models)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve model"})
			return
		}

		res, err := engine.GenerateScenario(c.Request.Context(), userID, fallbackModel)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, res)
	}
}

// GET /simulations
func ListSimulationsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		var sims []simulation.Simulation
		if err := db.Where("user_id = ?", userID).
			Order("started_at desc").
			Find(&sims).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list simulations"})
			return
		}
		c.JSON(http.StatusOK, sims)
	}
}

// GET /simulations/:id
//
// Read-only and public: completed runs are shareable, so no ownership
// check here. Writes stay behind auth.
func GetSimulationHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		var sim simulation.Simulation
		if err := db.First(&sim, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "simulation not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load simulation"})
			return
		}
		var messages []simulation.Message
		if err := db.Where("simulation_id = ?", sim.ID).
			Order("order_index asc").
			Find(&messages).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"simulation": sim,
			"messages":   messages,
		})
	}
}

// POST /simulations/:id/messages
func SendMessageHandler(engine *simulation.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		var req struct {
			Message string `json:"message"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		res, err := engine.Advance(c.Request.Context(), c.Param("id"), userID, req.Message)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// GET /simulations/:id/evaluation
func GetEvaluationHandler(engine *simulation.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		eval, err := engine.EvaluationFor(c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, eval)
	}
}

// POST /simulations/:id/evaluation
func GenerateEvaluationHandler(engine *simulation.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		eval, err := engine.Evaluate(c.Request.Context(), c.Param("id"), userID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, eval)
	}
}
