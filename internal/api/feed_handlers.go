package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"anti-portfolio/internal/simulation"
)

const (
	feedDefaultLimit = 50
	feedMaxLimit     = 100
)

// FeedEntry is one public item: a completed run plus the headline
// number from its evaluation, if one exists.
type FeedEntry struct {
	SimulationID  string     `json:"simulationId"`
	ScenarioTitle string     `json:"scenarioTitle"`
	DesiredRole   string     `json:"desiredRole,omitempty"`
	CompletedAt   *time.Time `json:"completedAt"`
	TotalTasks    int        `json:"totalTasks"`
	OverallScore  *int       `json:"overallScore,omitempty"`
}

type feedRow struct {
	ID            string
	ScenarioTitle string
	TotalTasks    int
	CompletedAt   *time.Time
	DesiredRole   *string
	OverallScore  *int
}

// GET /feed
//
// Public, no auth: only completed simulations surface here and the
// payload carries no user identity beyond the desired role.
func FeedHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := feedDefaultLimit
		if raw := c.Query("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				limit = n
			}
		}
		if limit > feedMaxLimit {
			limit = feedMaxLimit
		}

		q := db.Table("simulations").
			Select("simulations.id, simulations.scenario_title, simulations.total_tasks, simulations.completed_at, profile_analyses.desired_role, simulation_evaluations.overall_score").
			Joins("LEFT JOIN profile_analyses ON profile_analyses.id = simulations.profile_analysis_id").
			Joins("LEFT JOIN simulation_evaluations ON simulation_evaluations.simulation_id = simulations.id").
			Where("simulations.status = ?", simulation.StatusCompleted).
			Order("simulations.completed_at desc").
			Limit(limit)

		if role := c.Query("role"); role != "" {
			q = q.Where("profile_analyses.desired_role = ?", role)
		}

		var rows []feedRow
		if err := q.Scan(&rows).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load feed"})
			return
		}

		entries := make([]FeedEntry, 0, len(rows))
		for _, r := range rows {
			e := FeedEntry{
				SimulationID:  r.ID,
				ScenarioTitle: r.ScenarioTitle,
				TotalTasks:    r.TotalTasks,
				CompletedAt:   r.CompletedAt,
				OverallScore:  r.OverallScore,
			}
			if r.DesiredRole != nil {
				e.DesiredRole = *r.DesiredRole
			}
			entries = append(entries, e)
		}
		c.JSON(http.StatusOK, entries)
	}
}
