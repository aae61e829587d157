package simulation

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"anti-portfolio/internal/apperr"
	"anti-portfolio/internal/llm"
	"anti-portfolio/internal/profile"
)

// Fallbacks when no config row is marked default (matches the seeded
// "Standard" preset).
const (
	fallbackTasksCount      = 10
	fallbackChallengesCount = 3
	fallbackTitle           = "New Simulation"
)

// ScenarioResult is what scenario generation reports back.
type ScenarioResult struct {
	SimulationID string    `json:"simulationId"`
	Messages     []Message `json:"messages"`
}

// GenerateScenario authors the opening of a new simulation for a user:
// it loads the latest completed profile analysis, asks the model for
// the initial sections, and creates the simulation plus its message 0..n
// atomically. totalTasks and challengesCount are snapshotted from the
// default config; later config edits never touch this run. The model
// tier is taken from the profile analysis snapshot, with the caller's
// fallback for older rows.
func (e *Engine) GenerateScenario(ctx context.Context, userID uint, fallbackModel string) (*ScenarioResult, error) {
	analysis, err := profile.LatestCompleted(e.db, userID)
	if err != nil {
		return nil, err
	}

	cfg := e.defaultConfig()
	model := analysis.ModelUsed
	if model == "" {
		model = fallbackModel
	}

	log.Printf("[Scenario] Generating for user %d (role %q, config %q, model %s)", userID, analysis.Role, cfg.Name, model)

	resp, err := e.completer.Complete(ctx, llm.CompletionRequest{
		Model:     model,
		MaxTokens: 8192,
		Messages: []llm.ChatMessage{
			{Role: "user", Content: scenarioSystemPrompt + "\n\n---\n\n" + formatProfileFragment(analysis, cfg) + "\n\nNow generate the initial scenario following exactly the format specified above."},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrGeneration, err)
	}

	sections := parseScenarioSections(resp.Text)
	if len(sections) == 0 {
		return nil, fmt.Errorf("%w: no recognizable sections in scenario reply", apperr.ErrMalformedOutput)
	}

	sim := Simulation{
		ID:                uuid.NewString(),
		UserID:            userID,
		ProfileAnalysisID: analysis.ID,
		ConfigID:          cfg.ID,
		ScenarioTitle:     deriveTitle(sections),
		Status:            StatusActive,
		TotalTasks:        cfg.TasksCount,
		ChallengesCount:   cfg.ChallengesCount,
		ModelUsed:         model,
		StartedAt:         time.Now(),
	}

	messages := make([]Message, 0, len(sections))
	for i, sec := range sections {
		messages = append(messages, Message{
			ID:           uuid.NewString(),
			SimulationID: sim.ID,
			Role:         RoleAssistant,
			Content:      sec.Content,
			Type:         sec.Type,
			OrderIndex:   i,
		})
	}

	err = e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&sim).Error; err != nil {
			return err
		}
		return tx.Create(&messages).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create simulation: %w", err)
	}

	log.Printf("[Scenario] Created simulation %s (%d initial messages, %d tasks)", sim.ID, len(messages), sim.TotalTasks)
	return &ScenarioResult{SimulationID: sim.ID, Messages: messages}, nil
}

// defaultConfig returns the config row marked default, or a synthetic
// fallback preset when none is.
func (e *Engine) defaultConfig() *Config {
	var cfg Config
	err := e.db.Where("is_default = ? AND is_active = ?", true, true).First(&cfg).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Printf("[Scenario] Failed to load default config: %v", err)
		}
		return &Config{
			Name:            "fallback",
			TasksCount:      fallbackTasksCount,
			ChallengesCount: fallbackChallengesCount,
			ContextType:     "startup",
		}
	}
	return &cfg
}

type scenarioSection struct {
	Type    string
	Content string
}

// sectionMarkers maps both the bracket markers the prompt asks for and
// the emoji headers older model revisions produced instead.
var sectionMarkers = []struct {
	msgType string
	needles []string
}{
	{TypeBrief, []string{"[BRIEF]", "📋 SCENARIO:"}},
	{TypeTeam, []string{"[TEAM]", "👥 IL TUO TEAM", "👥 YOUR TEAM"}},
	{TypeTimeline, []string{"[TIMELINE]", "📅 TIMELINE"}},
	{TypeTask, []string{"[TASK]", "📌 TASK"}},
}

// parseScenarioSections splits a scenario reply on "---" lines and
// classifies each section by its embedded marker. Unmarked sections are
// dropped.
func parseScenarioSections(text string) []scenarioSection {
	var out []scenarioSection
	for _, raw := range strings.Split(text, "\n---\n") {
		section := strings.TrimSpace(raw)
		if section == "" {
			continue
		}
		for _, marker := range sectionMarkers {
			matched := ""
			for _, needle := range marker.needles {
				if strings.Contains(section, needle) {
					matched = needle
					break
				}
			}
			if matched != "" {
				content := section
				if strings.HasPrefix(matched, "[") {
					content = strings.Replace(content, matched, "", 1)
				}
				out = append(out, scenarioSection{
					Type:    marker.msgType,
					Content: strings.TrimSpace(content),
				})
				break
			}
		}
	}
	return out
}

// deriveTitle takes the first line of the BRIEF section, strips a
// leading markdown heading and truncates to 100 chars.
func deriveTitle(sections []scenarioSection) string {
	for _, sec := range sections {
		if sec.Type != TypeBrief {
			continue
		}
		line := strings.SplitN(sec.Content, "\n", 2)[0]
		line = strings.TrimSpace(strings.TrimLeft(line, "# "))
		if line == "" {
			break
		}
		if r := []rune(line); len(r) > 100 {
			line = string(r[:100])
		}
		return line
	}
	return fallbackTitle
}
