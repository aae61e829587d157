package simulation

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"anti-portfolio/internal/apperr"
	"anti-portfolio/internal/llm"
)

// evaluationOutput mirrors the JSON shape requested from the model.
type evaluationOutput struct {
	Strengths          json.RawMessage `json:"strengths"`
	Weaknesses         json.RawMessage `json:"weaknesses"`
	Qualities          json.RawMessage `json:"qualities"`
	OverallAssessment  string          `json:"overallAssessment"`
	LeadershipStyle    string          `json:"leadershipStyle"`
	DecisionMaking     string          `json:"decisionMaking"`
	CommunicationStyle string          `json:"communicationStyle"`
	ProblemSolving     string          `json:"problemSolving"`
	Scores             *struct {
		Overall       *int `json:"overall"`
		Leadership    *int `json:"leadership"`
		Technical     *int `json:"technical"`
		Communication *int `json:"communication"`
		Adaptability  *int `json:"adaptability"`
	} `json:"scores"`
}

// Evaluate produces the one-per-simulation performance assessment.
// It is idempotent: an existing evaluation is returned unchanged, and
// the write is an upsert keyed by simulation_id so concurrent
// generation requests converge on a single row.
func (e *Engine) Evaluate(ctx context.Context, simulationID string, userID uint) (*Evaluation, error) {
	sim, messages, err := e.loadOwned(simulationID, userID)
	if err != nil {
		return nil, err
	}
	if sim.Status != StatusCompleted {
		return nil, fmt.Errorf("%w: simulation must be completed before evaluation", apperr.ErrInvalidState)
	}

	var existing Evaluation
	err = e.db.Where("simulation_id = ?", sim.ID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	log.Printf("[Evaluation] Generating for simulation %s (%d messages)", sim.ID, len(messages))

	resp, err := e.completer.Complete(ctx, llm.CompletionRequest{
		Model:     sim.ModelUsed,
		MaxTokens: 4000,
		Messages: []llm.ChatMessage{
			{Role: "user", Content: buildEvaluationPrompt(sim, messages)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrGeneration, err)
	}

	var parsed evaluationOutput
	if err := json.Unmarshal([]byte(llm.StripCodeFence(resp.Text)), &parsed); err != nil {
		// No partial row is written on a parse failure.
		return nil, fmt.Errorf("%w: %v", apperr.ErrMalformedOutput, err)
	}

	eval := Evaluation{
		ID:                 uuid.NewString(),
		SimulationID:       sim.ID,
		Strengths:          jsonListOrEmpty(parsed.Strengths),
		Weaknesses:         jsonListOrEmpty(parsed.Weaknesses),
		Qualities:          jsonListOrEmpty(parsed.Qualities),
		OverallAssessment:  parsed.OverallAssessment,
		LeadershipStyle:    parsed.LeadershipStyle,
		DecisionMaking:     parsed.DecisionMaking,
		CommunicationStyle: parsed.CommunicationStyle,
		ProblemSolving:     parsed.ProblemSolving,
		ModelUsed:          sim.ModelUsed,
	}
	if parsed.Scores != nil {
		eval.OverallScore = parsed.Scores.Overall
		eval.LeadershipScore = parsed.Scores.Leadership
		eval.TechnicalScore = parsed.Scores.Technical
		eval.CommunicationScore = parsed.Scores.Communication
		eval.AdaptabilityScore = parsed.Scores.Adaptability
	}

	// Upsert, not check-then-insert: a concurrent Evaluate may have won
	// the race since the existence check above.
	err = e.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "simulation_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"strengths", "weaknesses", "qualities",
			"overall_assessment", "leadership_style", "decision_making",
			"communication_style", "problem_solving",
			"overall_score", "leadership_score", "technical_score",
			"communication_score", "adaptability_score",
			"model_used", "updated_at",
		}),
	}).Create(&eval).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save evaluation: %w", err)
	}

	var out Evaluation
	if err := e.db.Where("simulation_id = ?", sim.ID).First(&out).Error; err != nil {
		return nil, err
	}
	log.Printf("[Evaluation] Saved %s for simulation %s", out.ID, sim.ID)
	return &out, nil
}

// EvaluationFor returns the stored evaluation for a simulation, without
// generating one.
func (e *Engine) EvaluationFor(simulationID string) (*Evaluation, error) {
	var eval Evaluation
	err := e.db.Where("simulation_id = ?", simulationID).First(&eval).Error
	if err == gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("%w: no evaluation for simulation %s", apperr.ErrNotFound, simulationID)
	}
	if err != nil {
		return nil, err
	}
	return &eval, nil
}

func jsonListOrEmpty(raw json.RawMessage) datatypes.JSON {
	if len(raw) == 0 {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(raw)
}
