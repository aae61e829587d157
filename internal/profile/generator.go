package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"anti-portfolio/internal/apperr"
	"anti-portfolio/internal/llm"
)

// analysisOutput mirrors the JSON shape requested from the model.
type analysisOutput struct {
	Role             string          `json:"role"`
	Seniority        string          `json:"seniority"`
	Sectors          json.RawMessage `json:"sectors"`
	Skills           json.RawMessage `json:"skills"`
	WorkExperiences  json.RawMessage `json:"workExperiences"`
	Education        json.RawMessage `json:"education"`
	PersonalProjects json.RawMessage `json:"personalProjects"`
	Summary          string          `json:"summary"`
}

// Generator synthesizes fictitious profiles via the completion service.
type Generator struct {
	db        *gorm.DB
	completer llm.Completer
}

func NewGenerator(db *gorm.DB, completer llm.Completer) *Generator {
	return &Generator{db: db, completer: completer}
}

// Analyze creates an Analysis row in processing state, asks the model
// for a structured profile for the desired role, and transitions the
// row to completed or failed. The transition is terminal either way.
// The model tier is passed in explicitly and snapshotted into the row.
func (g *Generator) Analyze(ctx context.Context, userID uint, desiredRole, model string) (*Analysis, error) {
	desiredRole = strings.TrimSpace(desiredRole)
	if desiredRole == "" {
		return nil, fmt.Errorf("%w: desired role is required", apperr.ErrInvalidInput)
	}

	a := Analysis{
		ID:             uuid.NewString(),
		UserID:         userID,
		DesiredRole:    desiredRole,
		AnalysisStatus: StatusProcessing,
		ModelUsed:      model,
	}
	if err := g.db.Create(&a).Error; err != nil {
		return nil, fmt.Errorf("failed to create profile analysis: %w", err)
	}

	log.Printf("[Profile] Analyzing desired role %q for user %d (model %s)", desiredRole, userID, model)

	resp, err := g.completer.Complete(ctx, llm.CompletionRequest{
		Model:     model,
		MaxTokens: 4096,
		Messages: []llm.ChatMessage{
			{Role: "user", Content: buildAnalysisPrompt(desiredRole)},
		},
	})
	if err != nil {
		g.fail(&a, err.Error())
		return nil, fmt.Errorf("%w: %v", apperr.ErrGeneration, err)
	}

	var parsed analysisOutput
	if err := json.Unmarshal([]byte(llm.StripCodeFence(resp.Text)), &parsed); err != nil {
		g.fail(&a, "model reply was not valid JSON")
		return nil, fmt.Errorf("%w: %v", apperr.ErrMalformedOutput, err)
	}

	updates := map[string]interface{}{
		"analysis_status": StatusCompleted,
		"role":            parsed.Role,
		"seniority":       parsed.Seniority,
		"sectors":         jsonOrEmpty(parsed.Sectors),
		"skills":          jsonOrEmpty(parsed.Skills),
		"work_experience": jsonOrEmpty(parsed.WorkExperiences),
		"education":       jsonOrEmpty(parsed.Education),
		"projects":        jsonOrEmpty(parsed.PersonalProjects),
		"summary":         parsed.Summary,
		"raw_response":    resp.Text,
	}
	if err := g.db.Model(&Analysis{}).Where("id = ?", a.ID).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to save analysis results: %w", err)
	}

	var out Analysis
	if err := g.db.First(&out, "id = ?", a.ID).Error; err != nil {
		return nil, err
	}
	log.Printf("[Profile] Analysis %s completed (role %q, seniority %q)", out.ID, out.Role, out.Seniority)
	return &out, nil
}

// LatestCompleted returns the user's most recent completed analysis.
func LatestCompleted(db *gorm.DB, userID uint) (*Analysis, error) {
	var a Analysis
	err := db.Where("user_id = ? AND analysis_status = ?", userID, StatusCompleted).
		Order("created_at desc").
		First(&a).Error
	if err == gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("%w: no profile analysis found, complete onboarding first", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (g *Generator) fail(a *Analysis, msg string) {
	if err := g.db.Model(&Analysis{}).Where("id = ?", a.ID).Updates(map[string]interface{}{
		"analysis_status": StatusFailed,
		"error_message":   msg,
	}).Error; err != nil {
		log.Printf("[Profile] Failed to mark analysis %s as failed: %v", a.ID, err)
	}
}

func jsonOrEmpty(raw json.RawMessage) datatypes.JSON {
	if len(raw) == 0 {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(raw)
}
