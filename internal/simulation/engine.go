package simulation

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"anti-portfolio/internal/apperr"
	"anti-portfolio/internal/llm"
)

// Engine owns the simulation lifecycle: scenario creation, turn-by-turn
// progression and final evaluation. All writes to simulations and their
// message logs go through it.
type Engine struct {
	db        *gorm.DB
	completer llm.Completer
	locks     *advanceLocks
	roll      func() float64
}

func NewEngine(db *gorm.DB, completer llm.Completer) *Engine {
	return &Engine{
		db:        db,
		completer: completer,
		locks:     newAdvanceLocks(),
		roll:      rand.Float64,
	}
}

// AdvanceResult is what one progression turn reports back.
type AdvanceResult struct {
	Message        *Message `json:"message,omitempty"`
	CompletedTasks int      `json:"completedTasks"`
	TotalTasks     int      `json:"totalTasks"`
	IsCompleted    bool     `json:"isCompleted"`
}

// Advance moves an active simulation forward by exactly one user turn.
//
// The user message is appended first and survives a downstream
// generation failure: counters stay untouched so a retry is safe, at
// the cost of an orphaned user message in the log. The terminal turn
// (the one reaching totalTasks) completes the run without calling the
// model and without an assistant message.
func (e *Engine) Advance(ctx context.Context, simulationID string, userID uint, text string) (*AdvanceResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: message text is required", apperr.ErrInvalidInput)
	}

	release := e.locks.acquire(simulationID)
	defer release()

	sim, messages, err := e.loadOwned(simulationID, userID)
	if err != nil {
		return nil, err
	}
	if sim.Status != StatusActive {
		return nil, fmt.Errorf("%w: simulation is %s, cannot continue", apperr.ErrInvalidState, sim.Status)
	}

	nextIndex := len(messages)
	userMsg := Message{
		ID:           uuid.NewString(),
		SimulationID: sim.ID,
		Role:         RoleUser,
		Content:      text,
		OrderIndex:   nextIndex,
	}
	if err := e.db.Create(&userMsg).Error; err != nil {
		return nil, fmt.Errorf("failed to save user message: %w", err)
	}

	newCompleted := sim.CompletedTasks + 1

	if newCompleted >= sim.TotalTasks {
		// Final answer ends the run; no assistant turn is generated.
		now := time.Now()
		if err := e.updateProgress(sim, map[string]interface{}{
			"completed_tasks":    newCompleted,
			"current_task_index": sim.CurrentTaskIndex + 1,
			"status":             StatusCompleted,
			"completed_at":       now,
		}); err != nil {
			return nil, err
		}
		log.Printf("[Simulation] %s completed (%d/%d tasks)", sim.ID, newCompleted, sim.TotalTasks)
		return &AdvanceResult{
			CompletedTasks: newCompleted,
			TotalTasks:     sim.TotalTasks,
			IsCompleted:    true,
		}, nil
	}

	challengesInserted := 0
	for _, m := range messages {
		if m.Role == RoleAssistant && m.Type == TypeChallenge {
			challengesInserted++
		}
	}
	tasksRemaining := sim.TotalTasks - newCompleted
	challenge := shouldInjectChallenge(challengesInserted, sim.ChallengesCount, tasksRemaining, e.roll())

	history := make([]llm.ChatMessage, 0, len(messages)+1)
	for _, m := range messages {
		history = append(history, llm.ChatMessage{Role: m.Role, Content: m.Content})
	}
	history = append(history, llm.ChatMessage{Role: RoleUser, Content: text})

	resp, err := e.completer.Complete(ctx, llm.CompletionRequest{
		Model:     sim.ModelUsed,
		MaxTokens: 4096,
		System:    buildContinuationPrompt(newCompleted, sim.TotalTasks, challenge),
		Messages:  history,
	})
	if err != nil {
		// User message stays; counters are untouched, so retrying the
		// turn cannot double count.
		return nil, fmt.Errorf("%w: %v", apperr.ErrGeneration, err)
	}

	msgType, content := classifyReply(resp.Text, challenge)

	assistantMsg := Message{
		ID:           uuid.NewString(),
		SimulationID: sim.ID,
		Role:         RoleAssistant,
		Content:      content,
		Type:         msgType,
		OrderIndex:   nextIndex + 1,
	}

	err = e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&assistantMsg).Error; err != nil {
			return fmt.Errorf("failed to save assistant message: %w", err)
		}
		res := tx.Model(&Simulation{}).
			Where("id = ? AND completed_tasks = ?", sim.ID, sim.CompletedTasks).
			Updates(map[string]interface{}{
				"completed_tasks":    newCompleted,
				"current_task_index": sim.CurrentTaskIndex + 1,
				"status":             StatusActive,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: simulation %s advanced by another request", apperr.ErrConflict, sim.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Simulation] %s advanced to %d/%d (reply type %s)", sim.ID, newCompleted, sim.TotalTasks, msgType)
	return &AdvanceResult{
		Message:        &assistantMsg,
		CompletedTasks: newCompleted,
		TotalTasks:     sim.TotalTasks,
		IsCompleted:    false,
	}, nil
}

// loadOwned fetches a simulation plus its ordered messages and checks
// ownership.
func (e *Engine) loadOwned(simulationID string, userID uint) (*Simulation, []Message, error) {
	var sim Simulation
	if err := e.db.First(&sim, "id = ?", simulationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, fmt.Errorf("%w: simulation %s", apperr.ErrNotFound, simulationID)
		}
		return nil, nil, err
	}
	if sim.UserID != userID {
		return nil, nil, fmt.Errorf("%w: simulation belongs to another user", apperr.ErrForbidden)
	}
	var messages []Message
	if err := e.db.Where("simulation_id = ?", sim.ID).Order("order_index asc").Find(&messages).Error; err != nil {
		return nil, nil, err
	}
	return &sim, messages, nil
}

// updateProgress applies a conditional counter update so a concurrent
// writer surfaces as apperr.ErrConflict instead of a silently lost turn.
func (e *Engine) updateProgress(sim *Simulation, updates map[string]interface{}) error {
	res := e.db.Model(&Simulation{}).
		Where("id = ? AND completed_tasks = ?", sim.ID, sim.CompletedTasks).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: simulation %s advanced by another request", apperr.ErrConflict, sim.ID)
	}
	return nil
}
