package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"anti-portfolio/internal/simulation"
)

func seedAPISimulation(t *testing.T, gdb *gorm.DB, userID uint, status string, completed, total int) *simulation.Simulation {
	t.Helper()
	sim := simulation.Simulation{
		ID:              uuid.NewString(),
		UserID:          userID,
		ScenarioTitle:   "Handler Test Run",
		Status:          status,
		CompletedTasks:  completed,
		TotalTasks:      total,
		ChallengesCount: 3,
		StartedAt:       time.Now(),
	}
	if status == simulation.StatusCompleted {
		now := time.Now()
		sim.CompletedAt = &now
	}
	if err := gdb.Create(&sim).Error; err != nil {
		t.Fatalf("failed to seed simulation: %v", err)
	}
	msg := simulation.Message{
		ID:           uuid.NewString(),
		SimulationID: sim.ID,
		Role:         simulation.RoleAssistant,
		Content:      "Welcome aboard.",
		Type:         simulation.TypeBrief,
		OrderIndex:   0,
	}
	if err := gdb.Create(&msg).Error; err != nil {
		t.Fatalf("failed to seed message: %v", err)
	}
	return &sim
}

func TestSendMessageHandler_Unauthorized(t *testing.T) {
	gdb := setupAPIDB(t)
	engine := simulation.NewEngine(gdb, &cannedCompleter{text: "[TASK] go"})
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/simulations/:id/messages", SendMessageHandler(engine))
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/simulations/abc/messages", bytes.NewReader([]byte(`{"message":"hi"}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestSendMessageHandler_AdvancesRun(t *testing.T) {
	gdb := setupAPIDB(t)
	engine := simulation.NewEngine(gdb, &cannedCompleter{text: "[TASK] Draft the release notes."})
	sim := seedAPISimulation(t, gdb, 7, simulation.StatusActive, 0, 10)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/simulations/:id/messages", asUser(7), SendMessageHandler(engine))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/simulations/"+sim.ID+"/messages", bytes.NewReader([]byte(`{"message":"My plan is ready."}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var res simulation.AdvanceResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if res.CompletedTasks != 1 || res.IsCompleted {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestSendMessageHandler_StatusMapping(t *testing.T) {
	gdb := setupAPIDB(t)
	engine := simulation.NewEngine(gdb, &cannedCompleter{text: "[TASK] go"})
	completedSim := seedAPISimulation(t, gdb, 7, simulation.StatusCompleted, 10, 10)
	foreignSim := seedAPISimulation(t, gdb, 99, simulation.StatusActive, 0, 10)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/simulations/:id/messages", asUser(7), SendMessageHandler(engine))

	cases := []struct {
		name  string
		simID string
		body  string
		want  int
	}{
		{"unknown id", uuid.NewString(), `{"message":"hi"}`, http.StatusNotFound},
		{"not owner", foreignSim.ID, `{"message":"hi"}`, http.StatusForbidden},
		{"completed run", completedSim.ID, `{"message":"hi"}`, http.StatusConflict},
		{"empty message", completedSim.ID, `{"message":"  "}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/simulations/"+tc.simID+"/messages", bytes.NewReader([]byte(tc.body)))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Errorf("got %d, want %d: %s", w.Code, tc.want, w.Body.String())
			}
		})
	}
}

func TestGetSimulationHandler_PublicRead(t *testing.T) {
	gdb := setupAPIDB(t)
	sim := seedAPISimulation(t, gdb, 7, simulation.StatusActive, 0, 10)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/simulations/:id", GetSimulationHandler(gdb))

	// No auth middleware on this route.
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/simulations/"+sim.ID, nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Simulation simulation.Simulation `json:"simulation"`
		Messages   []simulation.Message  `json:"messages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if body.Simulation.ID != sim.ID || len(body.Messages) != 1 {
		t.Errorf("unexpected payload: %+v", body)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/simulations/"+uuid.NewString(), nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown id, got %d", w.Code)
	}
}

func TestListSimulationsHandler_OwnerOnlyNewestFirst(t *testing.T) {
	gdb := setupAPIDB(t)
	older := seedAPISimulation(t, gdb, 7, simulation.StatusCompleted, 10, 10)
	gdb.Model(older).Update("started_at", time.Now().Add(-time.Hour))
	newer := seedAPISimulation(t, gdb, 7, simulation.StatusActive, 1, 10)
	seedAPISimulation(t, gdb, 42, simulation.StatusActive, 0, 10)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/simulations", asUser(7), ListSimulationsHandler(gdb))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/simulations", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var sims []simulation.Simulation
	if err := json.Unmarshal(w.Body.Bytes(), &sims); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if len(sims) != 2 {
		t.Fatalf("expected 2 simulations, got %d", len(sims))
	}
	if sims[0].ID != newer.ID || sims[1].ID != older.ID {
		t.Errorf("wrong order: %s then %s", sims[0].ID, sims[1].ID)
	}
}

func TestEvaluationHandlers(t *testing.T) {
	gdb := setupAPIDB(t)
	evalJSON := `{"strengths":["a","b","c"],"weaknesses":["d","e"],"qualities":["q1","q2","q3","q4","q5"],"overallAssessment":"fine","scores":{"overall":70}}`
	engine := simulation.NewEngine(gdb, &cannedCompleter{text: evalJSON})
	sim := seedAPISimulation(t, gdb, 7, simulation.StatusCompleted, 10, 10)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/simulations/:id/evaluation", GetEvaluationHandler(engine))
	r.POST("/simulations/:id/evaluation", asUser(7), GenerateEvaluationHandler(engine))

	// Nothing stored yet.
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/simulations/"+sim.ID+"/evaluation", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before generation, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/simulations/"+sim.ID+"/evaluation", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on generate, got %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/simulations/"+sim.ID+"/evaluation", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 after generation, got %d", w.Code)
	}
	var eval simulation.Evaluation
	if err := json.Unmarshal(w.Body.Bytes(), &eval); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if eval.SimulationID != sim.ID {
		t.Errorf("evaluation bound to %s, want %s", eval.SimulationID, sim.ID)
	}
}
