package simulation

import (
	"time"

	"gorm.io/datatypes"
)

// Simulation status values. A simulation never moves out of a terminal
// status and is never deleted by this package.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusAbandoned = "abandoned"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Assistant message types.
const (
	TypeBrief     = "BRIEF"
	TypeTeam      = "TEAM"
	TypeTimeline  = "TIMELINE"
	TypeTask      = "TASK"
	TypeChallenge = "CHALLENGE"
	TypeFeedback  = "FEEDBACK"
)

// Simulation is one user's run through a generated scenario.
// TotalTasks and ChallengesCount are snapshotted from the config at
// creation time; later config edits never touch an in-flight run.
type Simulation struct {
	ID                  string     `gorm:"primaryKey;size:36" json:"id"`
	UserID              uint       `gorm:"not null;index" json:"userId"`
	ProfileAnalysisID   string     `gorm:"size:36" json:"profileAnalysisId"`
	ConfigID            string     `gorm:"size:36" json:"configId"`
	ScenarioTitle       string     `gorm:"size:120" json:"scenarioTitle"`
	ScenarioDescription string     `gorm:"type:text" json:"scenarioDescription"`
	Status              string     `gorm:"type:varchar(12);not null;default:'active'" json:"status"`
	CompletedTasks      int        `gorm:"not null;default:0" json:"completedTasks"`
	TotalTasks          int        `gorm:"not null;default:10" json:"totalTasks"`
	ChallengesCount     int        `gorm:"not null;default:0" json:"challengesCount"`
	CurrentTaskIndex    int        `gorm:"not null;default:0" json:"currentTaskIndex"`
	ModelUsed           string     `gorm:"size:64" json:"modelUsed"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
	StartedAt           time.Time  `json:"startedAt"`
	CompletedAt         *time.Time `json:"completedAt"`
	Messages            []Message  `gorm:"foreignKey:SimulationID" json:"-"`
}

func (Simulation) TableName() string {
	return "simulations"
}

// Message is one turn in a simulation's conversation. The log is
// append-only: rows are never edited and order_index values are never
// reused within a simulation.
type Message struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	SimulationID string    `gorm:"size:36;not null;uniqueIndex:idx_sim_order,priority:1" json:"simulationId"`
	Role         string    `gorm:"type:varchar(10);not null" json:"role"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	Type         string    `gorm:"type:varchar(10)" json:"type,omitempty"` // assistant messages only
	OrderIndex   int       `gorm:"not null;uniqueIndex:idx_sim_order,priority:2" json:"orderIndex"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (Message) TableName() string {
	return "simulation_messages"
}

// Config is a named preset controlling scenario shape. Exactly one row
// is marked default at any time.
type Config struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	Name            string    `gorm:"size:64;uniqueIndex;not null" json:"name"`
	Description     string    `gorm:"type:text" json:"description"`
	TasksCount      int       `gorm:"not null;default:10" json:"tasksCount"`
	ChallengesCount int       `gorm:"not null;default:3" json:"challengesCount"`
	Difficulty      string    `gorm:"size:16" json:"difficulty"`
	TimelineType    string    `gorm:"size:16" json:"timelineType"`
	ContextType     string    `gorm:"size:16" json:"contextType"`
	IsDefault       bool      `gorm:"not null;default:false" json:"isDefault"`
	IsActive        bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (Config) TableName() string {
	return "simulation_configs"
}

// Evaluation is the one-per-simulation performance assessment. The
// unique index on simulation_id is what makes the upsert idempotent.
type Evaluation struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	SimulationID string `gorm:"size:36;not null;uniqueIndex" json:"simulationId"`

	Strengths  datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'" json:"strengths"`
	Weaknesses datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'" json:"weaknesses"`
	Qualities  datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'" json:"qualities"`

	OverallAssessment  string `gorm:"type:text" json:"overallAssessment"`
	LeadershipStyle    string `gorm:"type:text" json:"leadershipStyle,omitempty"`
	DecisionMaking     string `gorm:"type:text" json:"decisionMaking,omitempty"`
	CommunicationStyle string `gorm:"type:text" json:"communicationStyle,omitempty"`
	ProblemSolving     string `gorm:"type:text" json:"problemSolving,omitempty"`

	OverallScore       *int `json:"overallScore,omitempty"`
	LeadershipScore    *int `json:"leadershipScore,omitempty"`
	TechnicalScore     *int `json:"technicalScore,omitempty"`
	CommunicationScore *int `json:"communicationScore,omitempty"`
	AdaptabilityScore  *int `json:"adaptabilityScore,omitempty"`

	ModelUsed string    `gorm:"size:64" json:"modelUsed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Evaluation) TableName() string {
	return "simulation_evaluations"
}

// IsCompleted reports whether the simulation reached its terminal
// completed state.
func (s *Simulation) IsCompleted() bool {
	return s.Status == StatusCompleted
}
