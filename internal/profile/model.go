package profile

import (
	"time"

	"gorm.io/datatypes"
)

// Analysis lifecycle states. A row is created in processing and moves
// exactly once to completed or failed, never back.
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Analysis is a generated fictitious professional profile used to seed
// a scenario. RawResponse keeps the model output verbatim for audit.
type Analysis struct {
	ID             string         `gorm:"primaryKey;size:36" json:"id"`
	UserID         uint           `gorm:"not null;index" json:"userId"`
	DesiredRole    string         `gorm:"size:128;not null" json:"desiredRole"`
	AnalysisStatus string         `gorm:"type:varchar(12);not null;default:'processing'" json:"analysisStatus"`
	Role           string         `gorm:"size:128" json:"role"`
	Seniority      string         `gorm:"size:32" json:"seniority"`
	Sectors        datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'" json:"sectors"`
	Skills         datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'" json:"skills"`
	WorkExperience datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'" json:"workExperiences"`
	Education      datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'" json:"education"`
	Projects       datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'" json:"personalProjects"`
	Summary        string         `gorm:"type:text" json:"summary"`
	RawResponse    string         `gorm:"type:text" json:"-"`
	ModelUsed      string         `gorm:"size:64" json:"modelUsed"`
	ErrorMessage   string         `gorm:"type:text" json:"errorMessage,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

func (Analysis) TableName() string {
	return "profile_analyses"
}
