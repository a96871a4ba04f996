package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Roadmap is one generated 12-month plan. Append-only: regeneration inserts
// a new row and the most recent row per assessment is the one shown.
type Roadmap struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User         *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	AssessmentID uuid.UUID      `gorm:"type:uuid;not null;index" json:"assessment_id"`
	Assessment   *Assessment    `gorm:"constraint:OnDelete:CASCADE;foreignKey:AssessmentID;references:ID" json:"assessment,omitempty"`
	Plan         datatypes.JSON `gorm:"type:jsonb;not null;column:plan" json:"plan"`
	Model        string         `gorm:"column:model" json:"model"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (Roadmap) TableName() string { return "roadmap" }
