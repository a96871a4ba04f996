package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Assessment is one submitted answer set. Rows are immutable once created;
// resubmitting the questionnaire inserts a new row.
type Assessment struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Answers   datatypes.JSON `gorm:"type:jsonb;not null;column:answers" json:"answers"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (Assessment) TableName() string { return "assessment" }
