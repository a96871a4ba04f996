package types

import (
	"time"

	"github.com/google/uuid"
)

// TaskCheck stores the checked state for one task of one roadmap month.
// The composite key is unique so repeated upserts collapse to one row.
type TaskCheck struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_task_check,priority:1" json:"user_id"`
	RoadmapID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_task_check,priority:2;index" json:"roadmap_id"`
	Roadmap   *Roadmap  `gorm:"constraint:OnDelete:CASCADE;foreignKey:RoadmapID;references:ID" json:"roadmap,omitempty"`
	Month     int       `gorm:"not null;uniqueIndex:uk_task_check,priority:3" json:"month"`
	TaskIndex int       `gorm:"not null;uniqueIndex:uk_task_check,priority:4;column:task_index" json:"task_index"`
	Checked   bool      `gorm:"not null;default:false" json:"checked"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (TaskCheck) TableName() string { return "task_check" }
