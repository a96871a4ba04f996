package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	TierFree = "free"
	TierPro  = "pro"
)

// Entitlement is created lazily on first read with tier "free". The tier is
// mutated only by the billing process, never by this service.
type Entitlement struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Tier      string    `gorm:"not null;default:'free';column:tier" json:"tier"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Entitlement) TableName() string { return "entitlement" }
