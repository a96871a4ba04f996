package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/retirepath-backend/internal/logger"
	"github.com/yungbote/retirepath-backend/internal/types"
)

type EntitlementRepo interface {
	// GetOrCreateByUserID creates the row with tier "free" on first read.
	// The tier itself is only ever written by the billing process.
	GetOrCreateByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Entitlement, error)
}

type entitlementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEntitlementRepo(db *gorm.DB, baseLog *logger.Logger) EntitlementRepo {
	return &entitlementRepo{db: db, log: baseLog.With("repo", "EntitlementRepo")}
}

func (r *entitlementRepo) GetOrCreateByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Entitlement, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	// FirstOrCreate keyed on user_id; the unique index absorbs racing creates.
	row := &types.Entitlement{}
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Attrs(types.Entitlement{ID: uuid.New(), UserID: userID, Tier: types.TierFree}).
		FirstOrCreate(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}
