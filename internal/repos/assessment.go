package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/retirepath-backend/internal/logger"
	"github.com/yungbote/retirepath-backend/internal/types"
)

type AssessmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Assessment) ([]*types.Assessment, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Assessment, error)
	// GetLatestByUserID returns nil when the user has no assessments.
	GetLatestByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Assessment, error)
}

type assessmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssessmentRepo(db *gorm.DB, baseLog *logger.Logger) AssessmentRepo {
	return &assessmentRepo{db: db, log: baseLog.With("repo", "AssessmentRepo")}
}

func (r *assessmentRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Assessment) ([]*types.Assessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.Assessment{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *assessmentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Assessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Assessment
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *assessmentRepo) GetLatestByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Assessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if userID == uuid.Nil {
		return nil, nil
	}

	var results []*types.Assessment
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}
