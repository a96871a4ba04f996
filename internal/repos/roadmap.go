package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/retirepath-backend/internal/logger"
	"github.com/yungbote/retirepath-backend/internal/types"
)

type RoadmapRepo interface {
	// Create appends; roadmap rows are never updated or overwritten.
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Roadmap) ([]*types.Roadmap, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Roadmap, error)
	// GetLatestByAssessmentID returns nil when no roadmap exists yet.
	GetLatestByAssessmentID(ctx context.Context, tx *gorm.DB, userID, assessmentID uuid.UUID) (*types.Roadmap, error)
}

type roadmapRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRoadmapRepo(db *gorm.DB, baseLog *logger.Logger) RoadmapRepo {
	return &roadmapRepo{db: db, log: baseLog.With("repo", "RoadmapRepo")}
}

func (r *roadmapRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Roadmap) ([]*types.Roadmap, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.Roadmap{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *roadmapRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Roadmap, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Roadmap
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

func (r *roadmapRepo) GetLatestByAssessmentID(ctx context.Context, tx *gorm.DB, userID, assessmentID uuid.UUID) (*types.Roadmap, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if userID == uuid.Nil || assessmentID == uuid.Nil {
		return nil, nil
	}

	var results []*types.Roadmap
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND assessment_id = ?", userID, assessmentID).
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
