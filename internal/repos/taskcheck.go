package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/retirepath-backend/internal/logger"
	"github.com/yungbote/retirepath-backend/internal/types"
)

type TaskCheckRepo interface {
	// Upsert writes the checked state for one (user, roadmap, month, task)
	// key. Repeating the same call is a no-op in effect.
	Upsert(ctx context.Context, tx *gorm.DB, row *types.TaskCheck) error
	GetByRoadmapID(ctx context.Context, tx *gorm.DB, userID, roadmapID uuid.UUID) ([]*types.TaskCheck, error)
}

type taskCheckRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaskCheckRepo(db *gorm.DB, baseLog *logger.Logger) TaskCheckRepo {
	return &taskCheckRepo{db: db, log: baseLog.With("repo", "TaskCheckRepo")}
}

func (r *taskCheckRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.TaskCheck) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	row.UpdatedAt = time.Now().UTC()

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "roadmap_id"},
				{Name: "month"},
				{Name: "task_index"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"checked", "updated_at"}),
		}).
		Create(row).Error
}

func (r *taskCheckRepo) GetByRoadmapID(ctx context.Context, tx *gorm.DB, userID, roadmapID uuid.UUID) ([]*types.TaskCheck, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.TaskCheck
	if userID == uuid.Nil || roadmapID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND roadmap_id = ?", userID, roadmapID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
