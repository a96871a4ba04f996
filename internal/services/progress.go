package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/retirepath-backend/internal/apierr"
	"github.com/yungbote/retirepath-backend/internal/logger"
	"github.com/yungbote/retirepath-backend/internal/repos"
	"github.com/yungbote/retirepath-backend/internal/types"
)

type ProgressService interface {
	// SetChecked upserts one task's checked state and returns the
	// recomputed progress. Repeating the same call is a no-op in effect.
	SetChecked(ctx context.Context, userID, roadmapID uuid.UUID, month, taskIndex int, checked bool) (*RoadmapProgress, error)
	// LoadAll returns every check row for the roadmap.
	LoadAll(ctx context.Context, userID, roadmapID uuid.UUID) ([]*types.TaskCheck, error)
}

type progressService struct {
	log           *logger.Logger
	roadmapRepo   repos.RoadmapRepo
	taskCheckRepo repos.TaskCheckRepo
}

func NewProgressService(log *logger.Logger, roadmapRepo repos.RoadmapRepo, taskCheckRepo repos.TaskCheckRepo) ProgressService {
	return &progressService{
		log:           log.With("service", "ProgressService"),
		roadmapRepo:   roadmapRepo,
		taskCheckRepo: taskCheckRepo,
	}
}

func (ps *progressService) SetChecked(ctx context.Context, userID, roadmapID uuid.UUID, month, taskIndex int, checked bool) (*RoadmapProgress, error) {
	if month < 1 || month > types.PlanMonths {
		return nil, apierr.Validation(fmt.Errorf("month must be between 1 and %d", types.PlanMonths))
	}
	if taskIndex < 0 || taskIndex >= types.PlanTasksPerMonth {
		return nil, apierr.Validation(fmt.Errorf("task_index must be between 0 and %d", types.PlanTasksPerMonth-1))
	}

	if err := ps.authorizeRoadmap(ctx, userID, roadmapID); err != nil {
		return nil, err
	}

	row := &types.TaskCheck{
		UserID:    userID,
		RoadmapID: roadmapID,
		Month:     month,
		TaskIndex: taskIndex,
		Checked:   checked,
	}
	if err := ps.taskCheckRepo.Upsert(ctx, nil, row); err != nil {
		return nil, apierr.Storage(fmt.Errorf("failed to store task check: %w", err))
	}

	checks, err := ps.taskCheckRepo.GetByRoadmapID(ctx, nil, userID, roadmapID)
	if err != nil {
		return nil, apierr.Storage(fmt.Errorf("failed to reload task checks: %w", err))
	}
	done := 0
	for _, c := range checks {
		if c.Checked {
			done++
		}
	}
	return &RoadmapProgress{Done: done, Total: types.PlanTotalTasks}, nil
}

func (ps *progressService) LoadAll(ctx context.Context, userID, roadmapID uuid.UUID) ([]*types.TaskCheck, error) {
	if err := ps.authorizeRoadmap(ctx, userID, roadmapID); err != nil {
		return nil, err
	}
	checks, err := ps.taskCheckRepo.GetByRoadmapID(ctx, nil, userID, roadmapID)
	if err != nil {
		return nil, apierr.Storage(fmt.Errorf("failed to load task checks: %w", err))
	}
	return checks, nil
}

// authorizeRoadmap confirms the roadmap exists and belongs to the caller.
func (ps *progressService) authorizeRoadmap(ctx context.Context, userID, roadmapID uuid.UUID) error {
	rows, err := ps.roadmapRepo.GetByIDs(ctx, nil, []uuid.UUID{roadmapID})
	if err != nil {
		return apierr.Storage(fmt.Errorf("failed to load roadmap: %w", err))
	}
	if len(rows) == 0 || rows[0].UserID != userID {
		return apierr.Validation(fmt.Errorf("roadmap not found"))
	}
	return nil
}
