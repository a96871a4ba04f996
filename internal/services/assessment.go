package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/retirepath-backend/internal/apierr"
	"github.com/yungbote/retirepath-backend/internal/logger"
	"github.com/yungbote/retirepath-backend/internal/planner"
	"github.com/yungbote/retirepath-backend/internal/questions"
	"github.com/yungbote/retirepath-backend/internal/repos"
	"github.com/yungbote/retirepath-backend/internal/types"
)

// AssessmentResult is the stored answer set plus the rule-based interim
// result shown before a roadmap exists.
type AssessmentResult struct {
	AssessmentID  uuid.UUID         `json:"assessment_id"`
	Answers       map[string]string `json:"answers"`
	Summary       string            `json:"summary"`
	TopPriorities []string          `json:"top_priorities"`
	CurrentTasks  []string          `json:"current_tasks"`
	CreatedAt     time.Time         `json:"created_at"`
}

type AssessmentService interface {
	Submit(ctx context.Context, userID uuid.UUID, answers map[string]string) (*types.Assessment, error)
	Latest(ctx context.Context, userID uuid.UUID) (*AssessmentResult, error)
	Questions() []questions.Question
}

type assessmentService struct {
	db             *gorm.DB
	log            *logger.Logger
	catalog        *questions.Catalog
	assessmentRepo repos.AssessmentRepo
}

func NewAssessmentService(db *gorm.DB, log *logger.Logger, catalog *questions.Catalog, assessmentRepo repos.AssessmentRepo) AssessmentService {
	return &assessmentService{
		db:             db,
		log:            log.With("service", "AssessmentService"),
		catalog:        catalog,
		assessmentRepo: assessmentRepo,
	}
}

func (as *assessmentService) Questions() []questions.Question {
	return as.catalog.All()
}

// Submit validates the answers against the question catalog and inserts a
// new immutable assessment row.
func (as *assessmentService) Submit(ctx context.Context, userID uuid.UUID, answers map[string]string) (*types.Assessment, error) {
	if err := as.catalog.ValidateAnswers(answers); err != nil {
		return nil, apierr.Validation(err)
	}

	encoded, err := json.Marshal(answers)
	if err != nil {
		return nil, apierr.Validation(fmt.Errorf("failed to encode answers: %w", err))
	}

	row := &types.Assessment{
		ID:      uuid.New(),
		UserID:  userID,
		Answers: encoded,
	}
	if _, err := as.assessmentRepo.Create(ctx, nil, []*types.Assessment{row}); err != nil {
		return nil, apierr.Storage(fmt.Errorf("failed to store assessment: %w", err))
	}
	as.log.Info("Assessment submitted", "user_id", userID.String(), "answers", len(answers))
	return row, nil
}

// Latest returns the most recent assessment with its interim result, or
// nil when the user has not submitted one yet.
func (as *assessmentService) Latest(ctx context.Context, userID uuid.UUID) (*AssessmentResult, error) {
	row, err := as.assessmentRepo.GetLatestByUserID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Storage(fmt.Errorf("failed to load assessment: %w", err))
	}
	if row == nil {
		return nil, nil
	}

	var answers map[string]string
	if err := json.Unmarshal(row.Answers, &answers); err != nil {
		return nil, apierr.Storage(fmt.Errorf("stored answers are corrupt: %w", err))
	}

	return &AssessmentResult{
		AssessmentID:  row.ID,
		Answers:       answers,
		Summary:       planner.Summary(answers),
		TopPriorities: planner.Priorities(answers),
		CurrentTasks:  planner.CurrentTasks(answers),
		CreatedAt:     row.CreatedAt,
	}, nil
}
