package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/retirepath-backend/internal/apierr"
	redisclient "github.com/yungbote/retirepath-backend/internal/clients/redis"
	"github.com/yungbote/retirepath-backend/internal/logger"
	"github.com/yungbote/retirepath-backend/internal/repos"
	"github.com/yungbote/retirepath-backend/internal/types"
)

const generationLockTTL = 3 * time.Minute

// RoadmapProgress is the derived completion state for one roadmap. Done is
// recomputed from the check rows on every read, never stored.
type RoadmapProgress struct {
	Done  int `json:"done"`
	Total int `json:"total"`
}

// RoadmapView is the full state the client renders: the current plan, the
// check state, the derived progress, and whether regenerate is available.
type RoadmapView struct {
	RoadmapID     uuid.UUID          `json:"roadmap_id"`
	AssessmentID  uuid.UUID          `json:"assessment_id"`
	Plan          *types.RoadmapPlan `json:"roadmap"`
	Model         string             `json:"model"`
	Tier          string             `json:"tier"`
	CanRegenerate bool               `json:"can_regenerate"`
	Progress      RoadmapProgress    `json:"progress"`
	Checks        []*types.TaskCheck `json:"checks"`
	CreatedAt     time.Time          `json:"created_at"`
}

type RoadmapService interface {
	// Generate runs the gated create/regenerate flow against the user's
	// latest assessment and returns the stored record.
	Generate(ctx context.Context, userID uuid.UUID, action GenerationAction) (*RoadmapView, error)
	// Latest returns the current roadmap view, or nil when the user has
	// no roadmap yet.
	Latest(ctx context.Context, userID uuid.UUID) (*RoadmapView, error)
}

type roadmapService struct {
	db             *gorm.DB
	log            *logger.Logger
	generator      RoadmapGenerator
	entitlements   EntitlementService
	assessmentRepo repos.AssessmentRepo
	roadmapRepo    repos.RoadmapRepo
	taskCheckRepo  repos.TaskCheckRepo

	// userLocks serializes generation per user within this process.
	// distLock extends the same guarantee across replicas when Redis is
	// configured; it may be nil.
	userLocks *keyedMutex
	distLock  redisclient.GenerationLock
}

// keyedMutex hands out one mutex per key and evicts the entry once the
// last holder releases, so the map stays bounded by in-flight requests.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[uuid.UUID]*lockEntry)}
}

func (k *keyedMutex) lock(id uuid.UUID) {
	k.mu.Lock()
	e, ok := k.locks[id]
	if !ok {
		e = &lockEntry{}
		k.locks[id] = e
	}
	e.refs++
	k.mu.Unlock()
	e.mu.Lock()
}

func (k *keyedMutex) unlock(id uuid.UUID) {
	k.mu.Lock()
	e := k.locks[id]
	e.refs--
	if e.refs == 0 {
		delete(k.locks, id)
	}
	k.mu.Unlock()
	e.mu.Unlock()
}

func NewRoadmapService(
	db *gorm.DB,
	log *logger.Logger,
	generator RoadmapGenerator,
	entitlements EntitlementService,
	assessmentRepo repos.AssessmentRepo,
	roadmapRepo repos.RoadmapRepo,
	taskCheckRepo repos.TaskCheckRepo,
	distLock redisclient.GenerationLock,
) RoadmapService {
	return &roadmapService{
		db:             db,
		log:            log.With("service", "RoadmapService"),
		generator:      generator,
		entitlements:   entitlements,
		assessmentRepo: assessmentRepo,
		roadmapRepo:    roadmapRepo,
		taskCheckRepo:  taskCheckRepo,
		userLocks:      newKeyedMutex(),
		distLock:       distLock,
	}
}

// inTx wraps fn in a transaction when a DB handle is present. Repos accept
// a nil tx and fall back to their own handle, so fn(nil) stays correct.
func (rs *roadmapService) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if rs.db == nil {
		return fn(nil)
	}
	return rs.db.WithContext(ctx).Transaction(fn)
}

func (rs *roadmapService) Generate(ctx context.Context, userID uuid.UUID, action GenerationAction) (*RoadmapView, error) {
	assessment, err := rs.assessmentRepo.GetLatestByUserID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Storage(fmt.Errorf("failed to load assessment: %w", err))
	}
	if assessment == nil {
		return nil, apierr.Validation(fmt.Errorf("no assessment submitted"))
	}

	rs.userLocks.lock(userID)
	defer rs.userLocks.unlock(userID)

	if rs.distLock != nil {
		key := userID.String()
		ok, err := rs.distLock.Acquire(ctx, key, generationLockTTL)
		if err != nil {
			rs.log.Warn("Distributed lock unavailable, proceeding with local lock only", "error", err)
		} else if !ok {
			return nil, apierr.EntitlementDenied(409, "a generation is already in progress")
		} else {
			defer func() {
				if err := rs.distLock.Release(context.WithoutCancel(ctx), key); err != nil {
					rs.log.Warn("Failed to release generation lock", "error", err)
				}
			}()
		}
	}

	// Re-read both gate inputs under the lock. Cached tier or plan
	// existence from before the lock could let a double-submit through.
	existing, err := rs.roadmapRepo.GetLatestByAssessmentID(ctx, nil, userID, assessment.ID)
	if err != nil {
		return nil, apierr.Storage(fmt.Errorf("failed to load existing roadmap: %w", err))
	}
	tier, err := rs.entitlements.GetTier(ctx, userID)
	if err != nil {
		return nil, apierr.Storage(err)
	}
	if err := rs.entitlements.Authorize(action, tier, existing != nil); err != nil {
		return nil, err
	}

	var answers map[string]string
	if err := json.Unmarshal(assessment.Answers, &answers); err != nil {
		return nil, apierr.Storage(fmt.Errorf("stored answers are corrupt: %w", err))
	}

	plan, err := rs.generator.Generate(ctx, answers)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(plan)
	if err != nil {
		return nil, apierr.Storage(fmt.Errorf("failed to encode plan: %w", err))
	}
	row := &types.Roadmap{
		ID:           uuid.New(),
		UserID:       userID,
		AssessmentID: assessment.ID,
		Plan:         encoded,
		Model:        rs.generator.Model(),
	}
	err = rs.inTx(ctx, func(tx *gorm.DB) error {
		_, err := rs.roadmapRepo.Create(ctx, tx, []*types.Roadmap{row})
		return err
	})
	if err != nil {
		return nil, apierr.Storage(fmt.Errorf("failed to store roadmap: %w", err))
	}
	rs.log.Info("Roadmap generated", "user_id", userID.String(), "action", string(action), "model", row.Model)

	return &RoadmapView{
		RoadmapID:     row.ID,
		AssessmentID:  assessment.ID,
		Plan:          plan,
		Model:         row.Model,
		Tier:          tier,
		CanRegenerate: tier == types.TierPro,
		Progress:      RoadmapProgress{Done: 0, Total: types.PlanTotalTasks},
		Checks:        []*types.TaskCheck{},
		CreatedAt:     row.CreatedAt,
	}, nil
}

func (rs *roadmapService) Latest(ctx context.Context, userID uuid.UUID) (*RoadmapView, error) {
	assessment, err := rs.assessmentRepo.GetLatestByUserID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Storage(fmt.Errorf("failed to load assessment: %w", err))
	}
	if assessment == nil {
		return nil, nil
	}
	row, err := rs.roadmapRepo.GetLatestByAssessmentID(ctx, nil, userID, assessment.ID)
	if err != nil {
		return nil, apierr.Storage(fmt.Errorf("failed to load roadmap: %w", err))
	}
	if row == nil {
		return nil, nil
	}

	var plan types.RoadmapPlan
	if err := json.Unmarshal(row.Plan, &plan); err != nil {
		return nil, apierr.Storage(fmt.Errorf("stored plan is corrupt: %w", err))
	}

	var (
		tier   string
		checks []*types.TaskCheck
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := rs.entitlements.GetTier(gctx, userID)
		if err != nil {
			return err
		}
		tier = t
		return nil
	})
	g.Go(func() error {
		c, err := rs.taskCheckRepo.GetByRoadmapID(gctx, nil, userID, row.ID)
		if err != nil {
			return fmt.Errorf("failed to load task checks: %w", err)
		}
		checks = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, apierr.Storage(err)
	}

	done := 0
	for _, c := range checks {
		if c.Checked {
			done++
		}
	}

	return &RoadmapView{
		RoadmapID:     row.ID,
		AssessmentID:  row.AssessmentID,
		Plan:          &plan,
		Model:         row.Model,
		Tier:          tier,
		CanRegenerate: tier == types.TierPro,
		Progress:      RoadmapProgress{Done: done, Total: types.PlanTotalTasks},
		Checks:        checks,
		CreatedAt:     row.CreatedAt,
	}, nil
}
