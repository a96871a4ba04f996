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

// GenerationAction distinguishes a first roadmap generation from a
// regeneration of an existing one. The gate treats them differently
// for free-tier users.
type GenerationAction string

const (
	ActionGenerate   GenerationAction = "generate"
	ActionRegenerate GenerationAction = "regenerate"
)

type EntitlementService interface {
	GetTier(ctx context.Context, userID uuid.UUID) (string, error)
	Authorize(action GenerationAction, tier string, hasExistingPlan bool) error
}

type entitlementService struct {
	log             *logger.Logger
	entitlementRepo repos.EntitlementRepo
}

func NewEntitlementService(log *logger.Logger, entitlementRepo repos.EntitlementRepo) EntitlementService {
	return &entitlementService{
		log:             log.With("service", "EntitlementService"),
		entitlementRepo: entitlementRepo,
	}
}

// GetTier returns the user's tier, lazily creating a free entitlement
// row for users that have none yet.
func (es *entitlementService) GetTier(ctx context.Context, userID uuid.UUID) (string, error) {
	row, err := es.entitlementRepo.GetOrCreateByUserID(ctx, nil, userID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve entitlement: %w", err)
	}
	return row.Tier, nil
}

// Authorize applies the generation gate. Creation is one-shot per
// answer set regardless of tier; regeneration is reserved for pro.
// Pure decision, no I/O: callers fetch tier and hasExistingPlan first.
func (es *entitlementService) Authorize(action GenerationAction, tier string, hasExistingPlan bool) error {
	switch action {
	case ActionGenerate:
		if hasExistingPlan {
			return apierr.EntitlementDenied(409, "already generated")
		}
		return nil
	case ActionRegenerate:
		if tier != types.TierPro {
			return apierr.EntitlementDenied(402, "paid feature")
		}
		return nil
	default:
		return apierr.EntitlementDenied(402, "unknown action")
	}
}
