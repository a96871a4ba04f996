package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/retirepath-backend/internal/apierr"
	"github.com/yungbote/retirepath-backend/internal/logger"
	"github.com/yungbote/retirepath-backend/internal/repos"
	"github.com/yungbote/retirepath-backend/internal/types"
)

type UserService interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error)
	// UpdateAvatarFromImage replaces the user's avatar with an uploaded
	// image and persists the new avatar fields.
	UpdateAvatarFromImage(ctx context.Context, userID uuid.UUID, raw []byte) (*types.User, error)
}

type userService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	avatarService AvatarService
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, avatarService AvatarService) UserService {
	return &userService{
		db:            db,
		log:           log.With("service", "UserService"),
		userRepo:      userRepo,
		avatarService: avatarService,
	}
}

func (us *userService) GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, apierr.Storage(fmt.Errorf("failed to load user: %w", err))
	}
	if len(users) == 0 {
		return nil, apierr.Validation(fmt.Errorf("user not found"))
	}
	return users[0], nil
}

func (us *userService) UpdateAvatarFromImage(ctx context.Context, userID uuid.UUID, raw []byte) (*types.User, error) {
	if us.avatarService == nil {
		return nil, apierr.UpstreamConfig(fmt.Errorf("avatar service not configured"))
	}
	if len(raw) == 0 {
		return nil, apierr.Validation(fmt.Errorf("image payload is empty"))
	}

	user, err := us.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := us.avatarService.ReplaceUserAvatarFromImage(ctx, user, raw); err != nil {
		return nil, apierr.Validation(fmt.Errorf("failed to process image: %w", err))
	}
	if err := us.userRepo.Update(ctx, nil, user); err != nil {
		return nil, apierr.Storage(fmt.Errorf("failed to persist avatar: %w", err))
	}
	return user, nil
}
