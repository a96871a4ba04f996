package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/retirepath-backend/internal/logger"
	"github.com/yungbote/retirepath-backend/internal/repos"
	"github.com/yungbote/retirepath-backend/internal/requestdata"
	"github.com/yungbote/retirepath-backend/internal/types"
	"github.com/yungbote/retirepath-backend/internal/utils"
)

type AuthService interface {
	RegisterUser(ctx context.Context, user *types.User) error
	LoginUser(ctx context.Context, email, password string) (string, string, error)
	RefreshUser(ctx context.Context, refreshToken string) (string, string, error)
	LogoutUser(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	avatarService AvatarService
	userTokenRepo repos.UserTokenRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	avatarService AvatarService,
	userTokenRepo repos.UserTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	return &authService{
		db:            db,
		log:           log.With("service", "AuthService"),
		userRepo:      userRepo,
		avatarService: avatarService,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// inTx wraps fn in a transaction when a DB handle is present. Repos accept
// a nil tx and fall back to their own handle, so fn(nil) stays correct.
func (as *authService) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if as.db == nil {
		return fn(nil)
	}
	return as.db.WithContext(ctx).Transaction(fn)
}

func (as *authService) RegisterUser(ctx context.Context, user *types.User) error {
	utils.NormalizeUserFields(user)
	if err := utils.ValidateRegistrationInput(ctx, as.userRepo, user); err != nil {
		return err
	}
	if err := utils.HashPassword(user); err != nil {
		return err
	}

	return as.inTx(ctx, func(tx *gorm.DB) error {
		user.ID = uuid.New()
		if as.avatarService != nil {
			if err := as.avatarService.CreateUserAvatar(ctx, user); err != nil {
				// Avatar rendering must not block registration.
				as.log.Warn("Failed to create user avatar", "error", err)
			}
		}
		if _, err := as.userRepo.Create(ctx, tx, []*types.User{user}); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, string, error) {
	probe := &types.User{Email: email}
	utils.NormalizeUserFields(probe)
	email = probe.Email

	if email == "" || password == "" {
		return "", "", fmt.Errorf("email and password are required")
	}

	users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return "", "", fmt.Errorf("error retrieving user by email: %w", err)
	}
	if len(users) == 0 {
		return "", "", fmt.Errorf("invalid email or password")
	}
	user := users[0]

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", fmt.Errorf("invalid email or password")
	}

	var accessToken, refreshToken string
	err = as.inTx(ctx, func(tx *gorm.DB) error {
		// One active token row per user; stale rows are replaced on login.
		if err := as.userTokenRepo.FullDeleteByUserIDs(ctx, tx, []uuid.UUID{user.ID}); err != nil {
			return fmt.Errorf("failed to clear previous tokens: %w", err)
		}

		tok, err := as.generateAccessToken(user)
		if err != nil {
			return fmt.Errorf("generate access token: %w", err)
		}
		accessToken = tok
		refreshToken = uuid.New().String()

		userToken := &types.UserToken{
			ID:           uuid.New(),
			UserID:       user.ID,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, err := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{userToken}); err != nil {
			return fmt.Errorf("failed to create user token: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (as *authService) GetAccessTTL() time.Duration { return as.accessTTL }

func (as *authService) RefreshUser(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", fmt.Errorf("refresh token required")
	}

	tokens, err := as.userTokenRepo.GetByRefreshTokens(ctx, nil, []string{refreshToken})
	if err != nil {
		return "", "", fmt.Errorf("failed to look up refresh token: %w", err)
	}
	if len(tokens) == 0 {
		return "", "", fmt.Errorf("unknown refresh token")
	}
	stored := tokens[0]
	if stored.ExpiresAt.Before(time.Now()) {
		return "", "", fmt.Errorf("refresh token expired")
	}

	users, err := as.userRepo.GetByIDs(ctx, nil, []uuid.UUID{stored.UserID})
	if err != nil || len(users) == 0 {
		return "", "", fmt.Errorf("failed to load user for refresh")
	}
	user := users[0]

	var accessToken, newRefreshToken string
	err = as.inTx(ctx, func(tx *gorm.DB) error {
		if err := as.userTokenRepo.FullDeleteByUserIDs(ctx, tx, []uuid.UUID{user.ID}); err != nil {
			return fmt.Errorf("failed to rotate tokens: %w", err)
		}
		tok, err := as.generateAccessToken(user)
		if err != nil {
			return fmt.Errorf("generate access token: %w", err)
		}
		accessToken = tok
		newRefreshToken = uuid.New().String()

		userToken := &types.UserToken{
			ID:           uuid.New(),
			UserID:       user.ID,
			AccessToken:  accessToken,
			RefreshToken: newRefreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, err := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{userToken}); err != nil {
			return fmt.Errorf("failed to create user token: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, newRefreshToken, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return fmt.Errorf("not authenticated")
	}
	return as.userTokenRepo.FullDeleteByUserIDs(ctx, nil, []uuid.UUID{rd.UserID})
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.ID.String(),
		"iat": now.Unix(),
		"exp": now.Add(as.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !parsed.Valid {
		return ctx, fmt.Errorf("invalid token")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return ctx, fmt.Errorf("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return ctx, fmt.Errorf("invalid token subject")
	}

	rd := &requestdata.RequestData{
		TokenString: tokenString,
		UserID:      userID,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}
