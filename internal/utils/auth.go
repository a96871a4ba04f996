package utils

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/yungbote/retirepath-backend/internal/repos"
	"github.com/yungbote/retirepath-backend/internal/types"
)

func NormalizeUserFields(user *types.User) {
	if user == nil {
		return
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.FirstName = strings.TrimSpace(user.FirstName)
	user.LastName = strings.TrimSpace(user.LastName)
}

func ValidateRegistrationInput(ctx context.Context, userRepo repos.UserRepo, user *types.User) error {
	if user == nil {
		return fmt.Errorf("no user given, cannot proceed with registration")
	}
	if user.Email == "" {
		return fmt.Errorf("an email is required to register")
	}
	if !strings.Contains(user.Email, "@") {
		return fmt.Errorf("email is not valid")
	}
	if len(user.Password) < 8 {
		return fmt.Errorf("a password of at least 8 characters is required")
	}
	if user.FirstName == "" {
		return fmt.Errorf("a first name is required to register")
	}
	if user.LastName == "" {
		return fmt.Errorf("a last name is required to register")
	}
	exists, err := userRepo.EmailExists(ctx, nil, user.Email)
	if err != nil {
		return fmt.Errorf("failed to check user email: %w", err)
	}
	if exists {
		return fmt.Errorf("email is already in use")
	}
	return nil
}

func HashPassword(user *types.User) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)
	return nil
}
