package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"notesai/internal/auth/domain/entities"
	"notesai/internal/auth/ports/api"
	"notesai/internal/auth/ports/repositories"
	"notesai/pkg/logger"
)

// UserUseCaseImpl реализует интерфейс api.UserUseCase.
type UserUseCaseImpl struct {
	userRepo repositories.UserRepository
}

// NewUserUseCase создает новый экземпляр сервиса профиля пользователя.
func NewUserUseCase(userRepo repositories.UserRepository) api.UserUseCase {
	return &UserUseCaseImpl{userRepo: userRepo}
}

// GetUserProfile возвращает профиль пользователя по ID.
func (u *UserUseCaseImpl) GetUserProfile(ctx context.Context, userID string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", "GetUserProfile"), zap.String("userID", userID))

	if userID == "" {
		return nil, entities.ErrEmptyUserID
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		log.Debug(ctx, "failed to get user profile", zap.Error(err))
		return nil, fmt.Errorf("getting user profile: %w", err)
	}

	return user, nil
}
