package api

import (
	"context"

	"notesai/internal/auth/domain/entities"
)

// UserUseCase определяет операции работы с профилем пользователя.
type UserUseCase interface {
	GetUserProfile(ctx context.Context, userID string) (*entities.User, error)
}
