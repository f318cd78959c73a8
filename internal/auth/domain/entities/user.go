// Package entities defines the domain entities for authentication.
package entities

import (
	"errors"
	"time"
)

// Ошибки домена пользователя.
var (
	ErrEmptyUserID      = errors.New("user ID cannot be empty")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrEmptyUsername    = errors.New("username cannot be empty")
	ErrPasswordTooShort = errors.New("password must contain at least 8 characters")
	ErrPasswordTooWeak  = errors.New("password must contain at least one letter and one digit")
	ErrUserNotFound     = errors.New("user not found")
)

// User представляет основную сущность домена пользователя.
// Для пользователей, созданных через OAuth, PasswordHash пуст.
type User struct {
	ID            string
	Email         string
	Username      string
	PasswordHash  string
	OAuthProvider string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
