// Package postgres provides PostgreSQL implementations of auth repositories.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB описывает минимальный набор операций пула соединений,
// используемый репозиториями. Ему удовлетворяют *pgxpool.Pool и pgxmock.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// RepositoryFactory создает репозитории аутентификации.
type RepositoryFactory struct {
	db DB
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(db DB) *RepositoryFactory {
	return &RepositoryFactory{db: db}
}

// UserRepository возвращает репозиторий пользователей.
func (f *RepositoryFactory) UserRepository() *UserRepository {
	return NewUserRepository(f.db)
}

// TokenRepository возвращает репозиторий refresh-токенов.
func (f *RepositoryFactory) TokenRepository() *TokenRepository {
	return NewTokenRepository(f.db)
}
