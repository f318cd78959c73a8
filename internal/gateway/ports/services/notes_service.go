// Package services определяет интерфейсы сервисного слоя шлюза.
package services

import (
	"context"

	"notesai/internal/notes/app"
	"notesai/internal/notes/domain/entities"
)

// NotesUseCase определяет операции бизнес-логики заметок,
// используемые сервисным слоем.
type NotesUseCase interface {
	CreateNote(ctx context.Context, userID string, params app.CreateNoteParams) (*entities.Note, error)

	GetNote(ctx context.Context, userID, noteID string) (*entities.Note, error)

	GetPublicNote(ctx context.Context, noteID string) (*entities.Note, error)

	ListNotes(ctx context.Context, userID string, limit, offset int) ([]*entities.Note, int, error)

	UpdateNote(ctx context.Context, userID, noteID string, params app.UpdateNoteParams) (*entities.Note, error)

	DeleteNote(ctx context.Context, userID, noteID string) error
}

// NotesService определяет операции с заметками для HTTP-обработчиков.
// Список заметок кэшируется, мутации инвалидируют кэш пользователя.
type NotesService interface {
	CreateNote(ctx context.Context, userID string, params app.CreateNoteParams) (*entities.Note, error)

	GetNote(ctx context.Context, userID, noteID string) (*entities.Note, error)

	GetPublicNote(ctx context.Context, noteID string) (*entities.Note, error)

	ListNotes(ctx context.Context, userID string, limit, offset int) ([]*entities.Note, int, error)

	UpdateNote(ctx context.Context, userID, noteID string, params app.UpdateNoteParams) (*entities.Note, error)

	DeleteNote(ctx context.Context, userID, noteID string) error
}
