// Package app implements application business logic for notes.
package app

import (
	"context"
	"errors"
	"fmt"

	"notesai/internal/notes/domain/entities"
	"notesai/internal/notes/ports/repositories"
)

// Ошибки уровня бизнес-логики.
var (
	ErrNotFound      = errors.New("note not found")
	ErrInvalidParams = errors.New("invalid parameters")
)

// Значения пагинации по умолчанию.
const (
	DefaultLimit = 50
)

// CreateNoteParams содержит поля новой заметки.
type CreateNoteParams struct {
	Title    string
	Content  string
	IsCode   bool
	Language string
	IsPublic bool
	Tags     []string
}

// UpdateNoteParams содержит частичное обновление заметки.
// nil-поле означает "не менять".
type UpdateNoteParams struct {
	Title    *string
	Content  *string
	IsCode   *bool
	Language *string
	IsPublic *bool
	Summary  *string
	Tags     []string
}

// NoteUseCase представляет собой бизнес-логику работы с заметками.
type NoteUseCase struct {
	noteRepo repositories.NoteRepository
}

// NewNoteUseCase создает новый экземпляр NoteUseCase.
func NewNoteUseCase(noteRepo repositories.NoteRepository) *NoteUseCase {
	return &NoteUseCase{noteRepo: noteRepo}
}

// CreateNote создает новую заметку для пользователя.
func (uc *NoteUseCase) CreateNote(ctx context.Context, userID string, params CreateNoteParams) (*entities.Note, error) {
	if userID == "" {
		return nil, fmt.Errorf("empty user id: %w", ErrInvalidParams)
	}
	if params.Title == "" {
		return nil, fmt.Errorf("empty title: %w", ErrInvalidParams)
	}

	note := entities.NewNote(userID, params.Title, params.Content)
	note.IsCode = params.IsCode
	note.Language = params.Language
	note.IsPublic = params.IsPublic
	if params.Tags != nil {
		note.Tags = params.Tags
	}

	if err := uc.noteRepo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	return note, nil
}

// GetNote возвращает заметку по ID.
func (uc *NoteUseCase) GetNote(ctx context.Context, userID, noteID string) (*entities.Note, error) {
	note, err := uc.noteRepo.GetByID(ctx, noteID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	if note == nil {
		return nil, ErrNotFound
	}

	return note, nil
}

// GetPublicNote возвращает заметку, опубликованную владельцем.
// Аутентификация не требуется; непубличные заметки не находятся.
func (uc *NoteUseCase) GetPublicNote(ctx context.Context, noteID string) (*entities.Note, error) {
	note, err := uc.noteRepo.GetPublicByID(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("failed to get public note: %w", err)
	}
	if note == nil {
		return nil, ErrNotFound
	}

	return note, nil
}

// ListNotes возвращает список заметок пользователя с пагинацией,
// отсортированный по убыванию updated_at. Для пустого идентификатора
// пользователя возвращается пустой список, а не ошибка.
func (uc *NoteUseCase) ListNotes(ctx context.Context, userID string, limit, offset int) ([]*entities.Note, int, error) {
	if userID == "" {
		return []*entities.Note{}, 0, nil
	}

	if limit <= 0 {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}

	notes, total, err := uc.noteRepo.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notes: %w", err)
	}

	return notes, total, nil
}

// UpdateNote применяет частичное обновление заметки. Неуказанные поля
// остаются без изменений, updated_at обновляется всегда.
func (uc *NoteUseCase) UpdateNote(ctx context.Context, userID, noteID string, params UpdateNoteParams) (*entities.Note, error) {
	note, err := uc.noteRepo.GetByID(ctx, noteID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	if note == nil {
		return nil, ErrNotFound
	}

	if params.Title != nil {
		note.Title = *params.Title
	}
	if params.Content != nil {
		note.Content = *params.Content
	}
	if params.IsCode != nil {
		note.IsCode = *params.IsCode
	}
	if params.Language != nil {
		note.Language = *params.Language
	}
	if params.IsPublic != nil {
		note.IsPublic = *params.IsPublic
	}
	if params.Summary != nil {
		note.Summary = *params.Summary
	}
	if params.Tags != nil {
		note.Tags = params.Tags
	}

	if err := uc.noteRepo.Update(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return note, nil
}

// DeleteNote удаляет заметку. Удаление необратимо.
func (uc *NoteUseCase) DeleteNote(ctx context.Context, userID, noteID string) error {
	note, err := uc.noteRepo.GetByID(ctx, noteID, userID)
	if err != nil {
		return fmt.Errorf("failed to get note: %w", err)
	}
	if note == nil {
		return ErrNotFound
	}

	if err := uc.noteRepo.Delete(ctx, noteID, userID); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	return nil
}
