// Package services реализует сервисный слой шлюза поверх бизнес-логики.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"notesai/internal/gateway/ports/cache"
	"notesai/internal/gateway/ports/services"
	notesapp "notesai/internal/notes/app"
	"notesai/internal/notes/domain/entities"
	"notesai/pkg/logger"
)

// Сообщения для логирования.
const (
	msgCacheHit       = "notes list served from cache"
	msgCacheReadFail  = "failed to read notes list from cache"
	msgCacheWriteFail = "failed to write notes list to cache"
	msgCacheDropFail  = "failed to invalidate notes cache"
	msgCacheCorrupted = "failed to decode cached notes list"
)

// Время жизни кэша списка заметок.
const notesListTTL = 5 * time.Minute

// cachedNotesList - сериализуемая форма страницы списка заметок.
type cachedNotesList struct {
	Notes      []*entities.Note `json:"notes"`
	TotalCount int              `json:"total_count"`
}

// NotesServiceImpl реализует NotesService с кэшированием списка в Redis.
type NotesServiceImpl struct {
	useCase services.NotesUseCase
	cache   cache.Cache
}

// NewNotesService создает новый сервис заметок.
func NewNotesService(useCase services.NotesUseCase, c cache.Cache) services.NotesService {
	return &NotesServiceImpl{useCase: useCase, cache: c}
}

func notesListKey(userID string, limit, offset int) string {
	return fmt.Sprintf("notes:%s:%d:%d", userID, limit, offset)
}

func notesUserPattern(userID string) string {
	return fmt.Sprintf("notes:%s:*", userID)
}

// CreateNote создает заметку и инвалидирует кэш списков пользователя.
func (s *NotesServiceImpl) CreateNote(ctx context.Context, userID string, params notesapp.CreateNoteParams) (*entities.Note, error) {
	note, err := s.useCase.CreateNote(ctx, userID, params)
	if err != nil {
		return nil, fmt.Errorf("creating note: %w", err)
	}

	s.invalidate(ctx, userID)

	return note, nil
}

// GetNote возвращает заметку пользователя по ID.
func (s *NotesServiceImpl) GetNote(ctx context.Context, userID, noteID string) (*entities.Note, error) {
	note, err := s.useCase.GetNote(ctx, userID, noteID)
	if err != nil {
		return nil, fmt.Errorf("getting note: %w", err)
	}

	return note, nil
}

// GetPublicNote возвращает публичную заметку по ID.
func (s *NotesServiceImpl) GetPublicNote(ctx context.Context, noteID string) (*entities.Note, error) {
	note, err := s.useCase.GetPublicNote(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("getting public note: %w", err)
	}

	return note, nil
}

// ListNotes возвращает страницу заметок пользователя. Результат
// кэшируется по ключу пользователь+страница; ошибки кэша не
// прерывают запрос.
func (s *NotesServiceImpl) ListNotes(ctx context.Context, userID string, limit, offset int) ([]*entities.Note, int, error) {
	log := logger.Log(ctx).With(zap.String("method", "ListNotes"), zap.String("userID", userID))

	key := notesListKey(userID, limit, offset)

	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Warn(ctx, msgCacheReadFail, zap.Error(err))
	} else if raw != "" {
		var cached cachedNotesList
		if err := json.Unmarshal([]byte(raw), &cached); err != nil {
			log.Warn(ctx, msgCacheCorrupted, zap.Error(err))
		} else {
			log.Debug(ctx, msgCacheHit, zap.String("key", key))
			return cached.Notes, cached.TotalCount, nil
		}
	}

	notes, total, err := s.useCase.ListNotes(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("listing notes: %w", err)
	}

	payload, err := json.Marshal(cachedNotesList{Notes: notes, TotalCount: total})
	if err == nil {
		if err := s.cache.Set(ctx, key, string(payload), notesListTTL); err != nil {
			log.Warn(ctx, msgCacheWriteFail, zap.Error(err))
		}
	}

	return notes, total, nil
}

// UpdateNote обновляет заметку и инвалидирует кэш списков пользователя.
func (s *NotesServiceImpl) UpdateNote(ctx context.Context, userID, noteID string, params notesapp.UpdateNoteParams) (*entities.Note, error) {
	note, err := s.useCase.UpdateNote(ctx, userID, noteID, params)
	if err != nil {
		return nil, fmt.Errorf("updating note: %w", err)
	}

	s.invalidate(ctx, userID)

	return note, nil
}

// DeleteNote удаляет заметку и инвалидирует кэш списков пользователя.
func (s *NotesServiceImpl) DeleteNote(ctx context.Context, userID, noteID string) error {
	if err := s.useCase.DeleteNote(ctx, userID, noteID); err != nil {
		return fmt.Errorf("deleting note: %w", err)
	}

	s.invalidate(ctx, userID)

	return nil
}

func (s *NotesServiceImpl) invalidate(ctx context.Context, userID string) {
	if err := s.cache.DeletePattern(ctx, notesUserPattern(userID)); err != nil {
		logger.Log(ctx).Warn(ctx, msgCacheDropFail, zap.String("userID", userID), zap.Error(err))
	}
}
