package services_test

import (
	"context"
	"path"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"notesai/internal/gateway/app/services"
	notesapp "notesai/internal/notes/app"
	"notesai/internal/notes/domain/entities"
)

type mockNotesUseCase struct {
	mock.Mock
}

func (m *mockNotesUseCase) CreateNote(ctx context.Context, userID string, params notesapp.CreateNoteParams) (*entities.Note, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNotesUseCase) GetNote(ctx context.Context, userID, noteID string) (*entities.Note, error) {
	args := m.Called(ctx, userID, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNotesUseCase) GetPublicNote(ctx context.Context, noteID string) (*entities.Note, error) {
	args := m.Called(ctx, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNotesUseCase) ListNotes(ctx context.Context, userID string, limit, offset int) ([]*entities.Note, int, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Note), args.Int(1), args.Error(2)
}

func (m *mockNotesUseCase) UpdateNote(ctx context.Context, userID, noteID string, params notesapp.UpdateNoteParams) (*entities.Note, error) {
	args := m.Called(ctx, userID, noteID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNotesUseCase) DeleteNote(ctx context.Context, userID, noteID string) error {
	args := m.Called(ctx, userID, noteID)
	return args.Error(0)
}

// memoryCache - потокобезопасный кэш в памяти для тестов.
type memoryCache struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: make(map[string]string)}
}

func (c *memoryCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[key], nil
}

func (c *memoryCache) Set(_ context.Context, key string, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	return nil
}

func (c *memoryCache) DeletePattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.values {
		if ok, _ := path.Match(pattern, key); ok {
			delete(c.values, key)
		}
	}
	return nil
}

func (c *memoryCache) Close() error { return nil }

func (c *memoryCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.values)
}

func TestNotesServiceListCaching(t *testing.T) {
	ctx := context.Background()

	t.Run("caches list per user and page", func(t *testing.T) {
		uc := new(mockNotesUseCase)
		memCache := newMemoryCache()
		svc := services.NewNotesService(uc, memCache)

		page := []*entities.Note{{ID: "note-1", UserID: "user-1", Title: "title"}}
		uc.On("ListNotes", mock.Anything, "user-1", 50, 0).Return(page, 1, nil).Once()

		notes, total, err := svc.ListNotes(ctx, "user-1", 50, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, notes, 1)

		// Повторный запрос обслуживается из кэша без обращения к usecase.
		notes, total, err = svc.ListNotes(ctx, "user-1", 50, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, notes, 1)
		assert.Equal(t, "note-1", notes[0].ID)

		uc.AssertNumberOfCalls(t, "ListNotes", 1)
	})

	t.Run("different pages are cached separately", func(t *testing.T) {
		uc := new(mockNotesUseCase)
		memCache := newMemoryCache()
		svc := services.NewNotesService(uc, memCache)

		uc.On("ListNotes", mock.Anything, "user-1", 50, 0).
			Return([]*entities.Note{{ID: "note-1"}}, 2, nil).Once()
		uc.On("ListNotes", mock.Anything, "user-1", 50, 50).
			Return([]*entities.Note{{ID: "note-2"}}, 2, nil).Once()

		_, _, err := svc.ListNotes(ctx, "user-1", 50, 0)
		require.NoError(t, err)
		_, _, err = svc.ListNotes(ctx, "user-1", 50, 50)
		require.NoError(t, err)

		assert.Equal(t, 2, memCache.len())
	})
}

func TestNotesServiceInvalidation(t *testing.T) {
	ctx := context.Background()

	seedCache := func(t *testing.T, svc interface {
		ListNotes(ctx context.Context, userID string, limit, offset int) ([]*entities.Note, int, error)
	}, uc *mockNotesUseCase, userID string,
	) {
		t.Helper()
		uc.On("ListNotes", mock.Anything, userID, 50, 0).
			Return([]*entities.Note{{ID: "seed", UserID: userID}}, 1, nil).Once()
		_, _, err := svc.ListNotes(ctx, userID, 50, 0)
		require.NoError(t, err)
	}

	t.Run("create drops the user's cached lists", func(t *testing.T) {
		uc := new(mockNotesUseCase)
		memCache := newMemoryCache()
		svc := services.NewNotesService(uc, memCache)

		seedCache(t, svc, uc, "user-1")
		require.Equal(t, 1, memCache.len())

		uc.On("CreateNote", mock.Anything, "user-1", mock.Anything).
			Return(&entities.Note{ID: "note-2", UserID: "user-1"}, nil).Once()

		_, err := svc.CreateNote(ctx, "user-1", notesapp.CreateNoteParams{Title: "t"})
		require.NoError(t, err)

		assert.Zero(t, memCache.len())
	})

	t.Run("update drops the user's cached lists", func(t *testing.T) {
		uc := new(mockNotesUseCase)
		memCache := newMemoryCache()
		svc := services.NewNotesService(uc, memCache)

		seedCache(t, svc, uc, "user-1")

		uc.On("UpdateNote", mock.Anything, "user-1", "note-1", mock.Anything).
			Return(&entities.Note{ID: "note-1", UserID: "user-1"}, nil).Once()

		_, err := svc.UpdateNote(ctx, "user-1", "note-1", notesapp.UpdateNoteParams{})
		require.NoError(t, err)

		assert.Zero(t, memCache.len())
	})

	t.Run("delete drops the user's cached lists", func(t *testing.T) {
		uc := new(mockNotesUseCase)
		memCache := newMemoryCache()
		svc := services.NewNotesService(uc, memCache)

		seedCache(t, svc, uc, "user-1")

		uc.On("DeleteNote", mock.Anything, "user-1", "note-1").Return(nil).Once()

		require.NoError(t, svc.DeleteNote(ctx, "user-1", "note-1"))

		assert.Zero(t, memCache.len())
	})

	t.Run("mutation keeps other users' cache entries", func(t *testing.T) {
		uc := new(mockNotesUseCase)
		memCache := newMemoryCache()
		svc := services.NewNotesService(uc, memCache)

		seedCache(t, svc, uc, "user-1")
		seedCache(t, svc, uc, "user-2")
		require.Equal(t, 2, memCache.len())

		uc.On("DeleteNote", mock.Anything, "user-1", "note-1").Return(nil).Once()
		require.NoError(t, svc.DeleteNote(ctx, "user-1", "note-1"))

		assert.Equal(t, 1, memCache.len())
	})

	t.Run("failed mutation keeps the cache", func(t *testing.T) {
		uc := new(mockNotesUseCase)
		memCache := newMemoryCache()
		svc := services.NewNotesService(uc, memCache)

		seedCache(t, svc, uc, "user-1")

		uc.On("DeleteNote", mock.Anything, "user-1", "note-1").
			Return(notesapp.ErrNotFound).Once()

		err := svc.DeleteNote(ctx, "user-1", "note-1")
		require.Error(t, err)

		assert.Equal(t, 1, memCache.len())
	})
}
