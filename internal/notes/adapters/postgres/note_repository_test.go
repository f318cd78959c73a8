package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notesai/internal/notes/adapters/postgres"
	"notesai/internal/notes/domain/entities"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)

	return mockPool
}

func noteRows(notes ...*entities.Note) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{
		"id", "user_id", "title", "content", "is_code", "language",
		"is_public", "summary", "tags", "created_at", "updated_at",
	})
	for _, n := range notes {
		rows.AddRow(n.ID, n.UserID, n.Title, n.Content, n.IsCode, n.Language,
			n.IsPublic, n.Summary, n.Tags, n.CreatedAt, n.UpdatedAt)
	}
	return rows
}

func TestNoteRepositoryCreate(t *testing.T) {
	now := time.Now()

	t.Run("stamps id and timestamps from the database", func(t *testing.T) {
		mockPool := newMockPool(t)
		repo := postgres.NewNoteRepository(mockPool)

		note := entities.NewNote("user-1", "title", "content")
		note.Tags = []string{"go"}

		mockPool.ExpectQuery(regexp.QuoteMeta(`INSERT INTO notes`)).
			WithArgs("user-1", "title", "content", false, "", false, "", []string{"go"}).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow("note-1", now, now))

		err := repo.Create(context.Background(), note)
		require.NoError(t, err)

		assert.Equal(t, "note-1", note.ID)
		assert.Equal(t, note.CreatedAt, note.UpdatedAt)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("normalizes nil tags to empty slice", func(t *testing.T) {
		mockPool := newMockPool(t)
		repo := postgres.NewNoteRepository(mockPool)

		note := entities.NewNote("user-1", "title", "content")
		note.Tags = nil

		mockPool.ExpectQuery(regexp.QuoteMeta(`INSERT INTO notes`)).
			WithArgs("user-1", "title", "content", false, "", false, "", []string{}).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow("note-1", now, now))

		err := repo.Create(context.Background(), note)
		require.NoError(t, err)

		assert.NotNil(t, note.Tags)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("propagates database error", func(t *testing.T) {
		mockPool := newMockPool(t)
		repo := postgres.NewNoteRepository(mockPool)

		note := entities.NewNote("user-1", "title", "content")

		mockPool.ExpectQuery(regexp.QuoteMeta(`INSERT INTO notes`)).
			WithArgs("user-1", "title", "content", false, "", false, "", []string{}).
			WillReturnError(errors.New("connection reset"))

		err := repo.Create(context.Background(), note)
		require.Error(t, err)
	})
}

func TestNoteRepositoryGetByID(t *testing.T) {
	now := time.Now()

	existing := &entities.Note{
		ID:        "note-1",
		UserID:    "user-1",
		Title:     "title",
		Content:   "content",
		Tags:      []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	t.Run("returns note scoped to owner", func(t *testing.T) {
		mockPool := newMockPool(t)
		repo := postgres.NewNoteRepository(mockPool)

		mockPool.ExpectQuery(regexp.QuoteMeta(`WHERE id = $1 AND user_id = $2`)).
			WithArgs("note-1", "user-1").
			WillReturnRows(noteRows(existing))

		note, err := repo.GetByID(context.Background(), "note-1", "user-1")
		require.NoError(t, err)
		require.NotNil(t, note)

		assert.Equal(t, "note-1", note.ID)
		assert.Equal(t, "user-1", note.UserID)
	})

	t.Run("returns nil without error when not found", func(t *testing.T) {
		mockPool := newMockPool(t)
		repo := postgres.NewNoteRepository(mockPool)

		mockPool.ExpectQuery(regexp.QuoteMeta(`WHERE id = $1 AND user_id = $2`)).
			WithArgs("note-1", "other-user").
			WillReturnRows(noteRows())

		note, err := repo.GetByID(context.Background(), "note-1", "other-user")
		require.NoError(t, err)
		assert.Nil(t, note)
	})
}

func TestNoteRepositoryGetPublicByID(t *testing.T) {
	now := time.Now()

	t.Run("returns public note without owner check", func(t *testing.T) {
		mockPool := newMockPool(t)
		repo := postgres.NewNoteRepository(mockPool)

		public := &entities.Note{
			ID: "note-1", UserID: "user-1", Title: "shared", IsPublic: true,
			Tags: []string{}, CreatedAt: now, UpdatedAt: now,
		}

		mockPool.ExpectQuery(regexp.QuoteMeta(`WHERE id = $1 AND is_public = TRUE`)).
			WithArgs("note-1").
			WillReturnRows(noteRows(public))

		note, err := repo.GetPublicByID(context.Background(), "note-1")
		require.NoError(t, err)
		require.NotNil(t, note)
		assert.True(t, note.IsPublic)
	})

	t.Run("returns nil for private note", func(t *testing.T) {
		mockPool := newMockPool(t)
		repo := postgres.NewNoteRepository(mockPool)

		mockPool.ExpectQuery(regexp.QuoteMeta(`WHERE id = $1 AND is_public = TRUE`)).
			WithArgs("note-1").
			WillReturnRows(noteRows())

		note, err := repo.GetPublicByID(context.Background(), "note-1")
		require.NoError(t, err)
		assert.Nil(t, note)
	})
}

func TestNoteRepositoryListByUserID(t *testing.T) {
	now := time.Now()

	t.Run("returns page with total count", func(t *testing.T) {
		mockPool := newMockPool(t)
		repo := postgres.NewNoteRepository(mockPool)

		first := &entities.Note{
			ID: "note-2", UserID: "user-1", Title: "newer",
			Tags: []string{}, CreatedAt: now, UpdatedAt: now,
		}
		second := &entities.Note{
			ID: "note-1", UserID: "user-1", Title: "older",
			Tags: []string{}, CreatedAt: now.Add(-time.Hour), UpdatedAt: now.Add(-time.Hour),
		}

		mockPool.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM notes WHERE user_id = $1`)).
			WithArgs("user-1").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(5))

		mockPool.ExpectQuery(regexp.QuoteMeta(`ORDER BY updated_at DESC`)).
			WithArgs("user-1", 2, 0).
			WillReturnRows(noteRows(first, second))

		notes, total, err := repo.ListByUserID(context.Background(), "user-1", 2, 0)
		require.NoError(t, err)

		assert.Equal(t, 5, total)
		require.Len(t, notes, 2)
		assert.Equal(t, "note-2", notes[0].ID)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("returns empty page without error", func(t *testing.T) {
		mockPool := newMockPool(t)
		repo := postgres.NewNoteRepository(mockPool)

		mockPool.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM notes WHERE user_id = $1`)).
			WithArgs("user-1").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))

		mockPool.ExpectQuery(regexp.QuoteMeta(`ORDER BY updated_at DESC`)).
			WithArgs("user-1", 10, 0).
			WillReturnRows(noteRows())

		notes, total, err := repo.ListByUserID(context.Background(), "user-1", 10, 0)
		require.NoError(t, err)

		assert.Zero(t, total)
		assert.Empty(t, notes)
	})
}

func TestNoteRepositoryUpdate(t *testing.T) {
	now := time.Now()

	t.Run("updates fields and refreshes updated_at", func(t *testing.T) {
		mockPool := newMockPool(t)
		repo := postgres.NewNoteRepository(mockPool)

		note := &entities.Note{
			ID: "note-1", UserID: "user-1", Title: "new title", Content: "new content",
			Tags: []string{"go"}, UpdatedAt: now.Add(-time.Hour),
		}

		newUpdatedAt := now

		mockPool.ExpectQuery(regexp.QuoteMeta(`UPDATE notes`)).
			WithArgs("new title", "new content", false, "", false, "", []string{"go"}, "note-1", "user-1").
			WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(newUpdatedAt))

		err := repo.Update(context.Background(), note)
		require.NoError(t, err)

		assert.Equal(t, newUpdatedAt, note.UpdatedAt)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("reports not found for foreign note", func(t *testing.T) {
		mockPool := newMockPool(t)
		repo := postgres.NewNoteRepository(mockPool)

		note := &entities.Note{ID: "note-1", UserID: "other-user", Tags: []string{}}

		mockPool.ExpectQuery(regexp.QuoteMeta(`UPDATE notes`)).
			WithArgs("", "", false, "", false, "", []string{}, "note-1", "other-user").
			WillReturnRows(pgxmock.NewRows([]string{"updated_at"}))

		err := repo.Update(context.Background(), note)
		require.ErrorIs(t, err, postgres.ErrNoteNotFoundOrNotOwned)
	})
}

func TestNoteRepositoryDelete(t *testing.T) {
	t.Run("deletes owned note", func(t *testing.T) {
		mockPool := newMockPool(t)
		repo := postgres.NewNoteRepository(mockPool)

		mockPool.ExpectExec(regexp.QuoteMeta(`DELETE FROM notes WHERE id = $1 AND user_id = $2`)).
			WithArgs("note-1", "user-1").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		err := repo.Delete(context.Background(), "note-1", "user-1")
		require.NoError(t, err)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("reports not found when nothing was deleted", func(t *testing.T) {
		mockPool := newMockPool(t)
		repo := postgres.NewNoteRepository(mockPool)

		mockPool.ExpectExec(regexp.QuoteMeta(`DELETE FROM notes WHERE id = $1 AND user_id = $2`)).
			WithArgs("note-1", "other-user").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err := repo.Delete(context.Background(), "note-1", "other-user")
		require.ErrorIs(t, err, postgres.ErrNoteNotFoundOrNotOwned)
	})
}
