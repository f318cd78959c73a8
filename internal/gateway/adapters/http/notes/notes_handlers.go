// Package notes содержит HTTP-обработчики для управления заметками.
package notes

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notesai/internal/gateway/adapters/http/middleware"
	"notesai/internal/gateway/app/dto"
	"notesai/internal/gateway/ports/services"
	notesapp "notesai/internal/notes/app"
	"notesai/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerCreateNote    = "handling create note request"
	LogHandlerGetNote       = "handling get note request"
	LogHandlerGetPublicNote = "handling get public note request"
	LogHandlerListNotes     = "handling list notes request"
	LogHandlerUpdateNote    = "handling update note request"
	LogHandlerDeleteNote    = "handling delete note request"

	ErrMsgInvalidNoteID      = "invalid note id"
	ErrMsgInvalidPagination  = "invalid pagination parameters"
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgNoteNotFound       = "note not found"
	ErrMsgInternal           = "internal server error"
)

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	notesService services.NotesService
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(notesService services.NotesService) *Handler {
	return &Handler{
		notesService: notesService,
	}
}

// CreateNote обрабатывает запрос на создание новой заметки.
func (h *Handler) CreateNote(ctx fiber.Ctx) error {
	userCtx := ctx.Context()
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.CreateNote"))
	log.Debug(userCtx, LogHandlerCreateNote)

	userID, _ := ctx.Locals(middleware.UserIDKey).(string)

	var req dto.CreateNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(userCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidRequestBody,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	note, err := h.notesService.CreateNote(userCtx, userID, notesapp.CreateNoteParams{
		Title:    req.Title,
		Content:  req.Content,
		IsCode:   req.IsCode,
		Language: req.Language,
		IsPublic: req.IsPublic,
		Tags:     req.Tags,
	})
	if err != nil {
		log.Error(userCtx, "failed to create note", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(dto.NoteResponse{Note: note}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// GetNote обрабатывает запрос на получение заметки по ID.
func (h *Handler) GetNote(ctx fiber.Ctx) error {
	userCtx := ctx.Context()
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.GetNote"))
	log.Debug(userCtx, LogHandlerGetNote)

	userID, _ := ctx.Locals(middleware.UserIDKey).(string)

	noteID := ctx.Params("note_id")
	if noteID == "" {
		log.Error(userCtx, ErrMsgInvalidNoteID)
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidNoteID,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	note, err := h.notesService.GetNote(userCtx, userID, noteID)
	if err != nil {
		log.Debug(userCtx, "failed to get note", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(dto.NoteResponse{Note: note}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// GetPublicNote обрабатывает запрос на получение публичной заметки.
// Аутентификация не требуется.
func (h *Handler) GetPublicNote(ctx fiber.Ctx) error {
	userCtx := ctx.Context()
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.GetPublicNote"))
	log.Debug(userCtx, LogHandlerGetPublicNote)

	noteID := ctx.Params("note_id")
	if noteID == "" {
		log.Error(userCtx, ErrMsgInvalidNoteID)
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidNoteID,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	note, err := h.notesService.GetPublicNote(userCtx, noteID)
	if err != nil {
		log.Debug(userCtx, "failed to get public note", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(dto.NoteResponse{Note: note}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ListNotes обрабатывает запрос на получение списка заметок с пагинацией.
func (h *Handler) ListNotes(ctx fiber.Ctx) error {
	userCtx := ctx.Context()
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.ListNotes"))
	log.Debug(userCtx, LogHandlerListNotes)

	userID, _ := ctx.Locals(middleware.UserIDKey).(string)

	limitStr := ctx.Query("limit", strconv.Itoa(notesapp.DefaultLimit))
	offsetStr := ctx.Query("offset", "0")

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 0 {
		log.Error(userCtx, ErrMsgInvalidPagination)
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidPagination,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	offset, err := strconv.Atoi(offsetStr)
	if err != nil || offset < 0 {
		log.Error(userCtx, ErrMsgInvalidPagination)
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidPagination,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	notes, total, err := h.notesService.ListNotes(userCtx, userID, limit, offset)
	if err != nil {
		log.Error(userCtx, "failed to list notes", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(dto.ListNotesResponse{
		Notes:      notes,
		TotalCount: total,
		Limit:      limit,
		Offset:     offset,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// UpdateNote обрабатывает запрос на обновление заметки.
func (h *Handler) UpdateNote(ctx fiber.Ctx) error {
	userCtx := ctx.Context()
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.UpdateNote"))
	log.Debug(userCtx, LogHandlerUpdateNote)

	userID, _ := ctx.Locals(middleware.UserIDKey).(string)

	noteID := ctx.Params("note_id")
	if noteID == "" {
		log.Error(userCtx, ErrMsgInvalidNoteID)
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidNoteID,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	var req dto.UpdateNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(userCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidRequestBody,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	note, err := h.notesService.UpdateNote(userCtx, userID, noteID, notesapp.UpdateNoteParams{
		Title:    req.Title,
		Content:  req.Content,
		IsCode:   req.IsCode,
		Language: req.Language,
		IsPublic: req.IsPublic,
		Summary:  req.Summary,
		Tags:     req.Tags,
	})
	if err != nil {
		log.Debug(userCtx, "failed to update note", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(dto.NoteResponse{Note: note}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// DeleteNote обрабатывает запрос на удаление заметки.
func (h *Handler) DeleteNote(ctx fiber.Ctx) error {
	userCtx := ctx.Context()
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.DeleteNote"))
	log.Debug(userCtx, LogHandlerDeleteNote)

	userID, _ := ctx.Locals(middleware.UserIDKey).(string)

	noteID := ctx.Params("note_id")
	if noteID == "" {
		log.Error(userCtx, ErrMsgInvalidNoteID)
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidNoteID,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	if err := h.notesService.DeleteNote(userCtx, userID, noteID); err != nil {
		log.Debug(userCtx, "failed to delete note", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.SendStatus(fiber.StatusNoContent); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// handleError преобразует ошибки бизнес-логики в HTTP-статусы.
func handleError(ctx fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, notesapp.ErrNotFound):
		if err := ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": ErrMsgNoteNotFound,
		}); err != nil {
			return fmt.Errorf("error sending 404 response: %w", err)
		}
		return nil
	case errors.Is(err, notesapp.ErrInvalidParams):
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidRequestBody,
		}); err != nil {
			return fmt.Errorf("error sending 400 response: %w", err)
		}
		return nil
	}

	if err := ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": ErrMsgInternal,
	}); err != nil {
		return fmt.Errorf("error sending 500 response: %w", err)
	}
	return nil
}
