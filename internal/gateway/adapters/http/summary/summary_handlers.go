// Package summary содержит HTTP-обработчик генерации саммари.
package summary

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notesai/internal/gateway/app/dto"
	"notesai/internal/summary/ports/services"
	"notesai/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerSummarize = "handling summarize request"

	// Тексты ошибок являются частью контракта API.
	ErrMsgTextRequired    = "Text is required and must be a string"
	ErrMsgSummarizeFailed = "Failed to generate summary"
)

// Handler обработчик HTTP-запросов генерации саммари.
type Handler struct {
	summarizer services.Summarizer
}

// NewHandler создает новый экземпляр обработчика саммари.
func NewHandler(summarizer services.Summarizer) *Handler {
	return &Handler{
		summarizer: summarizer,
	}
}

// Summarize обрабатывает запрос на генерацию саммари текста.
// Поле text обязано быть непустой строкой; детали сбоя провайдера
// не раскрываются клиенту.
func (h *Handler) Summarize(ctx fiber.Ctx) error {
	userCtx := ctx.Context()
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.Summarize"))
	log.Debug(userCtx, LogHandlerSummarize)

	var req dto.SummarizeRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Debug(userCtx, "invalid request body", zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgTextRequired)
	}

	text, ok := req.Text.(string)
	if !ok || text == "" {
		log.Debug(userCtx, "text field missing or not a string")
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgTextRequired)
	}

	result, err := h.summarizer.Summarize(userCtx, text)
	if err != nil {
		log.Error(userCtx, "summary generation failed", zap.Error(err))
		return sendError(ctx, fiber.StatusInternalServerError, ErrMsgSummarizeFailed)
	}

	if err := ctx.JSON(dto.SummarizeResponse{Summary: result}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

func sendError(ctx fiber.Ctx, status int, msg string) error {
	if err := ctx.Status(status).JSON(dto.ErrorResponse{Error: msg}); err != nil {
		return fmt.Errorf("error sending %d response: %w", status, err)
	}
	return nil
}
