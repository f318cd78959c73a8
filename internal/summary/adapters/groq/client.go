// Package groq реализует Summarizer поверх Groq chat completions API.
package groq

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"notesai/internal/config"
	"notesai/internal/summary/ports/services"
	"notesai/pkg/logger"
)

// Константы запроса к провайдеру.
const (
	completionsPath = "/openai/v1/chat/completions"

	systemPrompt = "You are a helpful assistant that summarizes text in a concise, informative way, " +
		"Do not tell us what you are doing just create the summary only."
	userPromptPrefix = "Please summarize the following text in 2-3 sentences, " +
		"Do not tell us what you are doing just create the summary only:\n\n"

	roleSystem = "system"
	roleUser   = "user"
)

// Константы для логирования.
const (
	LogSummarizing = "requesting summary from provider"
	LogSummarized  = "summary received from provider"

	ErrorProviderRequest = "provider request failed"
	ErrorProviderStatus  = "provider returned non-success status"
)

// Ошибки адаптера.
var (
	// ErrMissingAPIKey возвращается до любого сетевого вызова,
	// если учетные данные провайдера не сконфигурированы.
	ErrMissingAPIKey = errors.New("GROQ_API_KEY is not defined")
	// ErrProviderFailure возвращается при любом неуспешном ответе провайдера.
	ErrProviderFailure = errors.New("provider request failed")
	// ErrEmptyCompletion возвращается, когда ответ не содержит ни одного completion.
	ErrEmptyCompletion = errors.New("provider returned no completion choices")
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Client реализует интерфейс services.Summarizer.
type Client struct {
	http *resty.Client
	cfg  *config.GroqConfig
}

// NewClient создает нового клиента Groq API.
func NewClient(cfg *config.GroqConfig) services.Summarizer {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &Client{http: httpClient, cfg: cfg}
}

// Summarize выполняет один запрос chat completion и возвращает сводку
// с обрезанными пробелами по краям. Любой неуспешный статус провайдера -
// жесткая ошибка без повтора.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", "groq.Client.Summarize"))

	if c.cfg.APIKey == "" {
		return "", ErrMissingAPIKey
	}

	log.Debug(ctx, LogSummarizing, zap.Int("text_length", len(text)))

	body := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: roleSystem, Content: systemPrompt},
			{Role: roleUser, Content: userPromptPrefix + text},
		},
		MaxTokens: c.cfg.MaxTokens,
	}

	var result chatResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+c.cfg.APIKey).
		SetBody(body).
		SetResult(&result).
		Post(completionsPath)
	if err != nil {
		log.Error(ctx, ErrorProviderRequest, zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrProviderFailure, err)
	}

	if !resp.IsSuccess() {
		log.Error(ctx, ErrorProviderStatus, zap.Int("status", resp.StatusCode()))
		return "", fmt.Errorf("%w: API error: %d", ErrProviderFailure, resp.StatusCode())
	}

	if len(result.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	summary := strings.TrimSpace(result.Choices[0].Message.Content)
	log.Debug(ctx, LogSummarized, zap.Int("summary_length", len(summary)))

	return summary, nil
}
