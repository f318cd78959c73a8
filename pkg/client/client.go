// Package client предоставляет Go-клиент HTTP API сервиса.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

// Ошибки клиента.
var (
	ErrUnauthorized = errors.New("client unauthorized")
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("resource conflict")
	ErrBadRequest   = errors.New("bad request")
	ErrServer       = errors.New("server error")
)

// DefaultTimeout - таймаут HTTP-запросов по умолчанию.
const DefaultTimeout = 15 * time.Second

// Config - настройки клиента.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client - HTTP-клиент API сервиса. Безопасен для конкурентного
// использования.
type Client struct {
	http *resty.Client

	mu           sync.RWMutex
	accessToken  string
	refreshToken string

	sumMu      sync.Mutex
	inFlight   int
	lastSumErr string
}

// New создает новый клиент API.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &Client{http: httpClient}
}

// SetTokens сохраняет пару токенов для последующих запросов.
func (c *Client) SetTokens(accessToken, refreshToken string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = strings.TrimSpace(accessToken)
	c.refreshToken = strings.TrimSpace(refreshToken)
}

// AccessToken возвращает текущий access-токен.
func (c *Client) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

// RefreshToken возвращает текущий refresh-токен.
func (c *Client) RefreshToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refreshToken
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json")

	if token := c.AccessToken(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}

	return req
}

// mapHTTPError преобразует неуспешный ответ в ошибку клиента.
func mapHTTPError(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	msg := extractErrorMessage(resp.Body())

	var base error
	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		base = ErrUnauthorized
	case http.StatusNotFound:
		base = ErrNotFound
	case http.StatusConflict:
		base = ErrConflict
	case http.StatusBadRequest:
		base = ErrBadRequest
	default:
		base = ErrServer
	}

	if msg == "" {
		return fmt.Errorf("%w: status %d", base, resp.StatusCode())
	}
	return fmt.Errorf("%w: %s", base, msg)
}

func extractErrorMessage(body []byte) string {
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	return envelope.Error
}
