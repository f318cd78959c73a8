package client

import (
	"context"
	"fmt"
)

// Тексты ошибок генерации саммари.
const (
	errMsgSummarizeTransport = "summarize request failed"
	errMsgSummarizeRejected  = "summary service rejected the request"
)

// Summarize запрашивает саммари текста одним POST-запросом. При любом
// сбое возвращает пустую строку; причина доступна через LastError.
// Summarize никогда не паникует и не возвращает ошибку вызывающему.
// Конкурентные вызовы выполняются независимо, без отмены и дедупликации.
func (c *Client) Summarize(ctx context.Context, text string) string {
	c.sumMu.Lock()
	c.inFlight++
	c.sumMu.Unlock()

	defer func() {
		c.sumMu.Lock()
		c.inFlight--
		c.sumMu.Unlock()
	}()

	var result struct {
		Summary string `json:"summary"`
	}

	resp, err := c.request(ctx).
		SetBody(map[string]string{"text": text}).
		SetResult(&result).
		Post("/api/groq/summarize")
	if err != nil {
		c.setLastError(fmt.Sprintf("%s: %v", errMsgSummarizeTransport, err))
		return ""
	}

	if !resp.IsSuccess() {
		msg := extractErrorMessage(resp.Body())
		if msg == "" {
			msg = fmt.Sprintf("%s: status %d", errMsgSummarizeRejected, resp.StatusCode())
		}
		c.setLastError(msg)
		return ""
	}

	c.setLastError("")
	return result.Summary
}

// Summarizing сообщает, выполняется ли сейчас хотя бы один запрос саммари.
func (c *Client) Summarizing() bool {
	c.sumMu.Lock()
	defer c.sumMu.Unlock()
	return c.inFlight > 0
}

// LastError возвращает сообщение о последнем сбое генерации саммари.
// Пустая строка означает, что последний вызов завершился успешно.
func (c *Client) LastError() string {
	c.sumMu.Lock()
	defer c.sumMu.Unlock()
	return c.lastSumErr
}

func (c *Client) setLastError(msg string) {
	c.sumMu.Lock()
	defer c.sumMu.Unlock()
	c.lastSumErr = msg
}
