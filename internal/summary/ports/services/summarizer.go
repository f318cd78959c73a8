// Package services defines service interfaces for summarization.
package services

import "context"

// Summarizer определяет интерфейс генерации краткой сводки текста.
// Один вызов - одна попытка: без повторов и без стриминга токенов.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}
