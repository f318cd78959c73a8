// Package shutdown предоставляет функциональность для корректного завершения приложения
// путем ожидания и обработки сигналов SIGINT и SIGTERM.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Wait блокирует выполнение до получения сигнала SIGINT или SIGTERM,
// затем выполняет хуки строго по порядку в рамках общего timeout.
// Порядок важен: HTTP-сервер должен остановиться раньше, чем закроются
// соединения с хранилищами, которыми пользуются его обработчики.
func Wait(timeout time.Duration, hooks ...func(context.Context) error) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		runHooks(ctx, hooks)
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}
}

// runHooks последовательно выполняет хуки, пока не истек контекст.
// Ошибка одного хука не мешает выполнению следующих.
func runHooks(ctx context.Context, hooks []func(context.Context) error) {
	for _, hook := range hooks {
		if ctx.Err() != nil {
			return
		}
		_ = hook(ctx)
	}
}
