package handlers

import (
	"context"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// typingInterval is shorter than the 5s a typing action stays visible.
const typingInterval = 4 * time.Second

// TypingNotifier keeps the "typing" chat action visible while started. It
// can be started again after Stop.
type TypingNotifier struct {
	api      API
	chatID   int64
	interval time.Duration

	mu   sync.Mutex
	done chan struct{}
}

func NewTypingNotifier(api API, chatID int64) *TypingNotifier {
	return &TypingNotifier{
		api:      api,
		chatID:   chatID,
		interval: typingInterval,
	}
}

// Start sends a typing action now and then every interval until Stop or
// until ctx is done. Starting a running notifier is a no-op.
func (t *TypingNotifier) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done != nil {
		return
	}

	done := make(chan struct{})
	t.done = done

	t.sendAction(ctx)

	go func() {
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				t.sendAction(ctx)
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops sending typing actions.
func (t *TypingNotifier) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done == nil {
		return
	}

	close(t.done)
	t.done = nil
}

// Active reports whether the notifier is running.
func (t *TypingNotifier) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.done != nil
}

func (t *TypingNotifier) sendAction(ctx context.Context) {
	action := tgbotapi.NewChatAction(t.chatID, tgbotapi.ChatTyping)
	if _, err := t.api.Request(action); err != nil {
		ctxzap.Warn(ctx, "failed to send typing action",
			zap.Error(err),
			zap.Int64("chat_id", t.chatID),
		)
	}
}
