package middleware

import (
	"testing"
	"time"

	"github.com/futig/ragdesk/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeSender struct {
	sent []tgbotapi.MessageConfig
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

func textUpdate(userID, chatID int64) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			From: &tgbotapi.User{ID: userID},
			Chat: &tgbotapi.Chat{ID: chatID},
			Text: "hi",
		},
	}
}

func TestRateLimiterBurstAndRefill(t *testing.T) {
	sender := &fakeSender{}
	rl := NewRateLimiterMiddleware(60, 2, zaptest.NewLogger(t), sender)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	passed := 0
	next := func(tgbotapi.Update) { passed++ }

	for i := 0; i < 4; i++ {
		rl.Handle(textUpdate(1, 10), next)
	}
	assert.Equal(t, 2, passed)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, render.MsgRateLimitFirst, sender.sent[0].Text)

	now = now.Add(time.Second)
	rl.Handle(textUpdate(1, 10), next)
	assert.Equal(t, 3, passed)
}

func TestRateLimiterSeparateUsers(t *testing.T) {
	rl := NewRateLimiterMiddleware(60, 1, zaptest.NewLogger(t), &fakeSender{})

	passed := 0
	next := func(tgbotapi.Update) { passed++ }

	rl.Handle(textUpdate(1, 10), next)
	rl.Handle(textUpdate(2, 20), next)

	assert.Equal(t, 2, passed)
}

func TestRateLimiterEscalatesWarnings(t *testing.T) {
	sender := &fakeSender{}
	rl := NewRateLimiterMiddleware(0, 1, zaptest.NewLogger(t), sender)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	next := func(tgbotapi.Update) {}
	rl.Handle(textUpdate(1, 10), next)

	rl.Handle(textUpdate(1, 10), next)
	rl.Handle(textUpdate(1, 10), next)
	now = now.Add(31 * time.Second)
	rl.Handle(textUpdate(1, 10), next)
	now = now.Add(31 * time.Second)
	rl.Handle(textUpdate(1, 10), next)

	require.Len(t, sender.sent, 3)
	assert.Equal(t, render.MsgRateLimitFirst, sender.sent[0].Text)
	assert.Equal(t, render.MsgRateLimitSecond, sender.sent[1].Text)
	assert.Equal(t, render.MsgRateLimitFinal, sender.sent[2].Text)
}

func TestRecoveryMiddleware(t *testing.T) {
	sender := &fakeSender{}
	m := NewRecoveryMiddleware(zaptest.NewLogger(t), sender)

	assert.NotPanics(t, func() {
		m.Handle(textUpdate(1, 10), func(tgbotapi.Update) { panic("boom") })
	})

	require.Len(t, sender.sent, 1)
	assert.Equal(t, int64(10), sender.sent[0].ChatID)
	assert.Equal(t, render.ErrGeneric, sender.sent[0].Text)
}

func TestUpdateOrigin(t *testing.T) {
	userID, chatID, ok := updateOrigin(textUpdate(1, 10))
	assert.True(t, ok)
	assert.Equal(t, int64(1), userID)
	assert.Equal(t, int64(10), chatID)

	_, chatID, ok = updateOrigin(tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{From: &tgbotapi.User{ID: 3}},
	})
	assert.True(t, ok)
	assert.Zero(t, chatID)

	_, _, ok = updateOrigin(tgbotapi.Update{})
	assert.False(t, ok)
}

func TestUpdateKind(t *testing.T) {
	assert.Equal(t, "query", updateKind(textUpdate(1, 10)))
	assert.Equal(t, "callback", updateKind(tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{}}))
	assert.Equal(t, "other", updateKind(tgbotapi.Update{}))

	command := textUpdate(1, 10)
	command.Message.Text = "/help"
	command.Message.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 5}}
	assert.Equal(t, "command", updateKind(command))
}

func TestLoggingMiddlewareCallsNext(t *testing.T) {
	m := NewLoggingMiddleware(zaptest.NewLogger(t))

	called := false
	m.Handle(textUpdate(1, 10), func(tgbotapi.Update) { called = true })

	assert.True(t, called)
}
