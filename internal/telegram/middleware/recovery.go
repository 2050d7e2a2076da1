package middleware

import (
	"runtime/debug"

	"github.com/futig/ragdesk/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// RecoveryMiddleware turns a panic in a handler into an error log and a
// generic apology to the chat
type RecoveryMiddleware struct {
	logger *zap.Logger
	bot    Sender
}

func NewRecoveryMiddleware(logger *zap.Logger, bot Sender) *RecoveryMiddleware {
	return &RecoveryMiddleware{
		logger: logger,
		bot:    bot,
	}
}

func (m *RecoveryMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		_, chatID, _ := updateOrigin(update)
		log := m.logger.With(
			zap.Int("update_id", update.UpdateID),
			zap.Int64("chat_id", chatID),
		)
		log.Error("panic recovered in telegram handler",
			zap.Any("panic", r),
			zap.ByteString("stack", debug.Stack()),
		)

		if chatID == 0 {
			return
		}
		if _, err := m.bot.Send(tgbotapi.NewMessage(chatID, render.ErrGeneric)); err != nil {
			log.Error("failed to send error message", zap.Error(err))
		}
	}()

	next(update)
}
