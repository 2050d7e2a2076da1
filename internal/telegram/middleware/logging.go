package middleware

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// LoggingMiddleware logs every update and how long it took to handle
type LoggingMiddleware struct {
	logger *zap.Logger
}

func NewLoggingMiddleware(logger *zap.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{
		logger: logger,
	}
}

func (m *LoggingMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	userID, chatID, _ := updateOrigin(update)
	log := m.logger.With(
		zap.Int("update_id", update.UpdateID),
		zap.Int64("user_id", userID),
		zap.Int64("chat_id", chatID),
	)

	log.Debug("telegram update received", zap.String("kind", updateKind(update)))

	start := time.Now()
	next(update)

	log.Info("telegram update processed", zap.Duration("duration", time.Since(start)))
}

// updateKind names the update for logs. Query text is never logged.
func updateKind(update tgbotapi.Update) string {
	switch {
	case update.Message == nil && update.CallbackQuery != nil:
		return "callback"
	case update.Message == nil:
		return "other"
	case update.Message.IsCommand():
		return "command"
	case update.Message.Text != "":
		return "query"
	default:
		return "other"
	}
}
