package telegram

import (
	"context"
	"fmt"

	"github.com/futig/ragdesk/internal/config"
	"github.com/futig/ragdesk/internal/controller"
	"github.com/futig/ragdesk/internal/session"
	"github.com/futig/ragdesk/internal/telegram/bot"
	"github.com/futig/ragdesk/internal/telegram/handlers"
	"github.com/futig/ragdesk/internal/telegram/render"
	"go.uber.org/zap"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot initializes the telegram bot with all dependencies
func NewBot(
	cfg *config.TelegramConfig,
	sessionCfg config.SessionConfig,
	asker controller.Asker,
	exportUC handlers.ExportUsecase,
	logger *zap.Logger,
) (Bot, error) {
	b, err := bot.New(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	chatStore := session.NewRegistry[*handlers.ChatSession](sessionCfg.TTL, sessionCfg.CleanupInterval)
	chatStore.OnEvicted(func(id string, chat *handlers.ChatSession) {
		chat.View.Close()
		logger.Debug("chat session expired", zap.String("chat", id))
	})

	chats := handlers.NewChats(
		chatStore,
		b.GetAPI(),
		b.GetSender(),
		asker,
		render.NewOutcomeRenderer(),
		b.GetKeyboard(),
	)

	registerHandlers(b, chats, exportUC, logger)

	logger.Info("telegram bot initialized successfully")

	return b, nil
}

func registerHandlers(b *bot.Bot, chats *handlers.Chats, exportUC handlers.ExportUsecase, logger *zap.Logger) {
	sender := b.GetSender()

	b.RegisterHandler(handlers.NewQueryHandler(chats, sender))
	b.RegisterHandler(handlers.NewExportHandler(chats, exportUC, sender))

	logger.Info("telegram handlers registered",
		zap.Int("handler_count", 2),
	)
}
