package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/futig/ragdesk/internal/config"
	"github.com/futig/ragdesk/internal/telegram/handlers"
	"github.com/futig/ragdesk/internal/telegram/keyboard"
	"github.com/futig/ragdesk/internal/telegram/middleware"
	"github.com/futig/ragdesk/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Bot represents the Telegram bot
type Bot struct {
	api         *tgbotapi.BotAPI
	cfg         *config.TelegramConfig
	handlers    map[string]handlers.Handler
	sender      *handlers.MessageSender
	keyboard    *keyboard.Builder
	logger      *zap.Logger
	loggingMW   *middleware.LoggingMiddleware
	recoveryMW  *middleware.RecoveryMiddleware
	rateLimitMW *middleware.RateLimiterMiddleware
	updatesChan tgbotapi.UpdatesChannel
	stopChan    chan struct{}
	wg          sync.WaitGroup
}

// New creates a new Telegram bot
func New(cfg *config.TelegramConfig, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	api.Debug = false

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	bot := &Bot{
		api:      api,
		cfg:      cfg,
		sender:   handlers.NewMessageSender(api, cfg.SendRetry),
		keyboard: keyboard.NewBuilder(),
		logger:   logger,
		handlers: make(map[string]handlers.Handler),
		stopChan: make(chan struct{}),
	}

	bot.loggingMW = middleware.NewLoggingMiddleware(logger)
	bot.recoveryMW = middleware.NewRecoveryMiddleware(logger, api)
	bot.rateLimitMW = middleware.NewRateLimiterMiddleware(
		cfg.RateLimitPerMinute,
		cfg.RateLimitBurst,
		logger,
		api,
	)

	return bot, nil
}

// Start starts the bot
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout

	b.updatesChan = b.api.GetUpdatesChan(u)

	ctx = ctxzap.ToContext(ctx, b.logger)

	go b.processUpdates(ctx)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops the bot gracefully with timeout
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	close(b.stopChan)
	b.api.StopReceivingUpdates()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	shutdownTimeout := time.Duration(b.cfg.ShutdownTimeout) * time.Second
	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(shutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", shutdownTimeout),
		)
		return fmt.Errorf("shutdown timeout exceeded")
	}

	b.logger.Info("telegram bot stopped successfully")
	return nil
}

func (b *Bot) processUpdates(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update, ok := <-b.updatesChan:
			if !ok {
				ctxzap.Info(ctx, "updates channel closed")
				return
			}
			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer b.wg.Done()
				b.handleUpdateWithMiddleware(u)
			}(update)
		}
	}
}

// handleUpdateWithMiddleware runs rate limit, logging and recovery before the handler
func (b *Bot) handleUpdateWithMiddleware(update tgbotapi.Update) {
	b.rateLimitMW.Handle(update, func(u tgbotapi.Update) {
		b.loggingMW.Handle(u, func(u2 tgbotapi.Update) {
			b.recoveryMW.Handle(u2, func(u3 tgbotapi.Update) {
				b.handleUpdate(u3)
			})
		})
	})
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	ctx := ctxzap.ToContext(context.Background(), b.logger.With(
		zap.Int("update_id", update.UpdateID),
	))

	if update.CallbackQuery != nil {
		b.handleCallbackQuery(ctx, update.CallbackQuery)
		return
	}

	if update.Message != nil {
		b.handleMessage(ctx, update.Message)
		return
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}

	if message.Text == "" {
		ctxzap.Debug(ctx, "ignoring non-text message", zap.Int64("chat_id", message.Chat.ID))
		return
	}

	b.dispatch(ctx, handlers.RouteQuery, newMessage(message, message.Text))
}

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	command := message.Command()

	ctxzap.Info(ctx, "command received",
		zap.String("command", command),
		zap.Int64("chat_id", message.Chat.ID),
	)

	switch command {
	case "start":
		b.sendText(ctx, message.Chat.ID, render.MsgWelcome, false)
	case "help":
		b.sendText(ctx, message.Chat.ID, render.MsgHelp, true)
	case "export":
		b.dispatch(ctx, handlers.RouteExport, newMessage(message, message.CommandArguments()))
	default:
		b.sendText(ctx, message.Chat.ID, render.ErrUnknownCommand, false)
	}
}

func (b *Bot) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if query.Message == nil {
		b.answerCallback(ctx, query.ID, "")
		return
	}

	callbackData, err := keyboard.ParseCallback(query.Data)
	if err != nil {
		ctxzap.Warn(ctx, "invalid callback data",
			zap.Error(err),
			zap.String("data", query.Data),
		)
		b.answerCallback(ctx, query.ID, "❌ Invalid data")
		return
	}

	ctxzap.Info(ctx, "callback query received",
		zap.String("callback_action", callbackData.Action),
		zap.String("value", callbackData.Value),
		zap.Int64("user_id", query.From.ID),
	)

	var route string
	switch callbackData.Action {
	case keyboard.ActionExport:
		route = handlers.RouteExport
	default:
		b.answerCallback(ctx, query.ID, "❌ Unknown action")
		return
	}

	// Answer first so Telegram does not show the query as stale.
	b.answerCallback(ctx, query.ID, "⏳ Preparing the file...")

	b.dispatch(ctx, route, &handlers.Message{
		ChatID:       query.Message.Chat.ID,
		UserID:       query.From.ID,
		MessageID:    query.Message.MessageID,
		CallbackData: query.Data,
		CallbackID:   query.ID,
	})
}

func (b *Bot) dispatch(ctx context.Context, route string, msg *handlers.Message) {
	handler, exists := b.handlers[route]
	if !exists {
		ctxzap.Warn(ctx, "no handler for route", zap.String("route", route))
		b.sendText(ctx, msg.ChatID, render.ErrGeneric, false)
		return
	}

	if err := handler.Handle(ctx, msg); err != nil {
		ctxzap.Error(ctx, "handler error",
			zap.Error(err),
			zap.String("route", route),
			zap.Int64("chat_id", msg.ChatID),
		)
		b.sendText(ctx, msg.ChatID, render.ClassifyError(err), false)
	}
}

func newMessage(message *tgbotapi.Message, text string) *handlers.Message {
	msg := &handlers.Message{
		ChatID:    message.Chat.ID,
		MessageID: message.MessageID,
		Text:      text,
	}
	if message.From != nil {
		msg.UserID = message.From.ID
	}
	return msg
}

func (b *Bot) sendText(ctx context.Context, chatID int64, text string, html bool) {
	if html {
		b.sender.SendHTML(ctx, chatID, text, nil)
		return
	}
	b.sender.Send(ctx, chatID, text, nil)
}

func (b *Bot) answerCallback(ctx context.Context, callbackID string, text string) {
	callback := tgbotapi.NewCallback(callbackID, text)
	if _, err := b.api.Request(callback); err != nil {
		ctxzap.Error(ctx, "failed to answer callback",
			zap.Error(err),
			zap.String("callback_id", callbackID),
		)
	}
}

// RegisterHandler registers a handler for its route
func (b *Bot) RegisterHandler(handler handlers.Handler) {
	route := handler.Route()

	if !handlers.IsValidRoute(route) {
		b.logger.Fatal("invalid handler route", zap.String("route", route))
	}

	b.handlers[route] = handler
	b.logger.Info("handler registered", zap.String("route", route))
}

// GetAPI returns the bot API instance (for handlers)
func (b *Bot) GetAPI() *tgbotapi.BotAPI {
	return b.api
}

// GetSender returns the shared message sender (for handlers)
func (b *Bot) GetSender() *handlers.MessageSender {
	return b.sender
}

// GetKeyboard returns the keyboard builder (for handlers)
func (b *Bot) GetKeyboard() *keyboard.Builder {
	return b.keyboard
}
