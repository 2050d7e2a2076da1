package handlers

import (
	"context"

	pkgRetry "github.com/futig/ragdesk/internal/pkg/retry"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MessageSender delivers messages to chats, retrying failed sends.
type MessageSender struct {
	api   API
	retry pkgRetry.RetryConfig
}

func NewMessageSender(api API, retry pkgRetry.RetryConfig) *MessageSender {
	return &MessageSender{
		api:   api,
		retry: retry,
	}
}

// Send sends a plain text message.
func (s *MessageSender) Send(ctx context.Context, chatID int64, text string, markup any) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	return s.deliver(ctx, chatID, msg)
}

// SendHTML sends a message formatted with Telegram HTML.
func (s *MessageSender) SendHTML(ctx context.Context, chatID int64, text string, markup any) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	return s.deliver(ctx, chatID, msg)
}

// SendDocument uploads a file to the chat.
func (s *MessageSender) SendDocument(ctx context.Context, chatID int64, filename string, data []byte) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  filename,
		Bytes: data,
	})
	return s.deliver(ctx, chatID, doc)
}

func (s *MessageSender) deliver(ctx context.Context, chatID int64, c tgbotapi.Chattable) error {
	err := s.retry.Do(ctx,
		func() error {
			_, err := s.api.Send(c)
			return err
		},
		func(attempt uint, err error) {
			ctxzap.Warn(ctx, "failed to send message, retrying",
				zap.Error(err),
				zap.Uint("attempt", attempt+1),
				zap.Int64("chat_id", chatID),
			)
		},
	)
	if err != nil {
		ctxzap.Error(ctx, "failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
		return err
	}
	return nil
}
