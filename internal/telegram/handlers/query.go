package handlers

import (
	"context"
	"errors"

	"github.com/futig/ragdesk/internal/controller"
	"github.com/futig/ragdesk/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// QueryHandler treats every text message as a submitted query. Telegram
// clients send on Enter and insert a newline on Shift+Enter, so a received
// message is always a confirm gesture.
type QueryHandler struct {
	BaseHandler
	chats *Chats
}

func NewQueryHandler(chats *Chats, sender *MessageSender) *QueryHandler {
	return &QueryHandler{
		BaseHandler: BaseHandler{
			route:         RouteQuery,
			messageSender: sender,
		},
		chats: chats,
	}
}

func (h *QueryHandler) Handle(ctx context.Context, msg *Message) error {
	chat := h.chats.Open(ctx, msg.ChatID)

	_, err := chat.Controller.HandleKey(ctx, controller.KeyEvent{Key: controller.KeyEnter}, msg.Text)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, entity.ErrEmptyQuery):
		ctxzap.Debug(ctx, "empty query rejected", zap.Int64("chat_id", msg.ChatID))
		return nil
	case errors.Is(err, entity.ErrSuperseded):
		ctxzap.Debug(ctx, "submission superseded", zap.Int64("chat_id", msg.ChatID))
		return nil
	default:
		return err
	}
}
