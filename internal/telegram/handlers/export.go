package handlers

import (
	"context"
	"strings"

	"github.com/futig/ragdesk/internal/entity"
	"github.com/futig/ragdesk/internal/pkg/validator"
	"github.com/futig/ragdesk/internal/telegram/keyboard"
	"github.com/futig/ragdesk/internal/telegram/render"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ExportHandler sends the last answer of a chat as a file. The format comes
// from an export button or from the /export command argument.
type ExportHandler struct {
	BaseHandler
	chats  *Chats
	export ExportUsecase
}

func NewExportHandler(chats *Chats, export ExportUsecase, sender *MessageSender) *ExportHandler {
	return &ExportHandler{
		BaseHandler: BaseHandler{
			route:         RouteExport,
			messageSender: sender,
		},
		chats:  chats,
		export: export,
	}
}

func (h *ExportHandler) Handle(ctx context.Context, msg *Message) error {
	rawFormat := strings.TrimSpace(msg.Text)
	if msg.CallbackData != "" {
		data, err := keyboard.ParseCallback(msg.CallbackData)
		if err != nil {
			return err
		}
		rawFormat = data.Value
	}
	if rawFormat == "" {
		rawFormat = string(entity.FormatMarkdown)
	}

	format, err := validator.ParseFormat(rawFormat)
	if err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	chat, ok := h.chats.Find(msg.ChatID)
	if !ok {
		h.HandleError(ctx, msg.ChatID, entity.ErrNothingToExport)
		return nil
	}

	file, err := h.export.Export(ctx, chat.Recorder.Last(), format)
	if err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	ctxzap.Info(ctx, "sending exported answer",
		zap.String("format", string(format)),
		zap.Int64("chat_id", msg.ChatID),
	)

	h.sendMessage(ctx, msg.ChatID, render.MsgExportReady, nil)
	return h.messageSender.SendDocument(ctx, msg.ChatID, file.Filename, file.Content)
}
