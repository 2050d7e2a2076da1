package handlers

import (
	"context"

	"github.com/futig/ragdesk/internal/controller"
	"github.com/futig/ragdesk/internal/telegram/keyboard"
	"github.com/futig/ragdesk/internal/telegram/render"
)

// ChatView shows a query surface in a chat. Loading is the typing action;
// each filled region is posted as a new message, and clearing a region
// posts nothing since sent messages stay in the history.
type ChatView struct {
	ctx      context.Context
	chatID   int64
	sender   *MessageSender
	typing   *TypingNotifier
	keyboard *keyboard.Builder
}

func NewChatView(ctx context.Context, api API, chatID int64, sender *MessageSender, kb *keyboard.Builder) *ChatView {
	return &ChatView{
		ctx:      ctx,
		chatID:   chatID,
		sender:   sender,
		typing:   NewTypingNotifier(api, chatID),
		keyboard: kb,
	}
}

func (v *ChatView) SetLoading(visible bool) {
	if visible {
		v.typing.Start(v.ctx)
		return
	}
	v.typing.Stop()
}

func (v *ChatView) SetRegion(region controller.Region, content string) {
	if content == "" {
		return
	}

	var markup any
	if region == controller.RegionSources {
		markup = v.keyboard.ExportKeyboard()
	}

	parts := render.SplitMessage(content, render.MaxMessageLength)
	for i, part := range parts {
		if i == len(parts)-1 {
			v.sender.SendHTML(v.ctx, v.chatID, part, markup)
			continue
		}
		v.sender.SendHTML(v.ctx, v.chatID, part, nil)
	}
}

func (v *ChatView) Alert(message string) {
	v.sender.Send(v.ctx, v.chatID, "⚠️ "+message, nil)
}

// Close stops the typing action of an abandoned chat.
func (v *ChatView) Close() {
	v.typing.Stop()
}
