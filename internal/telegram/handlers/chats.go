package handlers

import (
	"context"
	"strconv"

	"github.com/futig/ragdesk/internal/controller"
	"github.com/futig/ragdesk/internal/pkg/logger"
	"github.com/futig/ragdesk/internal/session"
	"github.com/futig/ragdesk/internal/telegram/keyboard"
	"go.uber.org/zap"
)

// ChatSession is the query surface of one chat.
type ChatSession struct {
	ChatID     int64
	View       *ChatView
	Controller *controller.Controller
	Recorder   *session.Recorder
}

// ChatStore keeps chat sessions by chat id.
type ChatStore interface {
	Get(id string) (*ChatSession, bool)
	GetOrCreate(id string, create func() *ChatSession) *ChatSession
}

// Chats creates chat sessions on first use and finds them afterwards.
type Chats struct {
	store    ChatStore
	api      API
	sender   *MessageSender
	asker    controller.Asker
	renderer controller.Renderer
	keyboard *keyboard.Builder
}

func NewChats(
	store ChatStore,
	api API,
	sender *MessageSender,
	asker controller.Asker,
	renderer controller.Renderer,
	kb *keyboard.Builder,
) *Chats {
	return &Chats{
		store:    store,
		api:      api,
		sender:   sender,
		asker:    asker,
		renderer: renderer,
		keyboard: kb,
	}
}

// ChatKey is the store key of a chat.
func ChatKey(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

// Open returns the session of the chat, creating it if needed. The session
// outlives ctx, so it keeps only the logger of ctx.
func (c *Chats) Open(ctx context.Context, chatID int64) *ChatSession {
	return c.store.GetOrCreate(ChatKey(chatID), func() *ChatSession {
		viewCtx := logger.Detach(ctx, zap.Int64("chat_id", chatID))
		view := NewChatView(viewCtx, c.api, chatID, c.sender, c.keyboard)
		recorder := session.NewRecorder()

		return &ChatSession{
			ChatID:     chatID,
			View:       view,
			Recorder:   recorder,
			Controller: controller.New(c.asker, view, c.renderer, controller.WithAnswerListener(recorder.Record)),
		}
	})
}

// Find returns the session of the chat if it exists.
func (c *Chats) Find(chatID int64) (*ChatSession, bool) {
	return c.store.Get(ChatKey(chatID))
}
