package handlers

import (
	"context"
)

// Handler routes
const (
	RouteQuery  = "QUERY"
	RouteExport = "EXPORT"
)

// Message represents a normalized Telegram message
type Message struct {
	ChatID       int64
	UserID       int64
	MessageID    int
	Text         string
	CallbackData string
	CallbackID   string
}

// Handler processes one kind of update
type Handler interface {
	Handle(ctx context.Context, msg *Message) error

	// Route returns the route this handler serves
	Route() string
}

// BaseHandler provides common functionality for all handlers
type BaseHandler struct {
	route         string
	messageSender *MessageSender
}

// Route implements Handler
func (h *BaseHandler) Route() string {
	return h.route
}

func (h *BaseHandler) sendMessage(ctx context.Context, chatID int64, text string, markup any) {
	if h.messageSender != nil {
		h.messageSender.Send(ctx, chatID, text, markup)
	}
}

var validRoutes = map[string]bool{
	RouteQuery:  true,
	RouteExport: true,
}

// IsValidRoute checks if a route is valid for handler registration
func IsValidRoute(route string) bool {
	_, ok := validRoutes[route]
	return ok
}
