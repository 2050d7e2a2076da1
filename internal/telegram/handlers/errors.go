package handlers

import (
	"context"
	"errors"

	"github.com/futig/ragdesk/internal/entity"
	"github.com/futig/ragdesk/internal/telegram/render"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity int

const (
	SeverityWarning ErrorSeverity = iota
	SeverityError
)

func (s ErrorSeverity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// HandlerError pairs an error with the text shown to the user
type HandlerError struct {
	Err         error
	UserMessage string
	LogMessage  string
	Severity    ErrorSeverity
}

// classifyHandlerError maps an error to its user message and log severity
func classifyHandlerError(err error) *HandlerError {
	switch {
	case err == nil:
		return &HandlerError{
			UserMessage: render.ErrGeneric,
			LogMessage:  "unknown error",
			Severity:    SeverityWarning,
		}
	case errors.Is(err, entity.ErrNothingToExport):
		return &HandlerError{
			Err:         err,
			UserMessage: render.ErrNothingToExport,
			LogMessage:  "nothing to export",
			Severity:    SeverityWarning,
		}
	case errors.Is(err, entity.ErrUnsupportedFormat), errors.Is(err, entity.ErrMissingField):
		return &HandlerError{
			Err:         err,
			UserMessage: render.ErrUnsupportedFormat,
			LogMessage:  "unsupported export format",
			Severity:    SeverityWarning,
		}
	case errors.Is(err, entity.ErrSessionNotFound):
		return &HandlerError{
			Err:         err,
			UserMessage: render.ErrSessionNotFound,
			LogMessage:  "chat session not found",
			Severity:    SeverityWarning,
		}
	}

	return &HandlerError{
		Err:         err,
		UserMessage: render.ClassifyError(err),
		LogMessage:  "handler error",
		Severity:    SeverityError,
	}
}

// HandleError logs err with its severity and tells the user what happened
func (h *BaseHandler) HandleError(ctx context.Context, chatID int64, err error) {
	if err == nil {
		return
	}

	handlerErr := classifyHandlerError(err)

	switch handlerErr.Severity {
	case SeverityError:
		ctxzap.Error(ctx, handlerErr.LogMessage,
			zap.Error(handlerErr.Err),
			zap.Int64("chat_id", chatID),
		)
	default:
		ctxzap.Warn(ctx, handlerErr.LogMessage,
			zap.Error(handlerErr.Err),
			zap.Int64("chat_id", chatID),
		)
	}

	h.sendMessage(ctx, chatID, handlerErr.UserMessage, nil)
}
