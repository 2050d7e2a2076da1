package handlers

import (
	"context"

	"github.com/futig/ragdesk/internal/entity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// API is the part of the Bot API the handlers use. *tgbotapi.BotAPI
// implements it.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// ExportUsecase renders a transcript as a downloadable file.
type ExportUsecase interface {
	Export(ctx context.Context, transcript *entity.Transcript, format entity.ResultFormat) (*entity.ExportFile, error)
}
