package keyboard

import (
	"github.com/futig/ragdesk/internal/entity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Builder creates inline keyboards
type Builder struct{}

// NewBuilder creates a keyboard builder
func NewBuilder() *Builder {
	return &Builder{}
}

// ExportKeyboard offers the last answer for download
func (b *Builder) ExportKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 Markdown", EncodeCallback(ActionExport, string(entity.FormatMarkdown))),
			tgbotapi.NewInlineKeyboardButtonData("📄 DOCX", EncodeCallback(ActionExport, string(entity.FormatDOCX))),
			tgbotapi.NewInlineKeyboardButtonData("📕 PDF", EncodeCallback(ActionExport, string(entity.FormatPDF))),
			tgbotapi.NewInlineKeyboardButtonData("🌐 HTML", EncodeCallback(ActionExport, string(entity.FormatHTML))),
		),
	)
}
