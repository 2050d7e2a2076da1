package ui

import (
	"context"

	"github.com/futig/ragdesk/internal/entity"
)

type ExportUsecase interface {
	Export(ctx context.Context, transcript *entity.Transcript, format entity.ResultFormat) (*entity.ExportFile, error)
}

type PageStore interface {
	Set(id string, page *Page)
	Get(id string) (*Page, bool)
	Hold(id string) (page *Page, release func(), ok bool)
}
