package cli

import (
	"context"

	"github.com/futig/ragdesk/internal/entity"
)

type ExportUsecase interface {
	Export(ctx context.Context, transcript *entity.Transcript, format entity.ResultFormat) (*entity.ExportFile, error)
}

// LineReader reads one line of user input per call.
type LineReader interface {
	ReadLine() (string, error)
}
