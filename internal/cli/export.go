package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/futig/ragdesk/internal/entity"
	"github.com/futig/ragdesk/internal/pkg/validator"
)

const exportFileMode = 0o644

// saveExport writes the transcript in the named format into dir and returns
// the path of the written file.
func saveExport(ctx context.Context, exporter ExportUsecase, transcript *entity.Transcript, formatName, dir string) (string, error) {
	format, err := validator.ParseFormat(formatName)
	if err != nil {
		return "", err
	}

	file, err := exporter.Export(ctx, transcript, format)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, file.Filename)
	if err := os.WriteFile(path, file.Content, exportFileMode); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	return path, nil
}
