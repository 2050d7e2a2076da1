package validator

import (
	"fmt"
	"strings"

	"github.com/futig/ragdesk/internal/entity"
)

// NormalizeQuery trims the raw input and rejects queries that are empty
// after trimming.
func NormalizeQuery(raw string) (string, error) {
	query := strings.TrimSpace(raw)
	if query == "" {
		return "", entity.ErrEmptyQuery
	}
	return query, nil
}

// ParseFormat validates an export format name. "md" is accepted as an alias
// of markdown.
func ParseFormat(raw string) (entity.ResultFormat, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return "", fmt.Errorf("%w: format", entity.ErrMissingField)
	}
	if name == "md" {
		name = string(entity.FormatMarkdown)
	}

	format := entity.ResultFormat(name)
	if !format.IsValid() {
		return "", fmt.Errorf("%w: %s", entity.ErrUnsupportedFormat, raw)
	}
	return format, nil
}
