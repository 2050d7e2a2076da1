package validator

import (
	"testing"

	"github.com/futig/ragdesk/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeQuery(t *testing.T) {
	query, err := NormalizeQuery("  what is RAG?\n")
	require.NoError(t, err)
	assert.Equal(t, "what is RAG?", query)
}

func TestNormalizeQueryEmpty(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\t "} {
		_, err := NormalizeQuery(raw)
		assert.ErrorIs(t, err, entity.ErrEmptyQuery, "input %q", raw)
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]entity.ResultFormat{
		"markdown": entity.FormatMarkdown,
		"md":       entity.FormatMarkdown,
		" PDF ":    entity.FormatPDF,
		"docx":     entity.FormatDOCX,
		"HTML":     entity.FormatHTML,
	}

	for raw, want := range tests {
		got, err := ParseFormat(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
	}
}

func TestParseFormatInvalid(t *testing.T) {
	_, err := ParseFormat("json")
	assert.ErrorIs(t, err, entity.ErrUnsupportedFormat)

	_, err = ParseFormat(" ")
	assert.ErrorIs(t, err, entity.ErrMissingField)
}
