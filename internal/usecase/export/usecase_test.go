package export

import (
	"context"
	"testing"
	"time"

	"github.com/futig/ragdesk/internal/entity"
	"github.com/futig/ragdesk/internal/pkg/formatter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func sampleTranscript() *entity.Transcript {
	return &entity.Transcript{
		SubmissionID: "sub-1",
		Query:        "What is RAG?",
		AnsweredAt:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Answer: &entity.Answer{
			Text:       "Retrieval first.\n\nThen generation.",
			Paragraphs: []string{"Retrieval first.", "Then generation."},
			Sources: []entity.Source{
				{
					Content:    ptr("chunk text"),
					Similarity: ptr(0.87),
					Metadata:   &entity.SourceMetadata{Filename: ptr("a.txt"), ChunkIndex: ptr(2)},
				},
				{},
			},
		},
	}
}

func TestExportNothingToExport(t *testing.T) {
	u := NewUsecase(formatter.NewFactory())

	_, err := u.Export(context.Background(), nil, entity.FormatMarkdown)

	assert.ErrorIs(t, err, entity.ErrNothingToExport)
}

func TestExportMarkdown(t *testing.T) {
	u := NewUsecase(formatter.NewFactory())

	file, err := u.Export(context.Background(), sampleTranscript(), entity.FormatMarkdown)
	require.NoError(t, err)

	assert.Equal(t, "answer-sub-1.md", file.Filename)
	assert.Equal(t, "text/markdown; charset=utf-8", file.ContentType)

	content := string(file.Content)
	assert.Contains(t, content, "## Question\n\nWhat is RAG?")
	assert.Contains(t, content, "Then generation.")
	assert.Contains(t, content, "## Source 1 (87% similarity)\n\na.txt, Chunk 2\n\nchunk text")
	assert.Contains(t, content, "## Source 2\n\nNo content")
}

func TestExportUnsupportedFormat(t *testing.T) {
	u := NewUsecase(formatter.NewFactory())

	_, err := u.Export(context.Background(), sampleTranscript(), "xlsx")

	assert.ErrorIs(t, err, entity.ErrUnsupportedFormat)
}

func TestBuildDocumentWithoutSources(t *testing.T) {
	transcript := sampleTranscript()
	transcript.Answer.Sources = nil
	transcript.AnsweredAt = time.Time{}

	doc := BuildDocument(transcript)

	require.Len(t, doc.Sections, 3)
	assert.Equal(t, "Sources", doc.Sections[2].Heading)
	assert.Equal(t, []string{"No sources are available for this query"}, doc.Sections[2].Paragraphs)
}

func TestBuildDocumentSplitsUnsplitAnswer(t *testing.T) {
	transcript := sampleTranscript()
	transcript.Answer.Paragraphs = nil

	doc := BuildDocument(transcript)

	assert.Equal(t, []string{"Retrieval first.", "Then generation."}, doc.Sections[1].Paragraphs)
}
