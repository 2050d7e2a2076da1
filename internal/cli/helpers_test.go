package cli

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/futig/ragdesk/internal/entity"
)

type countingLoader struct {
	mu      sync.Mutex
	started int
	stopped int
}

func (l *countingLoader) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.started++
}

func (l *countingLoader) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopped++
}

type recordingAsker struct {
	mu      sync.Mutex
	queries []string
	outcome *entity.Outcome
}

func (a *recordingAsker) Ask(_ context.Context, query string) *entity.Outcome {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.queries = append(a.queries, query)
	return a.outcome
}

func (a *recordingAsker) asked() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.queries...)
}

func newPlainRenderer() *TextRenderer {
	return NewTextRenderer(lipgloss.NewRenderer(io.Discard))
}

func strPtr(s string) *string { return &s }

func successOutcome() *entity.Outcome {
	similarity := 0.876
	chunk := 3
	return &entity.Outcome{
		Kind: entity.OutcomeSuccess,
		Answer: &entity.Answer{
			Text:       "RAG combines retrieval\nwith generation.\n\nIt cites sources.",
			Paragraphs: []string{"RAG combines retrieval\nwith generation.", "It cites sources."},
			Sources: []entity.Source{
				{
					Content:    strPtr("Retrieval-augmented generation grounds answers."),
					Similarity: &similarity,
					Metadata:   &entity.SourceMetadata{Filename: strPtr("rag.pdf"), ChunkIndex: &chunk},
				},
			},
		},
	}
}

// syncBuffer is a bytes.Buffer safe for writers on other goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
