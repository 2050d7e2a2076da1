package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/futig/ragdesk/internal/entity"
	"github.com/futig/ragdesk/internal/pkg/formatter"
	"github.com/futig/ragdesk/internal/usecase/export"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type scriptedReader struct {
	lines []string
	end   error
	reads int
}

func (r *scriptedReader) ReadLine() (string, error) {
	if r.reads >= len(r.lines) {
		return "", r.end
	}
	line := r.lines[r.reads]
	r.reads++
	return line, nil
}

type shellFixture struct {
	shell  *Shell
	asker  *recordingAsker
	reader *scriptedReader
	out    *bytes.Buffer
	errOut *bytes.Buffer
	dir    string
}

func newShellFixture(t *testing.T, lines []string, end error) *shellFixture {
	t.Helper()

	f := &shellFixture{
		asker:  &recordingAsker{outcome: successOutcome()},
		reader: &scriptedReader{lines: lines, end: end},
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
		dir:    t.TempDir(),
	}

	term := NewTerminal(f.asker, newPlainRenderer(), NewTerminalView(f.out, f.errOut, &countingLoader{}))
	f.shell = NewShell(term, f.reader, export.NewUsecase(formatter.NewFactory()), f.out, f.dir)

	return f
}

func testContext(t *testing.T) context.Context {
	return ctxzap.ToContext(context.Background(), zaptest.NewLogger(t))
}

func TestShellSession(t *testing.T) {
	f := newShellFixture(t, []string{
		"   ",
		"/export md",
		"what is rag?",
		"/export markdown",
		"/export",
		"/bogus",
		"/quit",
		"never read",
	}, io.EOF)

	require.NoError(t, f.shell.Run(testContext(t)))

	assert.Equal(t, []string{"what is rag?"}, f.asker.asked())
	assert.Equal(t, 7, f.reader.reads)

	assert.Contains(t, f.out.String(), "Type a question")
	assert.Contains(t, f.out.String(), "Source 1 (88% similarity)")
	assert.Contains(t, f.errOut.String(), EmptyQueryMessage)
	assert.Contains(t, f.errOut.String(), "Nothing to export yet")
	assert.Contains(t, f.errOut.String(), "Usage: /export")
	assert.Contains(t, f.errOut.String(), "Unknown command /bogus")

	files, err := filepath.Glob(filepath.Join(f.dir, "*.md"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Contains(t, f.out.String(), "Saved "+files[0])

	content, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), "what is rag?")
	assert.Contains(t, string(content), "It cites sources.")
}

func TestShellEndOfInput(t *testing.T) {
	tests := []struct {
		name string
		end  error
	}{
		{name: "eof", end: io.EOF},
		{name: "prompt eof", end: promptui.ErrEOF},
		{name: "interrupt", end: promptui.ErrInterrupt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newShellFixture(t, []string{"hello"}, tt.end)

			require.NoError(t, f.shell.Run(testContext(t)))
			assert.Equal(t, []string{"hello"}, f.asker.asked())
		})
	}
}

func TestShellReadError(t *testing.T) {
	readErr := errors.New("terminal gone")
	f := newShellFixture(t, nil, readErr)

	err := f.shell.Run(testContext(t))

	require.ErrorIs(t, err, readErr)
}

func TestShellCanceledContext(t *testing.T) {
	f := newShellFixture(t, []string{"hello"}, io.EOF)
	ctx, cancel := context.WithCancel(testContext(t))
	cancel()

	require.NoError(t, f.shell.Run(ctx))
	assert.Empty(t, f.asker.asked())
}

func TestSaveExportErrors(t *testing.T) {
	exporter := export.NewUsecase(formatter.NewFactory())
	transcript := &entity.Transcript{SubmissionID: "s1", Query: "q", Answer: successOutcome().Answer}

	_, err := saveExport(context.Background(), exporter, transcript, "odt", t.TempDir())
	require.ErrorIs(t, err, entity.ErrUnsupportedFormat)

	_, err = saveExport(context.Background(), exporter, nil, "pdf", t.TempDir())
	require.ErrorIs(t, err, entity.ErrNothingToExport)

	_, err = saveExport(context.Background(), exporter, transcript, "markdown", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}
