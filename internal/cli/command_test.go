package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/futig/ragdesk/internal/entity"
	"github.com/futig/ragdesk/internal/pkg/formatter"
	"github.com/futig/ragdesk/internal/usecase/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type commandRun struct {
	asker       *recordingAsker
	environment string
	verbose     bool
	out         bytes.Buffer
	errOut      bytes.Buffer
}

func runCommand(t *testing.T, outcome *entity.Outcome, args ...string) (*commandRun, error) {
	t.Helper()

	run := &commandRun{asker: &recordingAsker{outcome: outcome}}
	build := func(environment string, verbose bool) (*Services, error) {
		run.environment = environment
		run.verbose = verbose
		return &Services{
			Asker:  run.asker,
			Export: export.NewUsecase(formatter.NewFactory()),
			Logger: zaptest.NewLogger(t),
		}, nil
	}

	cmd := NewRootCommand(build)
	cmd.SetOut(&run.out)
	cmd.SetErr(&run.errOut)
	cmd.SetArgs(append([]string{"--no-spinner"}, args...))

	return run, cmd.Execute()
}

func TestAskCommand(t *testing.T) {
	run, err := runCommand(t, successOutcome(), "--env", "unittest", "-v", "ask", "what", "is", "rag?")
	require.NoError(t, err)

	assert.Equal(t, "unittest", run.environment)
	assert.True(t, run.verbose)
	assert.Equal(t, []string{"what is rag?"}, run.asker.asked())
	assert.Contains(t, run.out.String(), "It cites sources.")
	assert.Contains(t, run.out.String(), "rag.pdf · Chunk 3")
	assert.NotContains(t, run.out.String(), "Saved")
}

func TestAskCommandExport(t *testing.T) {
	dir := t.TempDir()

	run, err := runCommand(t, successOutcome(), "ask", "--export", "html", "-o", dir, "what is rag?")
	require.NoError(t, err)

	files, err := filepath.Glob(filepath.Join(dir, "*.html"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Contains(t, run.out.String(), "Saved "+files[0])

	content, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), "It cites sources.")
}

func TestAskCommandExportWithoutAnswer(t *testing.T) {
	outcome := &entity.Outcome{Kind: entity.OutcomeNetworkFailure, Err: errors.New("connection refused")}

	run, err := runCommand(t, outcome, "ask", "--export", "pdf", "-o", t.TempDir(), "hello")

	require.ErrorIs(t, err, entity.ErrNothingToExport)
	assert.Contains(t, run.out.String(), "Connection error: connection refused")
}

func TestAskCommandEmptyQuery(t *testing.T) {
	run, err := runCommand(t, successOutcome(), "ask", "  ")

	require.ErrorIs(t, err, entity.ErrEmptyQuery)
	assert.Empty(t, run.asker.asked())
	assert.Contains(t, run.errOut.String(), EmptyQueryMessage)
}

func TestCommandBuildFailure(t *testing.T) {
	buildErr := errors.New("no config")
	cmd := NewRootCommand(func(string, bool) (*Services, error) { return nil, buildErr })
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"ask", "hello"})

	require.ErrorIs(t, cmd.Execute(), buildErr)
}
