package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/futig/ragdesk/internal/controller"
	"github.com/futig/ragdesk/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/manifoldco/promptui"
	"go.uber.org/zap"
)

const (
	promptLabel = "Query"

	commandPrefix = "/"
	commandExport = "/export"
	commandHelp   = "/help"
	commandQuit   = "/quit"
	commandExit   = "/exit"
)

const shellHelp = `Type a question and press Enter to send it.
Commands:
  /export <markdown|docx|pdf|html>  save the last answer to the output directory
  /help                             show this message
  /quit                             leave the shell`

// PromptReader reads lines with an interactive promptui prompt.
type PromptReader struct {
	Label string
}

func (r PromptReader) ReadLine() (string, error) {
	p := promptui.Prompt{
		Label:     r.Label,
		AllowEdit: true,
	}
	return p.Run()
}

// Shell is an interactive loop over one terminal session. Every line read is
// a confirm key press in the query input.
type Shell struct {
	terminal  *Terminal
	reader    LineReader
	exporter  ExportUsecase
	out       io.Writer
	outputDir string
}

func NewShell(terminal *Terminal, reader LineReader, exporter ExportUsecase, out io.Writer, outputDir string) *Shell {
	return &Shell{
		terminal:  terminal,
		reader:    reader,
		exporter:  exporter,
		out:       out,
		outputDir: outputDir,
	}
}

// Run reads lines until the user quits, input ends or ctx is canceled.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, shellHelp)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		line, err := s.reader.ReadLine()
		if err != nil {
			if isEndOfInput(err) {
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}

		if strings.HasPrefix(strings.TrimSpace(line), commandPrefix) {
			if quit := s.command(ctx, strings.TrimSpace(line)); quit {
				return nil
			}
			continue
		}

		enter := controller.KeyEvent{Key: controller.KeyEnter}
		if _, err := s.terminal.Controller.HandleKey(ctx, enter, line); err != nil && !errors.Is(err, entity.ErrEmptyQuery) {
			ctxzap.Error(ctx, "submission failed", zap.Error(err))
		}
	}
}

func (s *Shell) command(ctx context.Context, line string) bool {
	name, arg, _ := strings.Cut(line, " ")

	switch strings.ToLower(name) {
	case commandQuit, commandExit:
		return true
	case commandHelp:
		fmt.Fprintln(s.out, shellHelp)
	case commandExport:
		s.export(ctx, strings.TrimSpace(arg))
	default:
		s.terminal.View.Alert(fmt.Sprintf("Unknown command %s. Type /help for the list of commands.", name))
	}

	return false
}

func (s *Shell) export(ctx context.Context, formatName string) {
	path, err := saveExport(ctx, s.exporter, s.terminal.Recorder.Last(), formatName, s.outputDir)
	switch {
	case errors.Is(err, entity.ErrNothingToExport):
		s.terminal.View.Alert("Nothing to export yet. Ask a question first.")
	case errors.Is(err, entity.ErrMissingField), errors.Is(err, entity.ErrUnsupportedFormat):
		s.terminal.View.Alert("Usage: /export <markdown|docx|pdf|html>")
	case err != nil:
		ctxzap.Error(ctx, "export failed", zap.Error(err))
		s.terminal.View.Alert("Export failed: " + err.Error())
	default:
		fmt.Fprintf(s.out, "Saved %s\n", path)
	}
}

func isEndOfInput(err error) bool {
	return errors.Is(err, promptui.ErrInterrupt) ||
		errors.Is(err, promptui.ErrEOF) ||
		errors.Is(err, io.EOF)
}
