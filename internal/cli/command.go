// Package cli hosts the query controller in a terminal: a one-shot ask
// command and an interactive shell.
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/futig/ragdesk/internal/controller"
	"github.com/futig/ragdesk/internal/entity"
	"github.com/futig/ragdesk/internal/pkg/logger"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Services are the use cases a terminal session runs against.
type Services struct {
	Asker  controller.Asker
	Export ExportUsecase
	Logger *zap.Logger
}

// BuildFunc wires services for an environment.
type BuildFunc func(environment string, verbose bool) (*Services, error)

type rootOptions struct {
	environment string
	verbose     bool
	noSpinner   bool
}

// NewRootCommand returns the ragdesk command tree.
func NewRootCommand(build BuildFunc) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "ragdesk",
		Short: "Ask questions to the retrieval-augmented answer service",
		Long: `ragdesk sends questions to the query backend and prints the answer
together with the source fragments it was built from.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.environment, "env", "local", "environment to run (local, prod, or custom)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	root.PersistentFlags().BoolVar(&opts.noSpinner, "no-spinner", false, "do not show the loading spinner")

	root.AddCommand(newAskCommand(opts, build))
	root.AddCommand(newShellCommand(opts, build))

	return root
}

func newAskCommand(opts *rootOptions, build BuildFunc) *cobra.Command {
	var (
		exportFormat string
		outputDir    string
	)

	cmd := &cobra.Command{
		Use:   "ask [query...]",
		Short: "Send one query and print the answer",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := build(opts.environment, opts.verbose)
			if err != nil {
				return err
			}
			defer svc.Logger.Sync()

			ctx := logger.WithAction(ctxzap.ToContext(cmd.Context(), svc.Logger), "ask")
			term := newTerminal(cmd, opts, svc)

			if err := term.Controller.HandleClick(ctx, strings.Join(args, " ")); err != nil {
				return err
			}

			if exportFormat == "" {
				return nil
			}

			path, err := saveExport(ctx, svc.Export, term.Recorder.Last(), exportFormat, outputDir)
			if err != nil {
				if errors.Is(err, entity.ErrNothingToExport) {
					return fmt.Errorf("export skipped: %w", err)
				}
				return fmt.Errorf("export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)

			return nil
		},
	}

	cmd.Flags().StringVar(&exportFormat, "export", "", "save the answer as markdown, docx, pdf or html")
	cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "directory for exported files")

	return cmd
}

func newShellCommand(opts *rootOptions, build BuildFunc) *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Ask questions interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := build(opts.environment, opts.verbose)
			if err != nil {
				return err
			}
			defer svc.Logger.Sync()

			ctx := logger.WithAction(ctxzap.ToContext(cmd.Context(), svc.Logger), "shell")
			term := newTerminal(cmd, opts, svc)

			shell := NewShell(term, PromptReader{Label: promptLabel}, svc.Export, cmd.OutOrStdout(), outputDir)
			return shell.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "directory for exported files")

	return cmd
}

func newTerminal(cmd *cobra.Command, opts *rootOptions, svc *Services) *Terminal {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	view := NewTerminalView(out, errOut, NewLoader(errOut, !opts.noSpinner))
	return NewTerminal(svc.Asker, NewTextRenderer(lipgloss.NewRenderer(out)), view)
}
