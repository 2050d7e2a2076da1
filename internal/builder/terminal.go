package builder

import (
	"fmt"

	"github.com/futig/ragdesk/internal/cli"
	"github.com/futig/ragdesk/internal/config"
)

// terminalLogLevel keeps the logger quiet in a terminal unless asked.
const terminalLogLevel = "warn"

// BuildTerminal wires the use cases for the command line client.
func BuildTerminal(environment string, verbose bool) (*cli.Services, error) {
	cfg, err := config.Load(environment)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	level := terminalLogLevel
	if verbose {
		level = "debug"
	}

	logger, err := setupLogger(level, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	svc := buildServices(cfg, logger)

	return &cli.Services{
		Asker:  svc.query,
		Export: svc.export,
		Logger: logger,
	}, nil
}
