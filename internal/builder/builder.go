package builder

import (
	"fmt"
	"net/http"
	"time"

	"github.com/futig/ragdesk/internal/api"
	"github.com/futig/ragdesk/internal/api/ui"
	"github.com/futig/ragdesk/internal/config"
	"github.com/futig/ragdesk/internal/session"
	"github.com/futig/ragdesk/internal/telegram"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerCfg.Addr),
	)

	svc := buildServices(cfg, logger)
	logger.Info("Use cases initialized")

	pages := session.NewRegistry[*ui.Page](cfg.SessionCfg.TTL, cfg.SessionCfg.CleanupInterval)
	pageFactory := ui.NewPageFactory(svc.query, ui.NewRenderer())
	uiHandler := ui.NewHandler(pages, pageFactory, svc.export)
	logger.Info("API handlers initialized")

	router := api.SetupRouter(cfg.ServerCfg, uiHandler, logger)
	logger.Info("HTTP router configured")

	// No WriteTimeout: event streams stay open for the life of a page.
	server := &http.Server{
		Addr:              cfg.ServerCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ServerCfg.ShutdownTimeout,
		logger:          logger,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot
func BuildTelegramBot() (telegram.Bot, *zap.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.ValidateTelegram(); err != nil {
		return nil, nil, fmt.Errorf("invalid telegram configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
	)

	svc := buildServices(cfg, logger)
	logger.Info("Use cases initialized")

	bot, err := telegram.NewBot(&cfg.TelegramCfg, cfg.SessionCfg, svc.query, svc.export, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return bot, logger, nil
}
