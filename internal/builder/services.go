package builder

import (
	"github.com/futig/ragdesk/internal/config"
	"github.com/futig/ragdesk/internal/integration/query"
	"github.com/futig/ragdesk/internal/pkg/formatter"
	"github.com/futig/ragdesk/internal/usecase/export"
	queryuc "github.com/futig/ragdesk/internal/usecase/query"
	"go.uber.org/zap"
)

// services are the use cases shared by the web UI and the bot.
type services struct {
	query  *queryuc.QueryUsecase
	export *export.ExportUsecase
}

func buildServices(cfg *config.Config, logger *zap.Logger) *services {
	var connector queryuc.QueryConnector
	if cfg.EnableMocks {
		logger.Info("Using mock connector for the query backend")
		connector = query.NewMockConnector(logger)
	} else {
		logger.Info("Using query backend",
			zap.String("url", cfg.QueryConnectorCfg.Url),
			zap.String("endpoint", cfg.QueryConnectorCfg.QueryEndpoint),
		)
		connector = query.NewConnector(cfg.QueryConnectorCfg, logger)
	}

	return &services{
		query:  queryuc.NewUsecase(connector, logger),
		export: export.NewUsecase(formatter.NewFactory()),
	}
}
