package query

import (
	"context"
	"net/http"

	"github.com/futig/ragdesk/internal/config"
	"github.com/futig/ragdesk/internal/entity"
	"github.com/futig/ragdesk/internal/integration/common"
	pkghttp "github.com/futig/ragdesk/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Connector struct {
	config    config.QueryConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.QueryConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Query sends the query to the backend.
// POST {query_endpoint} with {"query": "..."}
// Any status is returned as a response; only transport failures are errors.
func (c *Connector) Query(ctx context.Context, req *entity.QueryRequest) (*entity.ServerResponse, error) {
	ctxzap.Debug(ctx, "sending query to backend", zap.Int("query_length", len(req.Query)))

	resp, err := c.connector.Do(ctx, http.MethodPost, c.config.QueryEndpoint, req)
	if err != nil {
		return nil, err
	}

	return &entity.ServerResponse{
		StatusCode: resp.StatusCode,
		Body:       string(resp.Body),
	}, nil
}
