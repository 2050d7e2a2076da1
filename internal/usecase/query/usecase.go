package query

import (
	"context"

	"github.com/futig/ragdesk/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type QueryUsecase struct {
	connector QueryConnector
	logger    *zap.Logger
}

func NewUsecase(connector QueryConnector, logger *zap.Logger) *QueryUsecase {
	return &QueryUsecase{
		connector: connector,
		logger:    logger,
	}
}

// Ask performs one round trip for an already normalized query and interprets
// the result. It never returns an error: transport failures become a
// network-failure outcome.
func (u *QueryUsecase) Ask(ctx context.Context, query string) *entity.Outcome {
	resp, err := u.connector.Query(ctx, &entity.QueryRequest{Query: query})
	if err != nil {
		ctxzap.Error(ctx, "query request failed", zap.Error(err))
		return &entity.Outcome{
			Kind: entity.OutcomeNetworkFailure,
			Err:  err,
		}
	}

	outcome := Interpret(resp)

	ctxzap.Info(ctx, "query answered",
		zap.Int("status", resp.StatusCode),
		zap.Stringer("outcome", outcome.Kind),
		zap.Int("body_length", len(resp.Body)),
	)

	return outcome
}
