package query

import (
	"context"

	"github.com/futig/ragdesk/internal/entity"
)

// QueryConnector sends a query to the backend and returns its raw response.
type QueryConnector interface {
	Query(ctx context.Context, req *entity.QueryRequest) (*entity.ServerResponse, error)
}
