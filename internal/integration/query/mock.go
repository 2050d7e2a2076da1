package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/futig/ragdesk/internal/entity"
	pkghttp "github.com/futig/ragdesk/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector answers queries locally without a backend. Queries starting
// with "!error", "!html" or "!offline" reproduce the server-error,
// malformed-body and unreachable-backend cases.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

type mockSource struct {
	Content    string         `json:"content"`
	Similarity float64        `json:"similarity"`
	Metadata   map[string]any `json:"metadata"`
}

type mockAnswer struct {
	Answer  string       `json:"answer"`
	Sources []mockSource `json:"sources"`
}

type mockError struct {
	Error          string `json:"error"`
	Traceback      string `json:"traceback"`
	APIKeySet      bool   `json:"api_key_set"`
	SupabaseURLSet bool   `json:"supabase_url_set"`
	SupabaseKeySet bool   `json:"supabase_key_set"`
}

func (m *MockConnector) Query(ctx context.Context, req *entity.QueryRequest) (*entity.ServerResponse, error) {
	ctxzap.Info(ctx, "[MOCK] answering query",
		zap.Int("query_length", len(req.Query)),
	)

	switch {
	case strings.HasPrefix(req.Query, "!offline"):
		return nil, &pkghttp.NetworkError{Err: errors.New("dial tcp: connection refused")}
	case strings.HasPrefix(req.Query, "!html"):
		return &entity.ServerResponse{
			StatusCode: http.StatusBadGateway,
			Body:       "<html><body><h1>502 Bad Gateway</h1></body></html>",
		}, nil
	case strings.HasPrefix(req.Query, "!error"):
		return m.encode(http.StatusInternalServerError, mockError{
			Error:          "mock backend failure",
			Traceback:      "Traceback (most recent call last):\n  File \"query.py\", line 1, in <module>\nRuntimeError: mock backend failure",
			APIKeySet:      false,
			SupabaseURLSet: true,
			SupabaseKeySet: true,
		})
	}

	return m.encode(http.StatusOK, mockAnswer{
		Answer: fmt.Sprintf("This is a mock answer to: %s\n\nThe backend is not contacted while mocks are enabled.", req.Query),
		Sources: []mockSource{
			{
				Content:    "Mock documents are returned so the sources region can be checked without a vector store.",
				Similarity: 0.91,
				Metadata:   map[string]any{"filename": "mock.txt", "chunk_index": 1},
			},
		},
	})
}

func (m *MockConnector) encode(status int, body any) (*entity.ServerResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal mock response: %w", err)
	}
	return &entity.ServerResponse{StatusCode: status, Body: string(data)}, nil
}
