package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/futig/ragdesk/internal/api/ui"
	"github.com/futig/ragdesk/internal/config"
	queryconnector "github.com/futig/ragdesk/internal/integration/query"
	"github.com/futig/ragdesk/internal/pkg/formatter"
	"github.com/futig/ragdesk/internal/session"
	"github.com/futig/ragdesk/internal/usecase/export"
	"github.com/futig/ragdesk/internal/usecase/query"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := zaptest.NewLogger(t)
	asker := query.NewUsecase(queryconnector.NewMockConnector(logger), logger)
	handler := ui.NewHandler(
		session.NewRegistry[*ui.Page](time.Hour, time.Hour),
		ui.NewPageFactory(asker, ui.NewRenderer()),
		export.NewUsecase(formatter.NewFactory()),
	)

	cfg := config.ServerConfig{
		RequestTimeout: time.Minute,
		AllowedOrigins: []string{"*"},
	}
	return SetupRouter(cfg, handler, logger)
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("Content-Type"))
}

func TestDocsSpec(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs/swagger.yaml", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/ui/sessions")
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/ui/sessions", nil)
	req.Header.Set("Origin", "http://example.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
