package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectorDoSendsJSON(t *testing.T) {
	var (
		gotMethod string
		gotBody   string
		gotHeader http.Header
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotHeader = r.Header.Clone()
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"answer":"ok"}`))
	}))
	defer srv.Close()

	c := NewConnector(&ConnectorConfig{BaseURL: srv.URL},
		WithUserAgent("ragdesk-test"),
		WithAuthToken("secret"),
		WithRequestLogging(),
	)

	resp, err := c.Do(context.Background(), http.MethodPost, "/api/query", map[string]string{"query": "hi"},
		WithHeader("X-Trace", "abc"),
	)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.JSONEq(t, `{"query":"hi"}`, gotBody)
	assert.Equal(t, "application/json", gotHeader.Get("Content-Type"))
	assert.Equal(t, "ragdesk-test", gotHeader.Get("User-Agent"))
	assert.Equal(t, "Bearer secret", gotHeader.Get("Authorization"))
	assert.Equal(t, "abc", gotHeader.Get("X-Trace"))

	assert.True(t, resp.OK())
	assert.Equal(t, `{"answer":"ok"}`, string(resp.Body))
}

func TestConnectorDoReturnsErrorStatusAsData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	}))
	defer srv.Close()

	c := NewConnector(&ConnectorConfig{BaseURL: srv.URL})

	resp, err := c.Do(context.Background(), http.MethodPost, "/api/query", map[string]string{"query": "hi"})
	require.NoError(t, err)

	assert.False(t, resp.OK())
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, `{"error":"boom"}`, string(resp.Body))
}

func TestConnectorDoWithoutToken(t *testing.T) {
	var authorization string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorization = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	c := NewConnector(&ConnectorConfig{BaseURL: srv.URL}, WithAuthToken(""))

	_, err := c.Do(context.Background(), http.MethodGet, "/", nil)
	require.NoError(t, err)
	assert.Empty(t, authorization)
}

func TestConnectorDoNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewConnector(&ConnectorConfig{BaseURL: url})

	_, err := c.Do(context.Background(), http.MethodPost, "/api/query", map[string]string{"query": "hi"})
	require.Error(t, err)

	var netErr *NetworkError
	assert.True(t, errors.As(err, &netErr))
}
