package query

import (
	"strings"
	"testing"

	"github.com/futig/ragdesk/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func response(status int, body string) *entity.ServerResponse {
	return &entity.ServerResponse{StatusCode: status, Body: body}
}

func TestInterpretMalformedBody(t *testing.T) {
	for _, status := range []int{200, 500, 502} {
		outcome := Interpret(response(status, "<html>oops</html>"))
		require.Equal(t, entity.OutcomeMalformedBody, outcome.Kind, "status %d", status)
		assert.Equal(t, "<html>oops</html>", outcome.RawBody)
	}
}

func TestInterpretEmptyBodyIsMalformed(t *testing.T) {
	outcome := Interpret(response(200, ""))
	assert.Equal(t, entity.OutcomeMalformedBody, outcome.Kind)
}

func TestInterpretServerError(t *testing.T) {
	body := `{"error":"boom","traceback":"Traceback...","api_key_set":true,"supabase_url_set":false,"supabase_key_set":true}`

	outcome := Interpret(response(500, body))

	require.Equal(t, entity.OutcomeServerError, outcome.Kind)
	serverErr := outcome.ServerError
	require.NotNil(t, serverErr)
	assert.Equal(t, 500, serverErr.StatusCode)
	require.NotNil(t, serverErr.Message)
	assert.Equal(t, "boom", *serverErr.Message)
	require.NotNil(t, serverErr.Traceback)
	assert.Equal(t, "Traceback...", *serverErr.Traceback)
	require.NotNil(t, serverErr.Flags)
	assert.Equal(t, entity.ConfigFlags{APIKeySet: true, SupabaseURLSet: false, SupabaseKeySet: true}, *serverErr.Flags)
}

func TestInterpretServerErrorWithoutDetails(t *testing.T) {
	outcome := Interpret(response(404, `{}`))

	require.Equal(t, entity.OutcomeServerError, outcome.Kind)
	assert.Equal(t, 404, outcome.ServerError.StatusCode)
	assert.Nil(t, outcome.ServerError.Message)
	assert.Nil(t, outcome.ServerError.Traceback)
	assert.Nil(t, outcome.ServerError.Flags)
}

func TestInterpretServerErrorPartialFlags(t *testing.T) {
	outcome := Interpret(response(500, `{"supabase_url_set":1}`))

	require.NotNil(t, outcome.ServerError.Flags)
	assert.Equal(t, entity.ConfigFlags{SupabaseURLSet: true}, *outcome.ServerError.Flags)
}

func TestInterpretServerErrorNonStringMessage(t *testing.T) {
	outcome := Interpret(response(500, `{"error":{"code":7}}`))

	require.NotNil(t, outcome.ServerError.Message)
	assert.Equal(t, `{"code":7}`, *outcome.ServerError.Message)
}

func TestInterpretSuccess(t *testing.T) {
	content := strings.Repeat("x", 310)
	body := `{"answer":"ok","sources":[{"content":"` + content + `","similarity":0.87,"metadata":{"filename":"a.txt","chunk_index":2}}]}`

	outcome := Interpret(response(200, body))

	require.Equal(t, entity.OutcomeSuccess, outcome.Kind)
	answer := outcome.Answer
	require.NotNil(t, answer)
	assert.Equal(t, "ok", answer.Text)
	assert.Equal(t, []string{"ok"}, answer.Paragraphs)
	require.Len(t, answer.Sources, 1)

	source := answer.Sources[0]
	require.NotNil(t, source.Content)
	assert.Equal(t, content, *source.Content)
	require.NotNil(t, source.Similarity)
	assert.InDelta(t, 0.87, *source.Similarity, 1e-9)
	filename, ok := source.Filename()
	assert.True(t, ok)
	assert.Equal(t, "a.txt", filename)
	chunk, ok := source.ChunkIndex()
	assert.True(t, ok)
	assert.Equal(t, 2, chunk)
}

func TestInterpretAnswerFallbacks(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "answer", body: `{"answer":"a","response":"r"}`, want: "a"},
		{name: "empty answer uses response", body: `{"answer":"","response":"r"}`, want: "r"},
		{name: "response only", body: `{"response":"r"}`, want: "r"},
		{name: "null answer", body: `{"answer":null,"response":"r"}`, want: "r"},
		{name: "neither", body: `{}`, want: NoAnswerText},
		{name: "not an object", body: `[1,2]`, want: NoAnswerText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := Interpret(response(200, tt.body))
			require.Equal(t, entity.OutcomeSuccess, outcome.Kind)
			assert.Equal(t, tt.want, outcome.Answer.Text)
		})
	}
}

func TestInterpretParagraphs(t *testing.T) {
	outcome := Interpret(response(200, `{"answer":"first\nline\n\n\n\nsecond\n\n  "}`))

	assert.Equal(t, []string{"first\nline", "second"}, outcome.Answer.Paragraphs)
}

func TestInterpretSourcesAbsentOrEmpty(t *testing.T) {
	for _, body := range []string{`{"answer":"x"}`, `{"answer":"x","sources":[]}`, `{"answer":"x","sources":null}`, `{"answer":"x","sources":"nope"}`} {
		outcome := Interpret(response(200, body))
		assert.Empty(t, outcome.Answer.Sources, body)
	}
}

func TestInterpretSourceOptionalFields(t *testing.T) {
	body := `{"answer":"x","sources":[{},{"content":"","similarity":0,"metadata":{"chunk_index":0}},7]}`

	outcome := Interpret(response(200, body))

	sources := outcome.Answer.Sources
	require.Len(t, sources, 3)

	assert.False(t, sources[0].HasContent())
	assert.Nil(t, sources[0].Similarity)
	assert.Nil(t, sources[0].Metadata)

	assert.False(t, sources[1].HasContent())
	require.NotNil(t, sources[1].Similarity)
	assert.Zero(t, *sources[1].Similarity)
	_, hasFilename := sources[1].Filename()
	assert.False(t, hasFilename)
	chunk, hasChunk := sources[1].ChunkIndex()
	assert.True(t, hasChunk)
	assert.Zero(t, chunk)

	assert.Equal(t, entity.Source{}, sources[2])
}
