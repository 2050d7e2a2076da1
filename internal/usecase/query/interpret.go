package query

import (
	"encoding/json"
	"strconv"

	"github.com/buger/jsonparser"
	"github.com/futig/ragdesk/internal/entity"
	"github.com/futig/ragdesk/internal/pkg/text"
)

// NoAnswerText replaces an answer that is missing from a successful response.
const NoAnswerText = "No response was obtained"

// Interpret classifies a raw response. A body that is not JSON is malformed
// whatever the status; a JSON body with a non-2xx status is a server error;
// everything else is a success.
//
// Fields are read leniently: a field that is missing, null or of an
// unexpected type is treated as absent.
func Interpret(resp *entity.ServerResponse) *entity.Outcome {
	body := []byte(resp.Body)

	if !json.Valid(body) {
		return &entity.Outcome{
			Kind:    entity.OutcomeMalformedBody,
			RawBody: resp.Body,
		}
	}

	if !resp.OK() {
		return &entity.Outcome{
			Kind:        entity.OutcomeServerError,
			ServerError: parseServerError(resp.StatusCode, body),
		}
	}

	return &entity.Outcome{
		Kind:   entity.OutcomeSuccess,
		Answer: parseAnswer(body),
	}
}

func parseServerError(status int, body []byte) *entity.ServerError {
	serverErr := &entity.ServerError{StatusCode: status}

	if msg, ok := textField(body, "error"); ok && msg != "" {
		serverErr.Message = &msg
	}

	if tb, ok := textField(body, "traceback"); ok && tb != "" {
		serverErr.Traceback = &tb
	}

	apiKey, apiKeyPresent := flagField(body, "api_key_set")
	url, urlPresent := flagField(body, "supabase_url_set")
	key, keyPresent := flagField(body, "supabase_key_set")
	if apiKeyPresent || urlPresent || keyPresent {
		serverErr.Flags = &entity.ConfigFlags{
			APIKeySet:      apiKey,
			SupabaseURLSet: url,
			SupabaseKeySet: key,
		}
	}

	return serverErr
}

func parseAnswer(body []byte) *entity.Answer {
	answer, _ := textField(body, "answer")
	if answer == "" {
		answer, _ = textField(body, "response")
	}
	if answer == "" {
		answer = NoAnswerText
	}

	return &entity.Answer{
		Text:       answer,
		Paragraphs: text.SplitParagraphs(answer),
		Sources:    parseSources(body),
	}
}

func parseSources(body []byte) []entity.Source {
	_, dataType, _, err := jsonparser.Get(body, "sources")
	if err != nil || dataType != jsonparser.Array {
		return nil
	}

	var sources []entity.Source
	_, _ = jsonparser.ArrayEach(body, func(value []byte, dataType jsonparser.ValueType, _ int, err error) {
		if err != nil {
			return
		}
		if dataType != jsonparser.Object {
			sources = append(sources, entity.Source{})
			return
		}
		sources = append(sources, parseSource(value))
	}, "sources")

	return sources
}

func parseSource(value []byte) entity.Source {
	var source entity.Source

	if content, err := jsonparser.GetString(value, "content"); err == nil {
		source.Content = &content
	}

	if similarity, err := jsonparser.GetFloat(value, "similarity"); err == nil {
		source.Similarity = &similarity
	}

	metadata, dataType, _, err := jsonparser.Get(value, "metadata")
	if err == nil && dataType == jsonparser.Object {
		meta := &entity.SourceMetadata{}
		if filename, err := jsonparser.GetString(metadata, "filename"); err == nil {
			meta.Filename = &filename
		}
		if chunk, err := jsonparser.GetInt(metadata, "chunk_index"); err == nil {
			idx := int(chunk)
			meta.ChunkIndex = &idx
		}
		source.Metadata = meta
	}

	return source
}

// textField returns a field as display text. Strings are unescaped; numbers,
// booleans, objects and arrays are returned as their JSON text.
func textField(body []byte, key string) (string, bool) {
	value, dataType, _, err := jsonparser.Get(body, key)
	if err != nil {
		return "", false
	}

	switch dataType {
	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return "", false
		}
		return s, true
	case jsonparser.Null, jsonparser.NotExist:
		return "", false
	default:
		return string(value), true
	}
}

// flagField reads a configuration flag. A flag counts as present even when it
// is null; its value follows the usual truthiness of the JSON value.
func flagField(body []byte, key string) (value bool, present bool) {
	raw, dataType, _, err := jsonparser.Get(body, key)
	if err != nil {
		return false, false
	}

	switch dataType {
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(raw)
		return err == nil && b, true
	case jsonparser.Number:
		f, err := strconv.ParseFloat(string(raw), 64)
		return err == nil && f != 0, true
	case jsonparser.String:
		return len(raw) > 0, true
	case jsonparser.Object, jsonparser.Array:
		return true, true
	case jsonparser.Null:
		return false, true
	default:
		return false, false
	}
}
