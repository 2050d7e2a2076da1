package entity

// QueryRequest is the body of the query endpoint request.
type QueryRequest struct {
	Query string `json:"query"`
}

// ServerResponse is the raw reply of the query endpoint: status plus the body
// read as text, before any decoding.
type ServerResponse struct {
	StatusCode int
	Body       string
}

// OK reports whether the status is in the 2xx range.
func (r *ServerResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// UIState is the visible state of one query surface.
type UIState struct {
	Loading     bool   `json:"loading"`
	AnswerHTML  string `json:"answer_html"`
	SourcesHTML string `json:"sources_html"`
}
