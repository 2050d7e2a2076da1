package ui

import (
	"bytes"
	"html/template"

	"github.com/futig/ragdesk/internal/entity"
	"github.com/futig/ragdesk/internal/pkg/text"
)

const fragmentTemplates = `
{{define "flag"}}{{if .}}✅ Configured{{else}}❌ Not configured{{end}}{{end}}

{{define "malformed"}}<p class="error">Error: the response is not valid JSON</p>
<details>
  <summary>Response details</summary>
  <pre>{{.}}</pre>
</details>{{end}}

{{define "server_error"}}<p class="error">Server error ({{.StatusCode}}):</p>
{{- with .Message}}
<p>{{.}}</p>
{{- end}}
{{- with .Traceback}}
<details>
  <summary>Technical details</summary>
  <pre>{{.}}</pre>
</details>
{{- end}}
{{- with .Flags}}
<p>Configuration status:</p>
<ul>
  <li>OpenAI API key: {{template "flag" .APIKeySet}}</li>
  <li>Supabase URL: {{template "flag" .SupabaseURLSet}}</li>
  <li>Supabase key: {{template "flag" .SupabaseKeySet}}</li>
</ul>
{{- end}}{{end}}

{{define "answer"}}<div class="answer-container">
{{- range .}}
  <p>{{range $i, $line := .}}{{if $i}}<br>{{end}}{{$line}}{{end}}</p>
{{- end}}
</div>{{end}}

{{define "sources"}}<h3>Sources consulted</h3>
<div class="sources-list">
{{- range .}}
  <div class="source-item">
    <div class="source-header">
      <h4>Source {{.Index}}{{if .HasSimilarity}} <span class="similarity">({{.Similarity}}% similarity)</span>{{end}}</h4>
      <div class="source-meta">
        {{- with .Filename}}<span class="filename">{{.}}</span>{{end}}
        {{- if .HasChunk}}<span class="chunk">Chunk {{.Chunk}}</span>{{end -}}
      </div>
    </div>
    <div class="source-content">{{.Content}}</div>
  </div>
{{- end}}
</div>{{end}}

{{define "no_sources"}}<p class="info-message">No sources are available for this query</p>{{end}}

{{define "network"}}<p class="error">Connection error: {{.}}</p>
<p>Could not connect to the server. Check your internet connection or try again later.</p>{{end}}
`

var fragments = template.Must(template.New("fragments").Parse(fragmentTemplates))

// EmptyQueryMessage is shown when the user submits a blank query.
const EmptyQueryMessage = "Please enter a query"

// NoContentText replaces the content of a source that has none.
const NoContentText = "No content"

// Renderer renders outcomes as HTML fragments for the page regions. All
// server-provided text is escaped.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

type serverErrorView struct {
	StatusCode int
	Message    string
	Traceback  string
	Flags      *entity.ConfigFlags
}

type sourceView struct {
	Index         int
	HasSimilarity bool
	Similarity    int
	Filename      string
	HasChunk      bool
	Chunk         int
	Content       string
}

func (r *Renderer) EmptyQuery() string {
	return EmptyQueryMessage
}

func (r *Renderer) MalformedBody(raw string) string {
	return r.execute("malformed", text.Truncate(raw, text.RawBodyPreviewLimit))
}

func (r *Renderer) ServerError(serverErr *entity.ServerError) string {
	view := serverErrorView{
		StatusCode: serverErr.StatusCode,
		Flags:      serverErr.Flags,
	}
	if serverErr.Message != nil {
		view.Message = *serverErr.Message
	}
	if serverErr.Traceback != nil {
		view.Traceback = *serverErr.Traceback
	}
	return r.execute("server_error", view)
}

func (r *Renderer) Answer(answer *entity.Answer) string {
	paragraphs := make([][]string, 0, len(answer.Paragraphs))
	for _, p := range answer.Paragraphs {
		paragraphs = append(paragraphs, text.SplitLines(p))
	}
	return r.execute("answer", paragraphs)
}

func (r *Renderer) Sources(sources []entity.Source) string {
	if len(sources) == 0 {
		return r.execute("no_sources", nil)
	}

	views := make([]sourceView, 0, len(sources))
	for i, s := range sources {
		view := sourceView{
			Index:   i + 1,
			Content: NoContentText,
		}
		if s.Similarity != nil {
			view.HasSimilarity = true
			view.Similarity = text.Percent(*s.Similarity)
		}
		if filename, ok := s.Filename(); ok {
			view.Filename = filename
		}
		if chunk, ok := s.ChunkIndex(); ok {
			view.HasChunk = true
			view.Chunk = chunk
		}
		if s.HasContent() {
			view.Content = text.Truncate(*s.Content, text.SourcePreviewLimit)
		}
		views = append(views, view)
	}

	return r.execute("sources", views)
}

func (r *Renderer) NetworkFailure(err error) string {
	return r.execute("network", err.Error())
}

func (r *Renderer) execute(name string, data any) string {
	var buf bytes.Buffer
	if err := fragments.ExecuteTemplate(&buf, name, data); err != nil {
		return `<p class="error">` + template.HTMLEscapeString(err.Error()) + `</p>`
	}
	return buf.String()
}
