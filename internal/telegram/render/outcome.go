package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/futig/ragdesk/internal/entity"
	"github.com/futig/ragdesk/internal/pkg/text"
)

const (
	// tracebackLimit keeps a server error within one Telegram message.
	tracebackLimit = 3000

	MsgEmptyQuery = "Please enter a query"
	MsgNoAnswer   = "No response was obtained"
	MsgNoContent  = "No content"
	MsgNoSources  = "No sources are available for this query"
)

// OutcomeRenderer renders submission outcomes as Telegram HTML messages.
// Collapsible parts are expandable blockquotes.
type OutcomeRenderer struct{}

func NewOutcomeRenderer() *OutcomeRenderer {
	return &OutcomeRenderer{}
}

func (r *OutcomeRenderer) EmptyQuery() string {
	return MsgEmptyQuery
}

func (r *OutcomeRenderer) MalformedBody(raw string) string {
	var sb strings.Builder
	sb.WriteString("<b>❌ Error: the response is not valid JSON</b>\n\n")
	sb.WriteString("<b>Response details</b>\n")
	sb.WriteString(expandable(text.Truncate(raw, text.RawBodyPreviewLimit)))
	return sb.String()
}

func (r *OutcomeRenderer) ServerError(serverErr *entity.ServerError) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>❌ Server error (%d):</b>", serverErr.StatusCode)

	if serverErr.Message != nil {
		sb.WriteString("\n")
		sb.WriteString(html.EscapeString(*serverErr.Message))
	}

	if serverErr.Traceback != nil {
		sb.WriteString("\n\n<b>Technical details</b>\n")
		sb.WriteString(expandable(text.Truncate(*serverErr.Traceback, tracebackLimit)))
	}

	if flags := serverErr.Flags; flags != nil {
		sb.WriteString("\n\n<b>Configuration status:</b>\n")
		fmt.Fprintf(&sb, "• OpenAI API key: %s\n", flagStatus(flags.APIKeySet))
		fmt.Fprintf(&sb, "• Supabase URL: %s\n", flagStatus(flags.SupabaseURLSet))
		fmt.Fprintf(&sb, "• Supabase key: %s", flagStatus(flags.SupabaseKeySet))
	}

	return sb.String()
}

func (r *OutcomeRenderer) Answer(answer *entity.Answer) string {
	paragraphs := make([]string, 0, len(answer.Paragraphs))
	for _, p := range answer.Paragraphs {
		// Telegram keeps single newlines as line breaks.
		paragraphs = append(paragraphs, html.EscapeString(p))
	}
	if len(paragraphs) == 0 {
		return ""
	}
	return strings.Join(paragraphs, "\n\n")
}

func (r *OutcomeRenderer) Sources(sources []entity.Source) string {
	if len(sources) == 0 {
		return "<i>" + MsgNoSources + "</i>"
	}

	blocks := make([]string, 0, len(sources)+1)
	blocks = append(blocks, "<b>📚 Sources consulted</b>")
	for i, s := range sources {
		blocks = append(blocks, renderSource(i+1, s))
	}
	return strings.Join(blocks, "\n\n")
}

func (r *OutcomeRenderer) NetworkFailure(err error) string {
	return fmt.Sprintf("<b>❌ Connection error:</b> %s\n\nCould not connect to the server. Check your internet connection or try again later.",
		html.EscapeString(err.Error()))
}

func renderSource(index int, s entity.Source) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>Source %d</b>", index)
	if s.Similarity != nil {
		fmt.Fprintf(&sb, " (%d%% similarity)", text.Percent(*s.Similarity))
	}

	var meta []string
	if filename, ok := s.Filename(); ok {
		meta = append(meta, "📄 "+html.EscapeString(filename))
	}
	if chunk, ok := s.ChunkIndex(); ok {
		meta = append(meta, fmt.Sprintf("Chunk %d", chunk))
	}
	if len(meta) > 0 {
		sb.WriteString("\n")
		sb.WriteString(strings.Join(meta, " · "))
	}

	sb.WriteString("\n")
	if s.HasContent() {
		sb.WriteString("<blockquote>")
		sb.WriteString(html.EscapeString(text.Truncate(*s.Content, text.SourcePreviewLimit)))
		sb.WriteString("</blockquote>")
	} else {
		sb.WriteString("<i>" + MsgNoContent + "</i>")
	}

	return sb.String()
}

func expandable(s string) string {
	return "<blockquote expandable>" + html.EscapeString(s) + "</blockquote>"
}

func flagStatus(set bool) string {
	if set {
		return "✅ Configured"
	}
	return "❌ Not configured"
}
