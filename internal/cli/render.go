package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/futig/ragdesk/internal/entity"
	"github.com/futig/ragdesk/internal/pkg/text"
)

const (
	EmptyQueryMessage = "Please enter a query"
	noContentText     = "No content"
	noSourcesText     = "No sources are available for this query"
	detailIndent      = "    "
)

type styles struct {
	heading    lipgloss.Style
	errorText  lipgloss.Style
	similarity lipgloss.Style
	meta       lipgloss.Style
	muted      lipgloss.Style
}

// TextRenderer renders outcomes as terminal text. Collapsible details are
// printed as indented blocks under a label.
type TextRenderer struct {
	styles styles
}

// NewTextRenderer styles output for the terminal r writes to. Colors are
// dropped when r has no color support.
func NewTextRenderer(r *lipgloss.Renderer) *TextRenderer {
	return &TextRenderer{
		styles: styles{
			heading:    r.NewStyle().Bold(true),
			errorText:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
			similarity: r.NewStyle().Foreground(lipgloss.Color("2")),
			meta:       r.NewStyle().Foreground(lipgloss.Color("8")),
			muted:      r.NewStyle().Italic(true).Faint(true),
		},
	}
}

func (r *TextRenderer) EmptyQuery() string {
	return EmptyQueryMessage
}

func (r *TextRenderer) MalformedBody(raw string) string {
	var sb strings.Builder
	sb.WriteString(r.styles.errorText.Render("Error: the response is not valid JSON"))
	sb.WriteString("\n")
	sb.WriteString(r.styles.heading.Render("Response details:"))
	sb.WriteString("\n")
	sb.WriteString(indent(text.Truncate(raw, text.RawBodyPreviewLimit)))
	return sb.String()
}

func (r *TextRenderer) ServerError(serverErr *entity.ServerError) string {
	var sb strings.Builder
	sb.WriteString(r.styles.errorText.Render(fmt.Sprintf("Server error (%d):", serverErr.StatusCode)))

	if serverErr.Message != nil {
		sb.WriteString("\n")
		sb.WriteString(*serverErr.Message)
	}

	if serverErr.Traceback != nil {
		sb.WriteString("\n\n")
		sb.WriteString(r.styles.heading.Render("Technical details:"))
		sb.WriteString("\n")
		sb.WriteString(indent(*serverErr.Traceback))
	}

	if flags := serverErr.Flags; flags != nil {
		sb.WriteString("\n\n")
		sb.WriteString(r.styles.heading.Render("Configuration status:"))
		fmt.Fprintf(&sb, "\n  OpenAI API key: %s", flagStatus(flags.APIKeySet))
		fmt.Fprintf(&sb, "\n  Supabase URL: %s", flagStatus(flags.SupabaseURLSet))
		fmt.Fprintf(&sb, "\n  Supabase key: %s", flagStatus(flags.SupabaseKeySet))
	}

	return sb.String()
}

// Answer prints paragraphs separated by a blank line; single newlines are
// kept as line breaks.
func (r *TextRenderer) Answer(answer *entity.Answer) string {
	return strings.Join(answer.Paragraphs, "\n\n")
}

func (r *TextRenderer) Sources(sources []entity.Source) string {
	if len(sources) == 0 {
		return r.styles.muted.Render(noSourcesText)
	}

	blocks := make([]string, 0, len(sources)+1)
	blocks = append(blocks, r.styles.heading.Render("Sources consulted"))
	for i, s := range sources {
		blocks = append(blocks, r.source(i+1, s))
	}
	return strings.Join(blocks, "\n\n")
}

func (r *TextRenderer) NetworkFailure(err error) string {
	return r.styles.errorText.Render("Connection error: "+err.Error()) +
		"\nCould not connect to the server. Check your internet connection or try again later."
}

func (r *TextRenderer) source(index int, s entity.Source) string {
	var sb strings.Builder
	sb.WriteString(r.styles.heading.Render(fmt.Sprintf("Source %d", index)))
	if s.Similarity != nil {
		sb.WriteString(" ")
		sb.WriteString(r.styles.similarity.Render(fmt.Sprintf("(%d%% similarity)", text.Percent(*s.Similarity))))
	}

	var meta []string
	if filename, ok := s.Filename(); ok {
		meta = append(meta, filename)
	}
	if chunk, ok := s.ChunkIndex(); ok {
		meta = append(meta, fmt.Sprintf("Chunk %d", chunk))
	}
	if len(meta) > 0 {
		sb.WriteString("\n  ")
		sb.WriteString(r.styles.meta.Render(strings.Join(meta, " · ")))
	}

	sb.WriteString("\n")
	if s.HasContent() {
		sb.WriteString(indent(text.Truncate(*s.Content, text.SourcePreviewLimit)))
	} else {
		sb.WriteString(detailIndent)
		sb.WriteString(r.styles.muted.Render(noContentText))
	}

	return sb.String()
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = detailIndent + line
	}
	return strings.Join(lines, "\n")
}

func flagStatus(set bool) string {
	if set {
		return "✅ Configured"
	}
	return "❌ Not configured"
}
