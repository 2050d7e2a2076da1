package render

import (
	"fmt"
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/futig/ragdesk/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMessageShort(t *testing.T) {
	assert.Equal(t, []string{"hello"}, SplitMessage("hello", 10))
}

func TestSplitMessageOnBlocks(t *testing.T) {
	s := strings.Join([]string{"aaaa", "bbbb", "cccc"}, "\n\n")

	parts := SplitMessage(s, 10)

	assert.Equal(t, []string{"aaaa\n\nbbbb", "cccc"}, parts)
}

func TestSplitMessageLongBlock(t *testing.T) {
	s := strings.Repeat("é", 25)

	parts := SplitMessage(s, 10)

	require.Len(t, parts, 3)
	for _, p := range parts {
		assert.LessOrEqual(t, utf8.RuneCountInString(p), 10)
	}
	assert.Equal(t, s, strings.Join(parts, ""))
}

func TestSplitMessageKeepsEntities(t *testing.T) {
	s := strings.Repeat("a", 8) + "&amp;" + strings.Repeat("b", 8)

	parts := SplitMessage(s, 10)

	require.NotEmpty(t, parts)
	assert.Equal(t, strings.Repeat("a", 8), parts[0])
	assert.True(t, strings.HasPrefix(parts[1], "&amp;"))
	assert.Equal(t, s, strings.Join(parts, ""))
}

var tagPattern = regexp.MustCompile(`</?([a-z]+)[^>]*>`)

// assertBalanced checks that every tag opened in part is closed in it, in
// order.
func assertBalanced(t *testing.T, part string) {
	t.Helper()

	var open []string
	for _, m := range tagPattern.FindAllStringSubmatch(part, -1) {
		if strings.HasPrefix(m[0], "</") {
			if assert.NotEmpty(t, open, "closing %s without opening in %q", m[0], part) {
				assert.Equal(t, open[len(open)-1], m[1])
				open = open[:len(open)-1]
			}
			continue
		}
		open = append(open, m[1])
	}
	assert.Empty(t, open, "unclosed tags in %q", part)
}

func TestSplitMessageRenderedSources(t *testing.T) {
	for n := 10; n <= 20; n++ {
		t.Run(fmt.Sprintf("%d sources", n), func(t *testing.T) {
			sources := make([]entity.Source, n)
			for i := range sources {
				content := strings.Repeat("a", 150) + "\n\n" + strings.Repeat("b", 150)
				sources[i] = entity.Source{Content: &content}
			}
			rendered := NewOutcomeRenderer().Sources(sources)

			parts := SplitMessage(rendered, MaxMessageLength)

			if utf8.RuneCountInString(rendered) > MaxMessageLength {
				require.Greater(t, len(parts), 1)
			}
			for _, p := range parts {
				assert.LessOrEqual(t, utf8.RuneCountInString(p), MaxMessageLength)
				assertBalanced(t, p)
			}
			assert.Equal(t, rendered, strings.Join(parts, "\n\n"))
		})
	}
}

func TestSplitMessageTracebackWithBlankLines(t *testing.T) {
	traceback := strings.Repeat("Traceback line\n", 150) + "\nDuring handling of the above exception\n\n" + strings.Repeat("x", 1000)
	rendered := "<b>Technical details</b>\n" + expandable(traceback)

	parts := SplitMessage(rendered, 1000)

	require.Greater(t, len(parts), 1)
	for _, p := range parts {
		assert.LessOrEqual(t, utf8.RuneCountInString(p), 1000)
		assertBalanced(t, p)
	}
	assert.True(t, strings.HasPrefix(parts[1], "<blockquote expandable>"))
}

func TestSplitMessageReopensTags(t *testing.T) {
	s := "<blockquote>" + strings.Repeat("a", 20) + "</blockquote>"

	parts := SplitMessage(s, 30)

	want := "<blockquote>" + strings.Repeat("a", 5) + "</blockquote>"
	assert.Equal(t, []string{want, want, want, want}, parts)
}

func TestSplitMessageNestedTags(t *testing.T) {
	s := "<b>title</b>\n<blockquote expandable>" + strings.Repeat("&lt;", 30) + "<i>tail</i></blockquote>"

	parts := SplitMessage(s, 60)

	require.Greater(t, len(parts), 1)
	var text strings.Builder
	for _, p := range parts {
		assert.LessOrEqual(t, utf8.RuneCountInString(p), 60)
		assertBalanced(t, p)
		assert.NotContains(t, p, "&lt</")
		text.WriteString(tagPattern.ReplaceAllString(p, ""))
	}
	assert.Equal(t, tagPattern.ReplaceAllString(s, ""), text.String())
}
