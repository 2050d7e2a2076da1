package formatter

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n", doc.Title)

	for _, section := range doc.Sections {
		if section.Heading != "" {
			fmt.Fprintf(&buf, "\n## %s\n", section.Heading)
		}
		for _, p := range section.Paragraphs {
			// Single newlines are hard line breaks.
			fmt.Fprintf(&buf, "\n%s\n", strings.ReplaceAll(p, "\n", "  \n"))
		}
	}

	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
