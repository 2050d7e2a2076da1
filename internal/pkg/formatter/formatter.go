package formatter

import (
	"fmt"

	"github.com/futig/ragdesk/internal/entity"
)

// Document is a format-neutral export: a title followed by headed sections.
type Document struct {
	Title    string
	Sections []Section
}

// Section is a heading and its paragraphs. An empty heading renders the
// paragraphs directly under the previous section.
type Section struct {
	Heading    string
	Paragraphs []string
}

type Formatter interface {
	Format(doc *Document) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	case entity.FormatHTML:
		return NewHTMLFormatter(), nil
	default:
		return nil, fmt.Errorf("%w: %s", entity.ErrUnsupportedFormat, format)
	}
}
