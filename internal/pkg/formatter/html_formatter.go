package formatter

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const (
	htmlContentType   = "text/html; charset=utf-8"
	htmlFileExtension = ".html"
)

const htmlPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>body { font-family: system-ui, sans-serif; max-width: 860px; margin: 2rem auto; padding: 0 1rem; line-height: 1.5; }</style>
</head>
<body>
{{.Body}}
</body>
</html>
`

var htmlPageTemplate = template.Must(template.New("page").Parse(htmlPage))

// HTMLFormatter renders the Markdown export as a standalone HTML page. Raw
// HTML in the answer is dropped, not passed through.
type HTMLFormatter struct {
	markdown *MarkdownFormatter
	md       goldmark.Markdown
}

func NewHTMLFormatter() *HTMLFormatter {
	return &HTMLFormatter{
		markdown: NewMarkdownFormatter(),
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

func (hf *HTMLFormatter) Format(doc *Document) ([]byte, error) {
	source, err := hf.markdown.Format(doc)
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	if err := hf.md.Convert(source, &body); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}

	var page bytes.Buffer
	err = htmlPageTemplate.Execute(&page, struct {
		Title string
		Body  template.HTML
	}{
		Title: doc.Title,
		Body:  template.HTML(body.String()),
	})
	if err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}

	return page.Bytes(), nil
}

func (hf *HTMLFormatter) ContentType() string {
	return htmlContentType
}

func (hf *HTMLFormatter) FileExtension() string {
	return htmlFileExtension
}
