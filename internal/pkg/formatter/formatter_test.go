package formatter

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/futig/ragdesk/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *Document {
	return &Document{
		Title: "Query answer",
		Sections: []Section{
			{Heading: "Question", Paragraphs: []string{"What is RAG?"}},
			{Heading: "Answer", Paragraphs: []string{"Retrieval\naugmented", "generation"}},
			{Paragraphs: []string{"Answered at 2024-05-01 12:00:00 UTC"}},
		},
	}
}

func TestFactoryCreate(t *testing.T) {
	f := NewFactory()

	for format, ext := range map[entity.ResultFormat]string{
		entity.FormatMarkdown: ".md",
		entity.FormatDOCX:     ".docx",
		entity.FormatPDF:      ".pdf",
		entity.FormatHTML:     ".html",
	} {
		fmtr, err := f.Create(format)
		require.NoError(t, err)
		assert.Equal(t, ext, fmtr.FileExtension())
	}

	_, err := f.Create("xlsx")
	assert.ErrorIs(t, err, entity.ErrUnsupportedFormat)
}

func TestMarkdownFormatter(t *testing.T) {
	out, err := NewMarkdownFormatter().Format(sampleDocument())
	require.NoError(t, err)

	want := "# Query answer\n" +
		"\n## Question\n" +
		"\nWhat is RAG?\n" +
		"\n## Answer\n" +
		"\nRetrieval  \naugmented\n" +
		"\ngeneration\n" +
		"\nAnswered at 2024-05-01 12:00:00 UTC\n"
	assert.Equal(t, want, string(out))
}

func TestPDFFormatter(t *testing.T) {
	out, err := NewPDFFormatter().Format(sampleDocument())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestDOCXFormatter(t *testing.T) {
	out, err := NewDOCXFormatter().Format(sampleDocument())
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "license") {
		t.Skipf("unioffice needs a license key here: %v", err)
	}
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("PK")))

	archive, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	require.NoError(t, err)

	var body string
	for _, f := range archive.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		body = string(content)
	}
	require.NotEmpty(t, body, "word/document.xml is missing")
	assert.Contains(t, body, "What is RAG?")
	assert.Contains(t, body, "Retrieval")
	assert.Contains(t, body, "augmented")
}

func TestHTMLFormatter(t *testing.T) {
	doc := sampleDocument()
	doc.Sections = append(doc.Sections, Section{
		Heading:    "Source 1",
		Paragraphs: []string{"see <script>alert(1)</script> plain"},
	})

	out, err := NewHTMLFormatter().Format(doc)
	require.NoError(t, err)

	page := string(out)
	assert.Contains(t, page, "<title>Query answer</title>")
	assert.Contains(t, page, "<h1>Query answer</h1>")
	assert.Contains(t, page, "<h2>Question</h2>")
	assert.Contains(t, page, "Retrieval<br>\naugmented")
	assert.NotContains(t, page, "<script>")
	assert.Contains(t, page, "plain")
}
