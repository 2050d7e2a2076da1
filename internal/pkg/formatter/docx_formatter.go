package formatter

import (
	"bytes"
	"strings"

	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (df *DOCXFormatter) Format(doc *Document) ([]byte, error) {
	out := document.New()
	defer out.Close()

	titlePar := out.AddParagraph()
	titlePar.SetStyle("Title")
	titlePar.AddRun().AddText(doc.Title)

	for _, section := range doc.Sections {
		if section.Heading != "" {
			headingPar := out.AddParagraph()
			headingPar.SetStyle("Heading1")
			headingPar.AddRun().AddText(section.Heading)
		}

		for _, p := range section.Paragraphs {
			run := out.AddParagraph().AddRun()
			for i, line := range strings.Split(p, "\n") {
				if i > 0 {
					run.AddBreak()
				}
				run.AddText(line)
			}
		}
	}

	var buf bytes.Buffer
	if err := out.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (df *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (df *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
