package formatter

import (
	"bytes"
	"os"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// pdfFontName is the family the UTF-8 font is registered under.
	pdfFontName = "DejaVuSans"

	// Container layout: fonts are copied next to the binary.
	pdfFontRuntimePath = "ttf/DejaVuSans.ttf"

	// Repository layout, for running from the repo root.
	pdfFontSourcePath = "internal/pkg/formatter/ttf/DejaVuSans.ttf"
)

type PDFFormatter struct {
	fontPaths []string
}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{
		fontPaths: []string{pdfFontRuntimePath, pdfFontSourcePath},
	}
}

// resolveFontPath returns the first candidate font file that exists.
func (pf *PDFFormatter) resolveFontPath() string {
	for _, path := range pf.fontPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func (pf *PDFFormatter) Format(doc *Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Core fonts cannot encode non-Latin text; prefer the bundled one.
	fontName := "Arial"
	if fontPath := pf.resolveFontPath(); fontPath != "" {
		pdf.AddUTF8Font(pdfFontName, "", fontPath)
		pdf.AddUTF8Font(pdfFontName, "B", fontPath)
		fontName = pdfFontName
	}

	pdf.SetFont(fontName, "B", 20)
	pdf.Cell(0, 10, doc.Title)
	pdf.Ln(14)

	for _, section := range doc.Sections {
		if section.Heading != "" {
			pdf.SetFont(fontName, "B", 14)
			pdf.Cell(0, 8, section.Heading)
			pdf.Ln(10)
		}

		pdf.SetFont(fontName, "", 12)
		_, lineHeight := pdf.GetFontSize()
		for _, p := range section.Paragraphs {
			pdf.MultiCell(0, lineHeight*1.5, p, "", "", false)
			pdf.Ln(2)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (pf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (pf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
