package entity

// ResultFormat is an export file format.
type ResultFormat string

const (
	FormatMarkdown ResultFormat = "markdown"
	FormatDOCX     ResultFormat = "docx"
	FormatPDF      ResultFormat = "pdf"
	FormatHTML     ResultFormat = "html"
)

func (f ResultFormat) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatDOCX, FormatPDF, FormatHTML:
		return true
	default:
		return false
	}
}

// ExportFile is a rendered transcript ready to be downloaded.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
