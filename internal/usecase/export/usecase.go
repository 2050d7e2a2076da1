package export

import (
	"context"
	"fmt"
	"strings"

	"github.com/futig/ragdesk/internal/entity"
	"github.com/futig/ragdesk/internal/pkg/formatter"
	"github.com/futig/ragdesk/internal/pkg/text"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	documentTitle  = "Query answer"
	filenamePrefix = "answer-"
)

type ExportUsecase struct {
	factory FormatterFactory
}

func NewUsecase(factory FormatterFactory) *ExportUsecase {
	return &ExportUsecase{
		factory: factory,
	}
}

// Export renders the transcript in the requested format. A nil transcript
// means nothing was answered yet.
func (u *ExportUsecase) Export(ctx context.Context, transcript *entity.Transcript, format entity.ResultFormat) (*entity.ExportFile, error) {
	if transcript == nil || transcript.Answer == nil {
		return nil, entity.ErrNothingToExport
	}

	fmtr, err := u.factory.Create(format)
	if err != nil {
		return nil, err
	}

	content, err := fmtr.Format(BuildDocument(transcript))
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", format, err)
	}

	ctxzap.Debug(ctx, "transcript exported",
		zap.String("format", string(format)),
		zap.Int("size", len(content)),
	)

	return &entity.ExportFile{
		Filename:    filenamePrefix + transcript.SubmissionID + fmtr.FileExtension(),
		ContentType: fmtr.ContentType(),
		Content:     content,
	}, nil
}

// BuildDocument lays out a transcript: the question, the answer paragraphs
// and one section per source.
func BuildDocument(transcript *entity.Transcript) *formatter.Document {
	doc := &formatter.Document{
		Title: documentTitle,
		Sections: []formatter.Section{
			{Heading: "Question", Paragraphs: []string{transcript.Query}},
			{Heading: "Answer", Paragraphs: answerParagraphs(transcript.Answer)},
		},
	}

	if !transcript.AnsweredAt.IsZero() {
		doc.Sections = append(doc.Sections, formatter.Section{
			Paragraphs: []string{"Answered at " + transcript.AnsweredAt.UTC().Format("2006-01-02 15:04:05 UTC")},
		})
	}

	if len(transcript.Answer.Sources) == 0 {
		doc.Sections = append(doc.Sections, formatter.Section{
			Heading:    "Sources",
			Paragraphs: []string{"No sources are available for this query"},
		})
		return doc
	}

	for i, s := range transcript.Answer.Sources {
		doc.Sections = append(doc.Sections, formatter.Section{
			Heading:    sourceHeading(i+1, s),
			Paragraphs: sourceParagraphs(s),
		})
	}

	return doc
}

func answerParagraphs(answer *entity.Answer) []string {
	if len(answer.Paragraphs) > 0 {
		return answer.Paragraphs
	}
	return text.SplitParagraphs(answer.Text)
}

func sourceHeading(index int, s entity.Source) string {
	heading := fmt.Sprintf("Source %d", index)
	if s.Similarity != nil {
		heading += fmt.Sprintf(" (%d%% similarity)", text.Percent(*s.Similarity))
	}
	return heading
}

func sourceParagraphs(s entity.Source) []string {
	var meta []string
	if filename, ok := s.Filename(); ok {
		meta = append(meta, filename)
	}
	if chunk, ok := s.ChunkIndex(); ok {
		meta = append(meta, fmt.Sprintf("Chunk %d", chunk))
	}

	var paragraphs []string
	if len(meta) > 0 {
		paragraphs = append(paragraphs, strings.Join(meta, ", "))
	}

	if s.HasContent() {
		paragraphs = append(paragraphs, *s.Content)
	} else {
		paragraphs = append(paragraphs, "No content")
	}

	return paragraphs
}
