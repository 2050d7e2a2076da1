package export

import (
	"github.com/futig/ragdesk/internal/entity"
	"github.com/futig/ragdesk/internal/pkg/formatter"
)

type FormatterFactory interface {
	Create(format entity.ResultFormat) (formatter.Formatter, error)
}
