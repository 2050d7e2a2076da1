package controller

import (
	"context"

	"github.com/futig/ragdesk/internal/entity"
)

// Region identifies one of the two display regions of a query surface.
type Region int

const (
	RegionAnswer Region = iota
	RegionSources
)

func (r Region) String() string {
	switch r {
	case RegionAnswer:
		return "answer"
	case RegionSources:
		return "sources"
	default:
		return "unknown"
	}
}

// View is the surface the controller drives. Setting a region to an empty
// string clears it.
type View interface {
	SetLoading(visible bool)
	SetRegion(region Region, content string)
	Alert(message string)
}

// Renderer turns outcomes into region content for one kind of surface.
type Renderer interface {
	EmptyQuery() string
	MalformedBody(raw string) string
	ServerError(serverErr *entity.ServerError) string
	Answer(answer *entity.Answer) string
	Sources(sources []entity.Source) string
	NetworkFailure(err error) string
}

// Asker performs the network round trip for a normalized query.
type Asker interface {
	Ask(ctx context.Context, query string) *entity.Outcome
}
