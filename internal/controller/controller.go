// Package controller drives one query surface through the lifecycle of a
// submission: guard, loading, one round trip, one render, loading cleared.
package controller

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/futig/ragdesk/internal/entity"
	"github.com/futig/ragdesk/internal/pkg/logger"
	"github.com/futig/ragdesk/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Option configures a Controller.
type Option func(*Controller)

// WithAnswerListener registers fn to receive every successful submission
// that was rendered.
func WithAnswerListener(fn func(entity.Transcript)) Option {
	return func(c *Controller) {
		c.onAnswer = fn
	}
}

// WithClock overrides the time source used for transcripts.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// Controller owns the UI state of one surface. It is safe for concurrent
// submissions: only the most recent submission may render, older ones are
// discarded when they resolve.
type Controller struct {
	asker    Asker
	view     View
	renderer Renderer
	onAnswer func(entity.Transcript)
	now      func() time.Time

	// latest is the sequence number of the most recent submission.
	latest atomic.Uint64
	// mu serialises view updates.
	mu sync.Mutex
}

func New(asker Asker, view View, renderer Renderer, opts ...Option) *Controller {
	c := &Controller{
		asker:    asker,
		view:     view,
		renderer: renderer,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	// Initial state: nothing in flight.
	c.view.SetLoading(false)

	return c
}

// Submit runs one submission for the raw input. It returns
// entity.ErrEmptyQuery when the input is blank and entity.ErrSuperseded when
// a newer submission started before this one resolved; every other outcome
// is rendered and reported as nil.
func (c *Controller) Submit(ctx context.Context, input string) error {
	query, err := validator.NormalizeQuery(input)
	if err != nil {
		c.view.Alert(c.renderer.EmptyQuery())
		return err
	}

	seq := c.latest.Add(1)
	submissionID := uuid.NewString()
	ctx = logger.AddFields(ctx, zap.String("submission_id", submissionID))

	ctxzap.Info(ctx, "submitting query", zap.Int("query_length", len(query)))

	c.mu.Lock()
	c.view.SetLoading(true)
	c.view.SetRegion(RegionAnswer, "")
	c.view.SetRegion(RegionSources, "")
	c.mu.Unlock()

	defer c.finish(seq)

	outcome := c.asker.Ask(ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isCurrent(seq) {
		ctxzap.Info(ctx, "discarding superseded response", zap.Stringer("outcome", outcome.Kind))
		return entity.ErrSuperseded
	}

	c.render(ctx, outcome)

	if outcome.Kind == entity.OutcomeSuccess && c.onAnswer != nil {
		c.onAnswer(entity.Transcript{
			SubmissionID: submissionID,
			Query:        query,
			Answer:       outcome.Answer,
			AnsweredAt:   c.now(),
		})
	}

	return nil
}

// finish hides the loading indicator on every exit path of the current
// submission, panics included. A superseded submission leaves it to the
// newer one.
func (c *Controller) finish(seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isCurrent(seq) {
		c.view.SetLoading(false)
	}
}

func (c *Controller) isCurrent(seq uint64) bool {
	return c.latest.Load() == seq
}

func (c *Controller) render(ctx context.Context, outcome *entity.Outcome) {
	switch outcome.Kind {
	case entity.OutcomeMalformedBody:
		c.view.SetRegion(RegionAnswer, c.renderer.MalformedBody(outcome.RawBody))
	case entity.OutcomeServerError:
		c.view.SetRegion(RegionAnswer, c.renderer.ServerError(outcome.ServerError))
	case entity.OutcomeSuccess:
		c.view.SetRegion(RegionAnswer, c.renderer.Answer(outcome.Answer))
		c.view.SetRegion(RegionSources, c.renderer.Sources(outcome.Answer.Sources))
	case entity.OutcomeNetworkFailure:
		ctxzap.Error(ctx, "query could not reach the backend", zap.Error(outcome.Err))
		c.view.SetRegion(RegionAnswer, c.renderer.NetworkFailure(outcome.Err))
	default:
		ctxzap.Error(ctx, "unknown outcome", zap.Int("kind", int(outcome.Kind)))
		c.view.SetRegion(RegionAnswer, c.renderer.NetworkFailure(fmt.Errorf("unknown outcome %d", outcome.Kind)))
	}
}
