package controller

import "context"

// KeyEnter is the confirm key.
const KeyEnter = "Enter"

// KeyEvent is a key press in the query input.
type KeyEvent struct {
	Key   string
	Shift bool
}

// IsConfirm reports whether the key press submits the query. Shift+Enter
// inserts a line break instead.
func (e KeyEvent) IsConfirm() bool {
	return e.Key == KeyEnter && !e.Shift
}

// HandleClick submits the input in response to the send control.
func (c *Controller) HandleClick(ctx context.Context, input string) error {
	return c.Submit(ctx, input)
}

// HandleKey submits the input when ev is a confirm gesture. It reports whether
// the event was consumed as a submission.
func (c *Controller) HandleKey(ctx context.Context, ev KeyEvent, input string) (bool, error) {
	if !ev.IsConfirm() {
		return false, nil
	}
	return true, c.Submit(ctx, input)
}
