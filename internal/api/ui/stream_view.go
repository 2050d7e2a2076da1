package ui

import (
	"sync"

	"github.com/futig/ragdesk/internal/controller"
	"github.com/futig/ragdesk/internal/entity"
)

// maxPendingAlerts bounds alerts queued while no page is listening.
const maxPendingAlerts = 8

// StreamView is the page state of one browser session. The controller writes
// into it; the events stream reads snapshots whenever it changes. Updates
// between two reads are coalesced, so a reader always sees the latest state.
type StreamView struct {
	mu      sync.Mutex
	state   entity.UIState
	alerts  []string
	changed chan struct{}
}

func NewStreamView() *StreamView {
	return &StreamView{
		changed: make(chan struct{}, 1),
	}
}

func (v *StreamView) SetLoading(visible bool) {
	v.update(func() {
		v.state.Loading = visible
	})
}

func (v *StreamView) SetRegion(region controller.Region, content string) {
	v.update(func() {
		switch region {
		case controller.RegionAnswer:
			v.state.AnswerHTML = content
		case controller.RegionSources:
			v.state.SourcesHTML = content
		}
	})
}

func (v *StreamView) Alert(message string) {
	v.update(func() {
		if len(v.alerts) == maxPendingAlerts {
			v.alerts = v.alerts[1:]
		}
		v.alerts = append(v.alerts, message)
	})
}

// Changed is signalled after every update. A single listener is expected.
func (v *StreamView) Changed() <-chan struct{} {
	return v.changed
}

// State returns the current state without consuming alerts.
func (v *StreamView) State() entity.UIState {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.state
}

// Snapshot returns the current state and the alerts raised since the last
// snapshot.
func (v *StreamView) Snapshot() (entity.UIState, []string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	alerts := v.alerts
	v.alerts = nil
	return v.state, alerts
}

func (v *StreamView) update(fn func()) {
	v.mu.Lock()
	fn()
	v.mu.Unlock()

	select {
	case v.changed <- struct{}{}:
	default:
	}
}
