package session

import (
	"sync"

	"github.com/futig/ragdesk/internal/entity"
)

// Recorder keeps the last successful transcript of one session.
type Recorder struct {
	mu   sync.RWMutex
	last *entity.Transcript
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record stores t as the latest transcript. It matches the controller's
// answer listener signature.
func (r *Recorder) Record(t entity.Transcript) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.last = &t
}

// Last returns the latest transcript, or nil when nothing was answered yet.
func (r *Recorder) Last() *entity.Transcript {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.last
}
