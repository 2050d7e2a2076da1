package cli

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

const (
	spinnerInterval    = 100 * time.Millisecond
	spinnerDescription = "Searching for an answer..."
)

// Loader is the loading indicator of a terminal.
type Loader interface {
	Start()
	Stop()
}

// NewLoader returns a spinner writing to w, or a silent loader when disabled
// or when running under CI.
func NewLoader(w io.Writer, enabled bool) Loader {
	if !enabled || os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return silentLoader{}
	}
	return &Spinner{out: w}
}

type silentLoader struct{}

func (silentLoader) Start() {}
func (silentLoader) Stop()  {}

// Spinner is an indeterminate progress bar that clears itself when stopped.
type Spinner struct {
	out io.Writer

	mu      sync.Mutex
	bar     *progressbar.ProgressBar
	done    chan struct{}
	stopped chan struct{}
}

// Start shows the spinner. Starting a running spinner is a no-op.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bar != nil {
		return
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(s.out),
		progressbar.OptionSetDescription(spinnerDescription),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
	)
	done := make(chan struct{})
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)

		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	s.bar = bar
	s.done = done
	s.stopped = stopped
}

// Stop clears the spinner.
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bar == nil {
		return
	}

	close(s.done)
	<-s.stopped
	_ = s.bar.Finish()

	s.bar = nil
	s.done = nil
	s.stopped = nil
}

// Active reports whether the spinner is shown.
func (s *Spinner) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.bar != nil
}
