package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/futig/ragdesk/internal/controller"
	"github.com/futig/ragdesk/internal/session"
)

// TerminalView prints regions as they are filled. Output already written
// cannot be taken back, so clearing a region prints nothing.
type TerminalView struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	loader Loader
}

func NewTerminalView(out, errOut io.Writer, loader Loader) *TerminalView {
	return &TerminalView{
		out:    out,
		errOut: errOut,
		loader: loader,
	}
}

func (v *TerminalView) SetLoading(visible bool) {
	if visible {
		v.loader.Start()
		return
	}
	v.loader.Stop()
}

func (v *TerminalView) SetRegion(_ controller.Region, content string) {
	if content == "" {
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	fmt.Fprintf(v.out, "%s\n\n", content)
}

func (v *TerminalView) Alert(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	fmt.Fprintf(v.errOut, "⚠️  %s\n", message)
}

// Terminal is the query surface of one CLI run.
type Terminal struct {
	View       *TerminalView
	Controller *controller.Controller
	Recorder   *session.Recorder
}

func NewTerminal(asker controller.Asker, renderer controller.Renderer, view *TerminalView) *Terminal {
	recorder := session.NewRecorder()

	return &Terminal{
		View:       view,
		Recorder:   recorder,
		Controller: controller.New(asker, view, renderer, controller.WithAnswerListener(recorder.Record)),
	}
}
