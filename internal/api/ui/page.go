package ui

import (
	"github.com/futig/ragdesk/internal/controller"
	"github.com/futig/ragdesk/internal/session"
)

// Page is one browser session: its view, its controller and the record of
// its last answer.
type Page struct {
	ID         string
	View       *StreamView
	Controller *controller.Controller
	Recorder   *session.Recorder
}

// PageFactory builds pages around a shared asker and renderer.
type PageFactory struct {
	asker    controller.Asker
	renderer controller.Renderer
}

func NewPageFactory(asker controller.Asker, renderer controller.Renderer) *PageFactory {
	return &PageFactory{
		asker:    asker,
		renderer: renderer,
	}
}

func (f *PageFactory) New() *Page {
	view := NewStreamView()
	recorder := session.NewRecorder()

	return &Page{
		ID:         session.NewID(),
		View:       view,
		Recorder:   recorder,
		Controller: controller.New(f.asker, view, f.renderer, controller.WithAnswerListener(recorder.Record)),
	}
}
