package ui

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/futig/ragdesk/internal/controller"
	"github.com/futig/ragdesk/internal/entity"
	"github.com/futig/ragdesk/internal/pkg/logger"
	"github.com/futig/ragdesk/internal/pkg/response"
	"github.com/futig/ragdesk/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFS embed.FS

// heartbeatInterval keeps idle event streams open through proxies.
const heartbeatInterval = 15 * time.Second

type Handler struct {
	pages   PageStore
	factory *PageFactory
	export  ExportUsecase
}

func NewHandler(pages PageStore, factory *PageFactory, export ExportUsecase) *Handler {
	return &Handler{
		pages:   pages,
		factory: factory,
		export:  export,
	}
}

// Index handles GET / - the query page
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	page, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "page is not available")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(page)
}

// CreatePage handles POST /ui/sessions - open a page session
func (h *Handler) CreatePage(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreatePage")

	page := h.factory.New()
	h.pages.Set(page.ID, page)

	ctxzap.Info(ctx, "page session created", zap.String("page_id", page.ID))
	response.Created(w, CreatePageResponse{ID: page.ID})
}

// Events handles GET /ui/sessions/{id}/events - stream of page state
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	ctx := logger.AddFields(r.Context(),
		zap.String("page_id", chi.URLParam(r, "id")),
		zap.String("action", "Events"),
	)

	// The page stays alive while its stream is open, however long it idles.
	page, release, ok := h.pages.Hold(chi.URLParam(r, "id"))
	if !ok {
		h.handleError(ctx, w, entity.ErrSessionNotFound)
		return
	}
	defer release()

	flusher, ok := w.(http.Flusher)
	if !ok {
		h.respondError(ctx, w, http.StatusInternalServerError, "streaming unsupported", errors.New("response writer cannot flush"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	ctxzap.Debug(ctx, "event stream opened")

	if err := h.pushSnapshot(w, flusher, page.View); err != nil {
		ctxzap.Debug(ctx, "event stream closed", zap.Error(err))
		return
	}

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			ctxzap.Debug(ctx, "event stream closed by client")
			return
		case <-page.View.Changed():
			if err := h.pushSnapshot(w, flusher, page.View); err != nil {
				ctxzap.Debug(ctx, "event stream closed", zap.Error(err))
				return
			}
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

// Submit handles POST /ui/sessions/{id}/submit - a click or key press
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	pageID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("page_id", pageID),
		zap.String("action", "Submit"),
	)

	page, ok := h.pages.Get(pageID)
	if !ok {
		h.handleError(ctx, w, entity.ErrSessionNotFound)
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	var submit func(bgCtx context.Context) error
	switch req.Trigger {
	case TriggerClick:
		submit = func(bgCtx context.Context) error {
			return page.Controller.HandleClick(bgCtx, req.Query)
		}
	case TriggerKey:
		ev := controller.KeyEvent{Key: req.Key, Shift: req.Shift}
		if !ev.IsConfirm() {
			response.NoContent(w)
			return
		}
		submit = func(bgCtx context.Context) error {
			_, err := page.Controller.HandleKey(bgCtx, ev, req.Query)
			return err
		}
	default:
		h.handleError(ctx, w, fmt.Errorf("%w: trigger %q", entity.ErrInvalidParameter, req.Trigger))
		return
	}

	requestID := middleware.GetReqID(r.Context())

	go func() {
		bgCtx := logger.Detach(ctx,
			zap.String("request_id", requestID),
			zap.String("action", "Submit-async"),
		)

		err := submit(bgCtx)
		switch {
		case err == nil:
		case errors.Is(err, entity.ErrEmptyQuery):
			ctxzap.Debug(bgCtx, "empty query rejected")
		case errors.Is(err, entity.ErrSuperseded):
			ctxzap.Debug(bgCtx, "submission superseded")
		default:
			ctxzap.Error(bgCtx, "submission failed", zap.Error(err))
		}
	}()

	response.JSON(w, http.StatusAccepted, map[string]string{
		"status": "accepted",
	})
}

// Export handles GET /ui/sessions/{id}/export - download the last answer
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	pageID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("page_id", pageID),
		zap.String("action", "Export"),
	)

	page, ok := h.pages.Get(pageID)
	if !ok {
		h.handleError(ctx, w, entity.ErrSessionNotFound)
		return
	}

	formatParam := r.URL.Query().Get("format")
	if formatParam == "" {
		formatParam = string(entity.FormatMarkdown)
	}

	format, err := validator.ParseFormat(formatParam)
	if err != nil {
		h.handleError(ctx, w, err)
		return
	}

	file, err := h.export.Export(ctx, page.Recorder.Last(), format)
	if err != nil {
		h.handleError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "answer exported", zap.String("format", string(format)))

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(file.Content)
}

func (h *Handler) pushSnapshot(w http.ResponseWriter, flusher http.Flusher, view *StreamView) error {
	state, alerts := view.Snapshot()
	for _, message := range alerts {
		if err := sendEvent(w, "alert", AlertEvent{Message: message}); err != nil {
			return err
		}
	}
	if err := sendEvent(w, "state", state); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}

func sendEvent(w http.ResponseWriter, event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
	return err
}

func (h *Handler) handleError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrSessionNotFound):
		h.respondError(ctx, w, http.StatusNotFound, "page session not found", err)
	case errors.Is(err, entity.ErrNothingToExport):
		h.respondError(ctx, w, http.StatusConflict, "nothing to export yet", err)
	case errors.Is(err, entity.ErrInvalidParameter), errors.Is(err, entity.ErrMissingField), errors.Is(err, entity.ErrUnsupportedFormat):
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	if status >= http.StatusInternalServerError {
		ctxzap.Error(ctx, message, zap.Error(err))
	} else {
		ctxzap.Warn(ctx, message, zap.Error(err))
	}
	response.Error(w, status, message)
}
