package api

import (
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/cabledraw/pkg/errors"
	"github.com/matzehuels/cabledraw/pkg/render"
	"github.com/matzehuels/cabledraw/pkg/render/worker"
)

// Worker serves the rendering worker contract.
type Worker struct {
	renderer render.Renderer
	logger   *log.Logger
	started  time.Time
}

// NewWorker creates a worker over renderer. A nil logger discards output.
func NewWorker(renderer render.Renderer, logger *log.Logger) *Worker {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Worker{renderer: renderer, logger: logger, started: time.Now()}
}

// Handler returns the routed handler.
func (wk *Worker) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID, accessLog(wk.logger), recoverer(wk.logger))

	r.Get("/health", healthHandler(wk.started))
	r.Post("/render", wk.handleRender)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, wk.logger, errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
	})
	return r
}

func (wk *Worker) handleRender(w http.ResponseWriter, r *http.Request) {
	var req render.Request
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, wk.logger, err)
		return
	}
	if req.Format == "" {
		req.Format = render.FormatSVG
	}
	if !render.ValidFormats[req.Format] {
		writeError(w, r, wk.logger, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", req.Format))
		return
	}

	start := time.Now()
	res, err := wk.renderer.Render(r.Context(), req)
	if err != nil {
		writeError(w, r, wk.logger, err)
		return
	}

	wk.logger.Info("render completed",
		"assembly", req.DSL.Meta.AssemblyID,
		"template", req.TemplatePackID,
		"format", req.Format,
		"duration", time.Since(start))

	writeJSON(w, http.StatusOK, worker.Response{SVG: string(res.SVG), Manifest: res.Manifest})
}
