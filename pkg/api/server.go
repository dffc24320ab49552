package api

import (
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/cabledraw/pkg/buildinfo"
	"github.com/matzehuels/cabledraw/pkg/drawing"
	"github.com/matzehuels/cabledraw/pkg/errors"
	"github.com/matzehuels/cabledraw/pkg/pipeline"
	"github.com/matzehuels/cabledraw/pkg/render/worker"
	"github.com/matzehuels/cabledraw/pkg/templatepack"
)

// Server is the public render API.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	started time.Time
}

// NewServer creates the API over runner. A nil logger discards output.
func NewServer(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{runner: runner, logger: logger, started: time.Now()}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID, accessLog(s.logger), recoverer(s.logger))

	r.Get("/health", healthHandler(s.started))
	r.Route("/v1", func(api chi.Router) {
		api.Post("/render", s.handleRender)
		api.Get("/template-packs", s.handleTemplatePacks)
	})
	r.Get(drawing.URLPrefix+"/{assemblyID}/{rev}/{file}", s.handleDrawing)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, s.logger, errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
	})
	return r
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req pipeline.Request
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	resp, err := s.runner.Execute(r.Context(), req)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type templatePacksResponse struct {
	Templates []templatepack.Info `json:"templates"`
}

func (s *Server) handleTemplatePacks(w http.ResponseWriter, r *http.Request) {
	infos, err := s.runner.Loader.List()
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	if infos == nil {
		infos = []templatepack.Info{}
	}
	writeJSON(w, http.StatusOK, templatePacksResponse{Templates: infos})
}

func (s *Server) handleDrawing(w http.ResponseWriter, r *http.Request) {
	format, err := drawing.ParseFileName(chi.URLParam(r, "file"))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	k := drawing.Key{
		AssemblyID: chi.URLParam(r, "assemblyID"),
		Revision:   chi.URLParam(r, "rev"),
		Format:     format,
	}
	data, err := s.runner.Drawings.Read(r.Context(), k)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	w.Header().Set("Content-Type", drawing.ContentType(format))
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func healthHandler(started time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, worker.Health{
			OK:      true,
			Version: buildinfo.Version,
			Uptime:  time.Since(started).Seconds(),
		})
	}
}
