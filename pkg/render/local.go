package render

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cabledraw/pkg/errors"
	"github.com/matzehuels/cabledraw/pkg/observability"
	"github.com/matzehuels/cabledraw/pkg/render/layout"
	"github.com/matzehuels/cabledraw/pkg/render/svg"
	"github.com/matzehuels/cabledraw/pkg/templatepack"
)

// Local renders in-process.
type Local struct {
	Loader *templatepack.Loader
	Logger *log.Logger
}

// NewLocal creates an in-process renderer. A nil logger discards output.
func NewLocal(loader *templatepack.Loader, logger *log.Logger) *Local {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Local{Loader: loader, Logger: logger}
}

// Render validates the DSL, resolves the template pack, runs the layout passes
// and encodes the result. A panic inside the passes or the codec becomes an
// INTERNAL_ERROR.
func (l *Local) Render(ctx context.Context, req Request) (res *Result, err error) {
	if req.DSL == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "render request has no dsl")
	}
	if err := req.DSL.Validate(); err != nil {
		return nil, err
	}
	pack, err := l.Loader.Load(req.TemplatePackID)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id := req.DSL.Meta.AssemblyID
	start := time.Now()
	observability.Render().OnRenderStart(ctx, id, req.TemplatePackID)
	defer func() {
		size := 0
		if res != nil {
			size = len(res.SVG)
		}
		observability.Render().OnRenderComplete(ctx, id, req.TemplatePackID, size, time.Since(start), err)
	}()

	out, err := encode(req, pack)
	if err != nil {
		l.Logger.Error("render failed", "assembly", id, "template", req.TemplatePackID, "err", err)
		return nil, err
	}
	if len(out) == 0 {
		return nil, errors.New(errors.ErrCodeInternal, "renderer produced no output for %s", id)
	}

	l.Logger.Debug("rendered drawing",
		"assembly", id,
		"template", req.TemplatePackID,
		"bytes", len(out),
		"duration", time.Since(start))

	return &Result{SVG: out, Manifest: newManifest(req)}, nil
}

func encode(req Request, pack *templatepack.Pack) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = errors.New(errors.ErrCodeInternal, "render %s: %s", req.DSL.Meta.AssemblyID, fmt.Sprint(r))
		}
	}()
	return svg.Encode(layout.Build(req.DSL, pack)), nil
}
