package render

import (
	"context"

	"github.com/matzehuels/cabledraw/pkg/buildinfo"
	"github.com/matzehuels/cabledraw/pkg/cache"
	"github.com/matzehuels/cabledraw/pkg/dsl"
)

// Format constants for requested output formats. Only SVG is produced; the
// others are accepted and fall back to SVG.
const (
	FormatSVG = "svg"
	FormatPDF = "pdf"
	FormatPNG = "png"
)

// ValidFormats is the set of formats a caller may request.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPDF: true,
	FormatPNG: true,
}

// Request is the input to a render. Its JSON form is the body of the rendering
// worker's POST /render.
type Request struct {
	DSL            *dsl.RenderDSL `json:"dsl"`
	TemplatePackID string         `json:"templatePackId"`
	Format         string         `json:"format,omitempty"`
}

// Manifest identifies the producer of a drawing.
type Manifest struct {
	RendererVersion string `json:"rendererVersion"`
	TemplatePackID  string `json:"templatePackId"`
	RendererKind    string `json:"rendererKind"`
	SchemaHash      string `json:"schemaHash"`
}

// Result is the output of a render.
type Result struct {
	SVG      []byte
	Manifest Manifest
}

// Renderer produces a drawing for a request.
type Renderer interface {
	Render(ctx context.Context, req Request) (*Result, error)
}

func newManifest(req Request) Manifest {
	m := Manifest{
		RendererVersion: buildinfo.Version,
		TemplatePackID:  req.TemplatePackID,
		RendererKind:    cache.RendererKind,
	}
	if req.DSL != nil {
		m.SchemaHash = req.DSL.Meta.SchemaHash
	}
	return m
}
