// Package pipeline provides the render-and-cache entry point of cabledraw.
//
// This package implements the complete schema → DSL → drawing → storage flow
// used by the HTTP API and the CLI. By centralizing this logic, both entry
// points share the same cache keys, the same de-duplication and the same error
// classification.
//
// # Architecture
//
// A render request moves through these steps:
//
//  1. Validate: assembly id or inline schema, format, template defaults
//  2. Resolve: load the schema (inline or from the assembly store) and the
//     template pack
//  3. Key: schema hash + template pack id + renderer kind → cache key and
//     8-character revision
//  4. Serve: a stored drawing for the revision is a cache hit
//  5. Render: on a miss, map the DSL, render it and persist the result
//
// For a given key the drawing moves from absent to rendering to persisted
// exactly once per process ([golang.org/x/sync/singleflight]) and, when a
// Redis locker is configured, once across processes.
//
// # Usage
//
//	runner := pipeline.NewRunner(loader, store, nil, logger)
//	resp, err := runner.Execute(ctx, pipeline.Request{
//	    AssemblyID:     "A-100",
//	    TemplatePackID: "STD-A3-IPC620",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(resp.URL) // /drawings/A-100/3f9a12bc/drawing.svg
package pipeline

import (
	"github.com/matzehuels/cabledraw/pkg/errors"
	"github.com/matzehuels/cabledraw/pkg/render"
	"github.com/matzehuels/cabledraw/pkg/schema"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultTemplatePackID is used when a request names no template pack.
	DefaultTemplatePackID = "basic-a3"

	// DefaultFormat is the requested format when none is given.
	DefaultFormat = render.FormatSVG
)

// =============================================================================
// Request / Response
// =============================================================================

// Request asks for the drawing of one assembly.
// This struct is the JSON body of POST /v1/render.
type Request struct {
	AssemblyID     string           `json:"assembly_id,omitempty"`
	Schema         *schema.Assembly `json:"schema,omitempty"`
	TemplatePackID string           `json:"templatePackId,omitempty"`
	Format         string           `json:"format,omitempty"`
	Inline         bool             `json:"inline,omitempty"`
}

// RenderManifest describes how a drawing was produced.
type RenderManifest struct {
	RendererVersion string `json:"rendererVersion"`
	TemplatePackID  string `json:"templatePackId"`
	RendererKind    string `json:"rendererKind"`
	SchemaHash      string `json:"schemaHash"`
	CacheHit        bool   `json:"cacheHit"`
}

// Response is the result of a render request. Exactly one of URL and SVG is
// set: SVG when the request asked for inline content.
type Response struct {
	RenderManifest RenderManifest `json:"render_manifest"`
	URL            string         `json:"url,omitempty"`
	SVG            string         `json:"svg,omitempty"`
	Format         string         `json:"format"`
	Warnings       []string       `json:"warnings,omitempty"`

	// Revision is the cache revision the drawing is stored under.
	Revision string `json:"-"`
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormat checks that a format may be requested.
func ValidateFormat(format string) error {
	if !render.ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, pdf, png)", format)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// It is idempotent.
func (r *Request) ValidateAndSetDefaults() error {
	if r.AssemblyID == "" && r.Schema == nil {
		return errors.New(errors.ErrCodeInvalidInput, "assembly_id or schema required")
	}
	if r.TemplatePackID == "" {
		r.TemplatePackID = DefaultTemplatePackID
	}
	if r.Format == "" {
		r.Format = DefaultFormat
	}
	return ValidateFormat(r.Format)
}

// producedFormat returns the format actually stored for a requested one.
// Only SVG is produced; other formats fall back to it.
func producedFormat(requested string) (string, []string) {
	if requested == render.FormatSVG {
		return requested, nil
	}
	return render.FormatSVG, []string{requested + " output is not supported; returning svg"}
}
