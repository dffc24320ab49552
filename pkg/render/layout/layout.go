package layout

import (
	"github.com/matzehuels/cabledraw/pkg/dsl"
	"github.com/matzehuels/cabledraw/pkg/templatepack"
)

// Context is the fully resolved drawing: inputs plus every pass result. It is
// built fresh for each render and never mutated afterwards.
type Context struct {
	DSL       *dsl.RenderDSL
	Pack      *templatepack.Pack
	Viewport  Viewport
	Topology  TopologyResult
	Routing   RoutingResult
	Dimension DimensionResult
	Labels    LabelsResult
	Notes     NotesResult
}

// Build runs the layout passes over d with the template pack p.
// d must have passed Validate.
func Build(d *dsl.RenderDSL, p *templatepack.Pack) *Context {
	vp := NewViewport(p.Manifest)
	topo := Topology(vp, d)
	routing := Route(topo, d)
	dim := Dimension(topo, d)
	notes := Notes(vp, p)
	labels := PlaceLabels(topo, dim, p.Manifest.Styles, d, notes.Obstacles()...)

	return &Context{
		DSL:       d,
		Pack:      p,
		Viewport:  vp,
		Topology:  topo,
		Routing:   routing,
		Dimension: dim,
		Labels:    labels,
		Notes:     notes,
	}
}
