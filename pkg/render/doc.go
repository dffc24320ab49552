// Package render turns a validated RenderDSL into drawing bytes.
//
// # Overview
//
// A [Renderer] takes a [Request] (the DSL plus a template pack id) and returns
// the SVG along with a [Manifest] describing who produced it. Two
// implementations exist:
//
//   - [Local] runs the layout passes and the SVG codec in-process
//   - [worker.Client] posts the request to a remote rendering worker
//
// The render cache in [pipeline] only depends on the interface, so the
// renderer can be swapped by configuration.
//
// # Subpackages
//
//   - [layout]: the pure geometry passes (topology, routing, dimension, notes, labels)
//   - [svg]: the deterministic SVG codec
//   - [units]: millimetre formatting and conversions
//   - [netlist]: Graphviz netlist diagrams for inspection
//   - [worker]: HTTP client for the remote rendering worker
//
// # Usage
//
//	r := render.NewLocal(loader, logger)
//	res, err := r.Render(ctx, render.Request{DSL: d, TemplatePackID: "basic-a3"})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("drawing.svg", res.SVG, 0o644)
package render
