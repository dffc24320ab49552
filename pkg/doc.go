// Package pkg provides the core libraries for cabledraw, a renderer for
// cable assembly manufacturing drawings.
//
// # Overview
//
// Cabledraw turns an assembly schema (cable, conductors, connectors,
// wirelist) into a 2D SVG drawing on a template pack sheet, and caches every
// drawing under a content-addressed revision so the same schema and template
// are never rendered twice.
//
// # Architecture
//
// The typical data flow:
//
//	Assembly schema (JSON/YAML, MongoDB, assembly dir)
//	         ↓
//	    [dsl] Mapper (normalize to the millimetre RenderDSL)
//	         ↓
//	    [render/layout] passes (topology → route → dimension → notes → labels)
//	         ↓
//	    [render/svg] encoder (deterministic SVG on the template sheet)
//	         ↓
//	    [drawing] store (/drawings/<assembly>/<rev>/drawing.svg)
//
// [pipeline] runs this flow behind the cache for both the CLI and [api].
//
// # Main Packages
//
// [schema] - Assembly schema types, content hashing and file decoding.
//
// [dsl] - RenderDSL types, validation, conductor colors and the schema mapper.
//
// [templatepack] - Template pack manifests and symbols, loaded from embedded
// and on-disk roots, with hot reload.
//
// [render] - The Renderer interface with an in-process implementation;
// [render/worker] is the HTTP client for a remote rendering worker and
// [render/netlist] draws pin-to-pin netlists with Graphviz.
//
// [cache] - Cache keys, revisions, render locks (Redis) and retry helpers.
//
// [drawing] - Drawing keys and the atomic file store.
//
// [assembly] - Assembly lookup by id (memory, files, MongoDB).
//
// [pipeline] - The render-and-cache entry point shared by CLI and API.
//
// [api] - HTTP render API and rendering worker handlers.
//
// [config], [errors], [observability], [buildinfo] - Ambient support.
//
// # Quick Start
//
//	loader := templatepack.NewDefaultLoader(nil)
//	store, _ := drawing.NewFileStore("drawings")
//	runner := pipeline.NewRunner(loader, store, nil, logger)
//
//	s, _ := schema.ReadFile("assembly.yaml")
//	resp, _ := runner.Execute(ctx, pipeline.Request{Schema: s})
//	fmt.Println(resp.URL)
package pkg
