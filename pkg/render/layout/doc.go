// Package layout computes drawing geometry from a RenderDSL and a template
// pack.
//
// Layout is a fold over pure passes, each a function of the DSL and the
// immutable results of the passes before it:
//
//	Topology  viewport, DSL              -> connector boxes, cable region
//	Route     topology, DSL              -> one lane and path per net
//	Dimension topology, DSL              -> overall-length dimension geometry
//	Notes     viewport, template pack    -> notes text, symbols, QR placeholder
//	PlaceLabels topology, dimension, DSL -> absolute, non-overlapping labels
//
// [Build] runs the fold and returns a [Context] that the SVG codec serializes.
// Label placement runs last because dimension-anchored labels are positioned
// relative to the dimension line, and every label must avoid the dimension
// text and the notes-area symbols.
//
// No pass rounds its output. Two-decimal rounding happens once, at
// serialization, so that every coordinate sees the same rounding rule.
package layout
