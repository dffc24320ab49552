// Package svg serializes a resolved layout into a deterministic SVG drawing.
//
// [Encode] is a pure function of its [layout.Context]. Elements are emitted in
// a fixed order:
//
//	header, metadata, defs (markers, patterns, template symbols), style,
//	connectors, pin-1 indicators, wires, red-stripe overlay, dimension group,
//	labels, notes, QR placeholder
//
// Every coordinate is printed with exactly two decimals and every visual
// element carries a stable id of the form "<assemblyId>-<role>[-<discriminator>]",
// so drawings diff cleanly between revisions. No timestamps, random values or
// unordered map iteration reach the output: encoding the same context twice
// yields identical bytes.
package svg
