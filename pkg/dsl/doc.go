// Package dsl defines RenderDSL, the canonical drawing description consumed by
// the renderer, and the mapper that derives it from an assembly schema.
//
// RenderDSL is millimetre-denominated and self-contained: it carries every
// value the layout passes need (connector footprints, nets in drawing order,
// label callouts, overall length and tolerance) and nothing that depends on the
// chosen template pack. The same DSL rendered with two template packs differs
// only in page geometry and style.
//
// # Mapping
//
// [Mapper.Map] applies the defaulting rules of the drawing pipeline:
//
//   - ribbon vs round classification of the cable
//   - connector footprints with "UNKNOWN" part numbers and crimp terminations
//     when the schema leaves them out
//   - net naming, pin numbering and the conductor color policy (locale table
//     for power cables, then the 10-color palette)
//   - callout offsets converted from inches to millimetres
//   - broken overall-length dimensions for cables longer than two metres
//
// The mapper is pure unless configured with a clock, in which case the DSL's
// meta.created_at is stamped. Leaving the clock unset keeps the DSL, and hence
// the rendered drawing, byte-identical across runs.
//
// # Wire format
//
// JSON field names match the rendering worker contract, including the tagged
// cable variant:
//
//	{"type": "ribbon", "ways": 12, "pitch_in": 0.05, "red_stripe": true}
//	{"type": "round", "conductors": 3, "awg": 18, "shield": "braid"}
package dsl
