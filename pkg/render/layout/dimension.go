package layout

import (
	"github.com/matzehuels/cabledraw/pkg/dsl"
	"github.com/matzehuels/cabledraw/pkg/render/units"
)

// Dimension constants, in millimetres.
const (
	// DimensionOffset is the distance of the OAL line above the cable region.
	DimensionOffset = 10
	// BreakHalfGap is half the gap left in a broken dimension line.
	BreakHalfGap = 5
	// TickAbove and TickBelow are the extension tick lengths around the line.
	TickAbove = 5
	TickBelow = 2
	// TextLift raises the dimension text above the line.
	TextLift = 2
	// BreakAmplitude is the zig-zag glyph height on each side of the line.
	BreakAmplitude = 2
)

// OAL is the overall-length dimension geometry.
type OAL struct {
	X1, Y1, X2, Y2 float64
	ValueMM        float64
	ToleranceMM    float64
	Broken         bool

	// Segments are the drawn dimension line pieces: one, or two around the
	// break gap.
	Segments []Line
	// Ticks are the extension ticks at both ends.
	Ticks []Line
	// Break is the zig-zag glyph in the gap, nil when not broken.
	Break []Point
	// Text is the anchor of the centred dimension text.
	Text Point
}

// DimensionResult holds the dimensions of the drawing.
type DimensionResult struct {
	OAL OAL
}

// Dimension computes the overall-length dimension spanning both connectors,
// placed above the cable region. Values pass through unrounded.
func Dimension(topo TopologyResult, d *dsl.RenderDSL) DimensionResult {
	x1 := topo.EndA.X
	x2 := topo.EndB.Right()
	y := topo.CableRegion.Y - DimensionOffset
	mid := (x1 + x2) / 2

	o := OAL{
		X1: x1, Y1: y, X2: x2, Y2: y,
		ValueMM:     d.Dimensions.OALMM,
		ToleranceMM: d.Dimensions.ToleranceMM,
		Broken:      d.Dimensions.BrokenDim,
		Ticks: []Line{
			{x1, y - TickAbove, x1, y + TickBelow},
			{x2, y - TickAbove, x2, y + TickBelow},
		},
		Text: Point{mid, y - TextLift},
	}
	if o.Broken {
		o.Segments = []Line{
			{x1, y, mid - BreakHalfGap, y},
			{mid + BreakHalfGap, y, x2, y},
		}
		o.Break = []Point{
			{mid - BreakHalfGap, y - BreakAmplitude},
			{mid, y + BreakAmplitude},
			{mid + BreakHalfGap, y - BreakAmplitude},
		}
	} else {
		o.Segments = []Line{{x1, y, x2, y}}
	}
	return DimensionResult{OAL: o}
}

// DimensionText formats the OAL text, e.g. "2500 ±15 mm".
func DimensionText(o OAL) string {
	return units.Number(o.ValueMM) + " ±" + units.Number(o.ToleranceMM) + " mm"
}
