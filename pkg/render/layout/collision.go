package layout

import (
	"unicode/utf8"

	"github.com/matzehuels/cabledraw/pkg/dsl"
	"github.com/matzehuels/cabledraw/pkg/templatepack"
)

// Label anchoring and search constants, in millimetres unless noted.
const (
	// EndLabelLift raises end-anchored labels above their connector box.
	EndLabelLift = 5
	// CableLabelDrop places cable-anchored labels below the cable region.
	CableLabelDrop = 8
	// DimensionLabelLift places dimension-anchored labels above the OAL line.
	DimensionLabelLift = 8

	// charWidthRatio estimates glyph advance as a fraction of font size.
	charWidthRatio = 0.6
	// searchGap separates a displaced label from the one it avoided.
	searchGap = 1
	// maxRowSteps and maxColumns bound the displacement search.
	maxRowSteps = 20
	maxColumns  = 10
)

// PlacedLabel is a label resolved to an absolute baseline position.
type PlacedLabel struct {
	Label dsl.Label
	X, Y  float64
	// Box is the estimated text bounding box at the final position.
	Box Rect
	// Adjusted reports whether the label moved off its anchor position.
	Adjusted bool
}

// LabelsResult holds the placed labels in DSL order.
type LabelsResult struct {
	Labels []PlacedLabel
}

// TextBox estimates the bounding box of left-aligned text whose baseline
// starts at (x, y).
func TextBox(text string, x, y, fontSize float64) Rect {
	w := float64(utf8.RuneCountInString(text)) * fontSize * charWidthRatio
	return Rect{X: x, Y: y - fontSize, Width: w, Height: fontSize}
}

// CenteredTextBox estimates the bounding box of text centred on x.
func CenteredTextBox(text string, x, y, fontSize float64) Rect {
	r := TextBox(text, x, y, fontSize)
	r.X -= r.Width / 2
	return r
}

// PlaceLabels resolves label anchors to absolute positions and displaces any
// label that would overlap a connector box, the dimension text or an earlier
// label. Labels are processed in DSL order; candidates are tried downward in
// steps of the label height, then in columns to the right, and the first
// clear candidate wins. When none is clear the anchor position is kept.
// extra adds fixed obstacles such as placed template symbols.
func PlaceLabels(topo TopologyResult, dim DimensionResult, styles templatepack.Styles, d *dsl.RenderDSL, extra ...Rect) LabelsResult {
	fontSize := styles.LabelFontSize()
	dimText := CenteredTextBox(DimensionText(dim.OAL), dim.OAL.Text.X, dim.OAL.Text.Y, styles.FontSize)

	obstacles := append([]Rect{topo.EndA, topo.EndB, dimText}, extra...)
	placed := make([]PlacedLabel, 0, len(d.Labels))

	for _, l := range d.Labels {
		ax, ay := anchorPoint(l.Anchor, topo, dim)
		x, y := ax+l.OffsetX, ay+l.OffsetY
		box := TextBox(l.Text, x, y, fontSize)

		p := PlacedLabel{Label: l, X: x, Y: y, Box: box}
		if collides(box, obstacles) {
			if cx, cy, ok := search(box, obstacles); ok {
				p.X += cx
				p.Y += cy
				p.Box = TextBox(l.Text, p.X, p.Y, fontSize)
				p.Adjusted = true
			}
		}
		placed = append(placed, p)
		obstacles = append(obstacles, p.Box)
	}
	return LabelsResult{Labels: placed}
}

func anchorPoint(anchor string, topo TopologyResult, dim DimensionResult) (float64, float64) {
	switch anchor {
	case dsl.AnchorEndA:
		return topo.EndA.X, topo.EndA.Y - EndLabelLift
	case dsl.AnchorEndB:
		return topo.EndB.X, topo.EndB.Y - EndLabelLift
	case dsl.AnchorDimension:
		return (dim.OAL.X1 + dim.OAL.X2) / 2, dim.OAL.Y1 - DimensionLabelLift
	default:
		return topo.CableRegion.CenterX(), topo.CableRegion.Bottom() + CableLabelDrop
	}
}

// search returns the offset of the first clear candidate position.
func search(box Rect, obstacles []Rect) (dx, dy float64, ok bool) {
	stepY := box.Height + searchGap
	stepX := box.Width / 2
	for col := 0; col <= maxColumns; col++ {
		for row := 0; row <= maxRowSteps; row++ {
			if col == 0 && row == 0 {
				continue
			}
			dx, dy = float64(col)*stepX, float64(row)*stepY
			c := box
			c.X += dx
			c.Y += dy
			if !collides(c, obstacles) {
				return dx, dy, true
			}
		}
	}
	return 0, 0, false
}

func collides(r Rect, obstacles []Rect) bool {
	for _, o := range obstacles {
		if r.Overlaps(o) {
			return true
		}
	}
	return false
}
