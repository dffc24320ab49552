package layout

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/cabledraw/pkg/templatepack"
)

// Notes area constants, in millimetres.
const (
	// NotesTextInset is the distance of the notes-pack text above the page bottom.
	NotesTextInset = 10
	// QRSize is the side of the QR placeholder.
	QRSize = 20
	// QRInset is the distance of the QR placeholder from the page corner.
	QRInset = 30
	// symbolClearance keeps symbols clear of cable-anchored labels.
	symbolClearance = 12
	symbolGap       = 5

	fallbackSymbolWidth  = 50
	fallbackSymbolHeight = 20
)

// SymbolPlacement is a template symbol instance on the page.
type SymbolPlacement struct {
	Name string
	Rect
}

// NotesResult is the geometry of the notes area.
type NotesResult struct {
	// Text is the baseline of the notes-pack reference.
	Text Point
	// Symbols holds the notes table (left) and title block (right) when the
	// pack provides them.
	Symbols []SymbolPlacement
	QR      Rect
}

// Notes lays out the notes area in the band below the cable region: the
// notes-pack text, the pack's notes table and title block scaled to fit
// between the content edge and the QR placeholder, and the QR placeholder in
// the bottom-right corner.
func Notes(vp Viewport, p *templatepack.Pack) NotesResult {
	styles := p.Manifest.Styles
	n := NotesResult{
		Text: Point{vp.Content.X, vp.Height - NotesTextInset},
		QR:   Rect{X: vp.Width - QRInset, Y: vp.Height - QRInset, Width: QRSize, Height: QRSize},
	}

	var names []string
	for _, name := range []string{templatepack.SymbolNotesTable, templatepack.SymbolTitleblock} {
		if p.HasSymbol(name) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return n
	}

	top := usableBand(vp.Content).Bottom() + symbolClearance
	bottom := n.Text.Y - styles.LabelFontSize() - 2
	left := vp.Content.X
	right := n.QR.X - symbolGap

	sizes := make([]Point, len(names))
	var totalW, maxH float64
	for i, name := range names {
		w, h := symbolSize(p.Symbols[name])
		sizes[i] = Point{w, h}
		totalW += w
		maxH = math.Max(maxH, h)
	}
	totalW += symbolGap * float64(len(names)-1)

	scale := math.Min(1, math.Min((right-left)/totalW, (bottom-top)/maxH))
	if scale <= 0 {
		return n
	}

	for i, name := range names {
		w, h := sizes[i].X*scale, sizes[i].Y*scale
		x := left
		if name == templatepack.SymbolTitleblock {
			x = right - w
		}
		n.Symbols = append(n.Symbols, SymbolPlacement{
			Name: name,
			Rect: Rect{X: x, Y: bottom - h, Width: w, Height: h},
		})
	}
	return n
}

// symbolSize reads the symbol's natural size from its viewBox.
func symbolSize(s templatepack.Symbol) (float64, float64) {
	f := strings.Fields(strings.ReplaceAll(s.ViewBox, ",", " "))
	if len(f) == 4 {
		w, errW := strconv.ParseFloat(f[2], 64)
		h, errH := strconv.ParseFloat(f[3], 64)
		if errW == nil && errH == nil && w > 0 && h > 0 {
			return w, h
		}
	}
	return fallbackSymbolWidth, fallbackSymbolHeight
}

// Obstacles returns the areas labels must avoid.
func (n NotesResult) Obstacles() []Rect {
	rects := make([]Rect, 0, len(n.Symbols)+1)
	for _, s := range n.Symbols {
		rects = append(rects, s.Rect)
	}
	return append(rects, n.QR)
}
