package layout

import (
	"math"

	"github.com/matzehuels/cabledraw/pkg/dsl"
)

// Topology constants, in millimetres.
const (
	// DimensionBand is reserved above the cable region for the OAL dimension.
	DimensionBand = 30
	// NotesBand is reserved below the cable region for notes and symbols.
	NotesBand = 40
	// ConnectorInset separates the connector boxes from the content edges.
	ConnectorInset = 40
	// PinPitch is the nominal connector pin pitch.
	PinPitch = 2.54
	// PinPadding pads the pin span on each side of a connector.
	PinPadding = 2.5

	connectorDepth = 20
	connectorMinor = 15
)

// TopologyResult holds the connector boxes and the cable region between them.
type TopologyResult struct {
	EndA        Rect
	EndB        Rect
	CableRegion Rect
}

// Topology places the connector boxes and the cable region inside the usable
// band of the content area.
func Topology(vp Viewport, d *dsl.RenderDSL) TopologyResult {
	band := usableBand(vp.Content)

	a := connectorSize(d.EndA, band)
	b := connectorSize(d.EndB, band)

	a.X = band.X + ConnectorInset
	a.Y = band.CenterY() - a.Height/2
	b.X = band.Right() - ConnectorInset - b.Width
	b.Y = band.CenterY() - b.Height/2

	region := Rect{
		X:      a.Right(),
		Y:      band.Y,
		Width:  math.Max(0, b.X-a.Right()),
		Height: band.Height,
	}
	return TopologyResult{EndA: a, EndB: b, CableRegion: region}
}

// usableBand is the content area minus the dimension and notes bands. Content
// too short for both bands is used whole.
func usableBand(content Rect) Rect {
	if content.Height <= DimensionBand+NotesBand {
		return content
	}
	return Rect{
		X:      content.X,
		Y:      content.Y + DimensionBand,
		Width:  content.Width,
		Height: content.Height - DimensionBand - NotesBand,
	}
}

// connectorSize sizes a connector box from its pin span and orientation,
// clamped to the band.
func connectorSize(e dsl.Endpoint, band Rect) Rect {
	span := float64(e.Positions)*PinPitch + 2*PinPadding
	var r Rect
	if e.IsVertical() {
		r = Rect{Width: math.Max(connectorDepth, span), Height: connectorMinor}
	} else {
		r = Rect{Width: connectorDepth, Height: math.Max(connectorMinor, span)}
	}
	maxWidth := (band.Width - 2*ConnectorInset) / 3
	if maxWidth > 0 && r.Width > maxWidth {
		r.Width = maxWidth
	}
	if r.Height > band.Height {
		r.Height = band.Height
	}
	return r
}
