package layout

import (
	"github.com/matzehuels/cabledraw/pkg/dsl"
	"github.com/matzehuels/cabledraw/pkg/render/units"
)

// NetPath is the routed path of one net.
type NetPath struct {
	Circuit string
	Lane    int
	Points  []Point
	Color   string
}

// RibbonLayout summarizes a ribbon's lanes for the red-stripe overlay.
type RibbonLayout struct {
	StartX, StartY float64
	EndX, EndY     float64
	Lanes          int
	Pitch          float64
}

// RoutingResult holds the net paths in DSL order.
type RoutingResult struct {
	Paths  []NetPath
	Ribbon *RibbonLayout
}

// Route assigns each net a lane and a straight path from the trailing edge of
// endA to the leading edge of endB. Net order in the DSL is the lane order.
func Route(topo TopologyResult, d *dsl.RenderDSL) RoutingResult {
	startX := topo.EndA.Right()
	endX := topo.EndB.X
	region := topo.CableRegion
	paths := make([]NetPath, 0, len(d.Nets))

	if r := d.Cable.Ribbon; r != nil {
		pitch := units.InchesToMM(r.PitchIn)
		startY := region.CenterY() - float64(r.Ways-1)*pitch/2
		for i, n := range d.Nets {
			lane := i % r.Ways
			y := startY + float64(lane)*pitch
			paths = append(paths, NetPath{
				Circuit: n.Circuit,
				Lane:    lane,
				Points:  []Point{{startX, y}, {endX, y}},
				Color:   n.Color,
			})
		}
		return RoutingResult{
			Paths: paths,
			Ribbon: &RibbonLayout{
				StartX: startX,
				StartY: startY,
				EndX:   endX,
				EndY:   startY,
				Lanes:  r.Ways,
				Pitch:  pitch,
			},
		}
	}

	spacing := region.Height / float64(len(d.Nets)+1)
	for i, n := range d.Nets {
		y := region.Y + spacing*float64(i+1)
		paths = append(paths, NetPath{
			Circuit: n.Circuit,
			Lane:    i,
			Points:  []Point{{startX, y}, {endX, y}},
			Color:   n.Color,
		})
	}
	return RoutingResult{Paths: paths}
}
