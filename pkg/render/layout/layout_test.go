package layout

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/cabledraw/pkg/dsl"
	"github.com/matzehuels/cabledraw/pkg/dsl/dsltest"
	"github.com/matzehuels/cabledraw/pkg/templatepack"
)

var approxOpt = cmpopts.EquateApprox(0, 1e-9)

func a3() templatepack.Manifest {
	return templatepack.Manifest{
		ID: "test-a3", Version: "1", Paper: "A3",
		Dimensions: templatepack.Dimensions{WidthMM: 420, HeightMM: 297},
		Margins:    templatepack.Margins{Top: 10, Right: 10, Bottom: 10, Left: 10},
		Styles:     templatepack.Styles{LineWidth: 0.5, FontSize: 3.5, Font: "Arial"},
	}
}

func ribbon12() *dsl.RenderDSL {
	return dsltest.Map(dsltest.RibbonAssembly("asm-r12", 12, 1000, nil))
}

func TestNewViewport(t *testing.T) {
	got := NewViewport(a3())
	want := Viewport{Width: 420, Height: 297, Content: Rect{X: 10, Y: 10, Width: 400, Height: 277}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("viewport mismatch (-want +got):\n%s", diff)
	}
}

func TestTopology(t *testing.T) {
	got := Topology(NewViewport(a3()), ribbon12())
	want := TopologyResult{
		EndA:        Rect{X: 50, Y: 125.76, Width: 20, Height: 35.48},
		EndB:        Rect{X: 350, Y: 125.76, Width: 20, Height: 35.48},
		CableRegion: Rect{X: 70, Y: 40, Width: 280, Height: 207},
	}
	if diff := cmp.Diff(want, got, approxOpt); diff != "" {
		t.Errorf("topology mismatch (-want +got):\n%s", diff)
	}
}

func TestTopologyOrientation(t *testing.T) {
	d := ribbon12()
	d.EndB.Orientation = dsl.Vertical
	got := Topology(NewViewport(a3()), d)
	if !approxEq(got.EndB.Width, 35.48) || got.EndB.Height != 15 {
		t.Errorf("vertical endB = %+v, want 35.48 x 15", got.EndB)
	}
	if !approxEq(got.EndB.Right(), 370) {
		t.Errorf("endB right edge = %v, want 370", got.EndB.Right())
	}
	if !approxEq(got.CableRegion.Right(), got.EndB.X) {
		t.Errorf("cable region should end at endB")
	}

	d.EndA.Positions = 1
	small := Topology(NewViewport(a3()), d)
	if small.EndA.Height != 15 {
		t.Errorf("1-position horizontal height = %v, want minimum 15", small.EndA.Height)
	}
}

func TestTopologyClampsToBand(t *testing.T) {
	d := ribbon12()
	d.EndA.Positions = 200
	got := Topology(NewViewport(a3()), d)
	if got.EndA.Height != got.CableRegion.Height {
		t.Errorf("endA height = %v, want clamped to band %v", got.EndA.Height, got.CableRegion.Height)
	}
}

func TestRouteRibbon(t *testing.T) {
	d := ribbon12()
	topo := Topology(NewViewport(a3()), d)
	r := Route(topo, d)

	if len(r.Paths) != 12 {
		t.Fatalf("len(Paths) = %d, want 12", len(r.Paths))
	}
	if r.Ribbon == nil {
		t.Fatal("Ribbon layout missing")
	}
	wantRibbon := RibbonLayout{StartX: 70, StartY: 136.515, EndX: 350, EndY: 136.515, Lanes: 12, Pitch: 1.27}
	if diff := cmp.Diff(wantRibbon, *r.Ribbon, approxOpt); diff != "" {
		t.Errorf("ribbon layout mismatch (-want +got):\n%s", diff)
	}
	for i, p := range r.Paths {
		if p.Lane != i || p.Circuit != d.Nets[i].Circuit {
			t.Errorf("path %d = lane %d %q, want lane %d %q", i, p.Lane, p.Circuit, i, d.Nets[i].Circuit)
		}
		wantY := 136.515 + float64(i)*1.27
		if len(p.Points) != 2 || !approxEq(p.Points[0].Y, wantY) || p.Points[0].Y != p.Points[1].Y {
			t.Errorf("path %d points = %v, want horizontal at y=%v", i, p.Points, wantY)
		}
		if p.Points[0].X != 70 || p.Points[1].X != 350 {
			t.Errorf("path %d x = %v..%v, want 70..350", i, p.Points[0].X, p.Points[1].X)
		}
	}
}

func TestRouteRibbonWrapsLanes(t *testing.T) {
	d := ribbon12()
	d.Cable.Ribbon.Ways = 4
	r := Route(Topology(NewViewport(a3()), d), d)
	for i, p := range r.Paths {
		if p.Lane != i%4 {
			t.Errorf("path %d lane = %d, want %d", i, p.Lane, i%4)
		}
	}
}

func TestRouteRound(t *testing.T) {
	d := dsltest.Map(dsltest.PowerAssembly("pwr", "NA"))
	r := Route(Topology(NewViewport(a3()), d), d)
	if r.Ribbon != nil {
		t.Error("round cable should have no ribbon layout")
	}
	want := []NetPath{
		{Circuit: "+48V", Lane: 0, Points: []Point{{70, 109}, {350, 109}}, Color: "red"},
		{Circuit: "RTN", Lane: 1, Points: []Point{{70, 178}, {350, 178}}, Color: "black"},
	}
	if diff := cmp.Diff(want, r.Paths, approxOpt); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestDimension(t *testing.T) {
	tests := []struct {
		name     string
		length   float64
		segments int
		broken   bool
	}{
		{"continuous", 800, 1, false},
		{"broken", 2500, 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := dsltest.Map(dsltest.RibbonAssembly("a", 12, tt.length, nil))
			o := Dimension(Topology(NewViewport(a3()), d), d).OAL

			if o.X1 != 50 || o.X2 != 370 || o.Y1 != 30 || o.Y2 != 30 {
				t.Errorf("line = (%v,%v)-(%v,%v), want (50,30)-(370,30)", o.X1, o.Y1, o.X2, o.Y2)
			}
			if len(o.Segments) != tt.segments || o.Broken != tt.broken || (o.Break != nil) != tt.broken {
				t.Errorf("segments=%d broken=%v glyph=%v", len(o.Segments), o.Broken, o.Break)
			}
			if len(o.Ticks) != 2 || o.Ticks[0].Y1 != 25 || o.Ticks[0].Y2 != 32 {
				t.Errorf("ticks = %+v", o.Ticks)
			}
			if o.Text != (Point{210, 28}) {
				t.Errorf("text anchor = %+v, want {210 28}", o.Text)
			}
			if tt.broken {
				if o.Segments[0].X2 != 205 || o.Segments[1].X1 != 215 {
					t.Errorf("gap = %v..%v, want 205..215", o.Segments[0].X2, o.Segments[1].X1)
				}
			}
		})
	}
}

func TestDimensionText(t *testing.T) {
	tests := []struct {
		value, tol float64
		want       string
	}{
		{2500, 15, "2500 ±15 mm"},
		{800, 5, "800 ±5 mm"},
		{333.333333, 2.777777, "333.33 ±2.78 mm"},
	}
	for _, tt := range tests {
		if got := DimensionText(OAL{ValueMM: tt.value, ToleranceMM: tt.tol}); got != tt.want {
			t.Errorf("DimensionText(%v, %v) = %q, want %q", tt.value, tt.tol, got, tt.want)
		}
	}
}

func TestPlaceLabels(t *testing.T) {
	d := ribbon12()
	d.Labels = []dsl.Label{
		{Text: "FIRST", Anchor: dsl.AnchorCable},
		{Text: "SECOND", Anchor: dsl.AnchorCable},
		{Text: "J1", Anchor: dsl.AnchorEndA, OffsetY: -5},
		{Text: "OAL", Anchor: dsl.AnchorDimension},
		{Text: "INSIDE", Anchor: dsl.AnchorEndA, OffsetY: 10},
	}
	m := a3()
	topo := Topology(NewViewport(m), d)
	dim := Dimension(topo, d)
	got := PlaceLabels(topo, dim, m.Styles, d).Labels

	if len(got) != len(d.Labels) {
		t.Fatalf("placed %d labels, want %d", len(got), len(d.Labels))
	}
	for i, p := range got {
		if p.Label != d.Labels[i] {
			t.Errorf("label %d out of order: %q", i, p.Label.Text)
		}
	}

	want := []struct {
		x, y     float64
		adjusted bool
	}{
		{210, 255, false},
		{210, 258.8, true},
		{50, 115.76, false},
		{210, 22, false},
		{50, 164.96, true},
	}
	for i, w := range want {
		p := got[i]
		if !approxEq(p.X, w.x) || !approxEq(p.Y, w.y) || p.Adjusted != w.adjusted {
			t.Errorf("label %q at (%v, %v) adjusted=%v, want (%v, %v) adjusted=%v",
				p.Label.Text, p.X, p.Y, p.Adjusted, w.x, w.y, w.adjusted)
		}
	}

	for i := range got {
		if got[i].Box.Overlaps(topo.EndA) || got[i].Box.Overlaps(topo.EndB) {
			t.Errorf("label %q overlaps a connector", got[i].Label.Text)
		}
		for j := 0; j < i; j++ {
			if got[i].Box.Overlaps(got[j].Box) {
				t.Errorf("labels %q and %q overlap", got[i].Label.Text, got[j].Label.Text)
			}
		}
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	p := &templatepack.Pack{Manifest: a3()}
	first := Build(ribbon12(), p)
	for i := 0; i < 3; i++ {
		next := Build(ribbon12(), p)
		if diff := cmp.Diff(first, next); diff != "" {
			t.Fatalf("build %d differs:\n%s", i, diff)
		}
	}
}

func TestRectOverlaps(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	tests := []struct {
		b    Rect
		want bool
	}{
		{Rect{X: 5, Y: 5, Width: 10, Height: 10}, true},
		{Rect{X: 10, Y: 0, Width: 5, Height: 5}, false},
		{Rect{X: 0, Y: 10, Width: 5, Height: 5}, false},
		{Rect{X: 2, Y: 2, Width: 1, Height: 1}, true},
		{Rect{X: 20, Y: 20, Width: 1, Height: 1}, false},
	}
	for _, tt := range tests {
		if got := a.Overlaps(tt.b); got != tt.want {
			t.Errorf("Overlaps(%+v) = %v, want %v", tt.b, got, tt.want)
		}
	}
}

func approxEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNotes(t *testing.T) {
	l := templatepack.NewLoader(nil, templatepack.BuiltinRoot())

	t.Run("without symbols", func(t *testing.T) {
		p, err := l.Load("basic-a3")
		if err != nil {
			t.Fatal(err)
		}
		n := Notes(NewViewport(p.Manifest), p)
		if len(n.Symbols) != 0 {
			t.Errorf("Symbols = %v, want none", n.Symbols)
		}
		if n.Text != (Point{10, 287}) {
			t.Errorf("Text = %+v, want {10 287}", n.Text)
		}
		if n.QR != (Rect{X: 390, Y: 267, Width: 20, Height: 20}) {
			t.Errorf("QR = %+v", n.QR)
		}
	})

	for _, id := range []string{"STD-A3-IPC620", "STD-Letter-IPC620"} {
		t.Run(id, func(t *testing.T) {
			p, err := l.Load(id)
			if err != nil {
				t.Fatal(err)
			}
			vp := NewViewport(p.Manifest)
			n := Notes(vp, p)
			if len(n.Symbols) != 2 {
				t.Fatalf("len(Symbols) = %d, want 2", len(n.Symbols))
			}
			if n.Symbols[0].Name != templatepack.SymbolNotesTable || n.Symbols[1].Name != templatepack.SymbolTitleblock {
				t.Errorf("symbol order = %s, %s", n.Symbols[0].Name, n.Symbols[1].Name)
			}
			band := usableBand(vp.Content)
			for _, s := range n.Symbols {
				if s.X < vp.Content.X-1e-9 || s.Right() > n.QR.X || s.Y < band.Bottom() || s.Bottom() > n.Text.Y {
					t.Errorf("%s at %+v outside the notes area", s.Name, s.Rect)
				}
				if s.Overlaps(n.QR) {
					t.Errorf("%s overlaps the QR placeholder", s.Name)
				}
			}
			if n.Symbols[0].Overlaps(n.Symbols[1].Rect) {
				t.Error("notes table and title block overlap")
			}
			// Aspect ratio is preserved.
			tb := n.Symbols[1]
			if !approxEq(tb.Width/tb.Height, 180.0/40.0) {
				t.Errorf("title block aspect = %v, want 4.5", tb.Width/tb.Height)
			}
		})
	}
}
