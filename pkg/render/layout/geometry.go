package layout

// Point is a page coordinate in millimetres.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned box in millimetres.
type Rect struct {
	X, Y, Width, Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// CenterX returns the horizontal centre.
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }

// CenterY returns the vertical centre.
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// Overlaps reports whether r and o share interior area. Touching edges do not
// overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Line is a straight segment.
type Line struct {
	X1, Y1, X2, Y2 float64
}
