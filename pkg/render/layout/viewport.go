package layout

import "github.com/matzehuels/cabledraw/pkg/templatepack"

// Viewport is the page and its content area after margins.
type Viewport struct {
	Width, Height float64
	Content       Rect
}

// NewViewport derives the viewport from a template manifest.
func NewViewport(m templatepack.Manifest) Viewport {
	w, h := m.Dimensions.WidthMM, m.Dimensions.HeightMM
	return Viewport{
		Width:  w,
		Height: h,
		Content: Rect{
			X:      m.Margins.Left,
			Y:      m.Margins.Top,
			Width:  w - m.Margins.Left - m.Margins.Right,
			Height: h - m.Margins.Top - m.Margins.Bottom,
		},
	}
}
