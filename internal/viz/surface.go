package viz

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// PixelsPerDot maps field units onto braille dots. A terminal cell is
	// roughly 8x16 pixels, i.e. 2x4 dots of 4x4 pixels.
	PixelsPerDot = 4.0

	// lineGain lifts translucent connections, which would otherwise vanish
	// against the background at terminal colour depth.
	lineGain     = 2.0
	minLineAlpha = 0.03
)

// Surface draws a particle field onto a braille Canvas.
type Surface struct {
	canvas     *Canvas
	background colorful.Color
}

func NewSurface(c *Canvas, background string) *Surface {
	bg, err := colorful.Hex(background)
	if err != nil {
		bg = colorful.Color{}
	}
	return &Surface{canvas: c, background: bg}
}

// Size is the canvas size in field units.
func (s *Surface) Size() (float64, float64) {
	return float64(s.canvas.Width*2) * PixelsPerDot, float64(s.canvas.Height*4) * PixelsPerDot
}

func (s *Surface) Clear() {
	s.canvas.Clear()
}

func (s *Surface) FillCircle(x, y, r float64, c color.NRGBA) {
	s.canvas.FillCircle(x/PixelsPerDot, y/PixelsPerDot, r/PixelsPerDot, s.blend(c, 1))
}

func (s *Surface) StrokeLine(x0, y0, x1, y1, _ float64, c color.NRGBA) {
	alpha := float64(c.A) / 0xff
	if alpha < minLineAlpha {
		return
	}
	s.canvas.DrawLine(
		int(x0/PixelsPerDot), int(y0/PixelsPerDot),
		int(x1/PixelsPerDot), int(y1/PixelsPerDot),
		s.blend(c, lineGain),
	)
}

// blend composites c over the background; braille cells cannot be
// translucent.
func (s *Surface) blend(c color.NRGBA, gain float64) color.NRGBA {
	t := float64(c.A) / 0xff * gain
	if t > 1 {
		t = 1
	}
	fg := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	r, g, b := s.background.BlendRgb(fg, t).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// CellToField maps a terminal cell to the field coordinates of its centre.
func CellToField(col, row int) (float64, float64) {
	return (float64(col*2) + 1) * PixelsPerDot, (float64(row*4) + 2) * PixelsPerDot
}
