package field

import "image/color"

// Surface is the 2D drawing target of a frame. Implementations decide how
// alpha is realised; coordinates are surface-local and unscaled.
type Surface interface {
	Size() (w, h float64)
	Clear()
	FillCircle(x, y, r float64, c color.NRGBA)
	StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA)
}
