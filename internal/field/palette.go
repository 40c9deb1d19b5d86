package field

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

// Particle hues are drawn from a cool blue band with fixed saturation and
// lightness.
const (
	HueBase    = 200.0
	HueSpan    = 60.0
	Saturation = 0.7
	Lightness  = 0.6
)

func coolColor(rng *rand.Rand) color.NRGBA {
	c := colorful.Hsl(HueBase+rng.Float64()*HueSpan, Saturation, Lightness).Clamped()
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// WithAlpha returns c with its alpha channel replaced by alpha in [0,1].
func WithAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(math.Round(clamp(alpha, 0, 1) * 0xff))
	return c
}

// Alpha reports the alpha channel of c in [0,1].
func Alpha(c color.NRGBA) float64 {
	return float64(c.A) / 0xff
}
