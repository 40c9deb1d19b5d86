package gui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// screenSurface draws field primitives into the current raylib frame.
// It is only valid between rl.BeginDrawing and rl.EndDrawing.
type screenSurface struct {
	w, h float64
	bg   rl.Color
}

func (s screenSurface) Size() (float64, float64) {
	return s.w, s.h
}

func (s screenSurface) Clear() {
	rl.ClearBackground(s.bg)
}

func (s screenSurface) FillCircle(x, y, r float64, c color.NRGBA) {
	rl.DrawCircleV(rl.NewVector2(float32(x), float32(y)), float32(r), toColor(c))
}

func (s screenSurface) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	rl.DrawLineEx(
		rl.NewVector2(float32(x0), float32(y0)),
		rl.NewVector2(float32(x1), float32(y1)),
		float32(width), toColor(c))
}

func toColor(c color.NRGBA) rl.Color {
	return rl.ColorAlpha(rl.NewColor(c.R, c.G, c.B, 255), float32(c.A)/255)
}
