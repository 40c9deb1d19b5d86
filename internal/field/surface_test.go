package field

import "image/color"

type op struct {
	kind  string
	x, y  float64
	x1    float64
	y1    float64
	r     float64
	color color.NRGBA
}

// recorder is a Surface that keeps every primitive it receives.
type recorder struct {
	w, h float64
	ops  []op
}

func newRecorder(w, h float64) *recorder {
	return &recorder{w: w, h: h}
}

func (r *recorder) Size() (float64, float64) { return r.w, r.h }

func (r *recorder) Clear() {
	r.ops = append(r.ops, op{kind: "clear"})
}

func (r *recorder) FillCircle(x, y, rad float64, c color.NRGBA) {
	r.ops = append(r.ops, op{kind: "circle", x: x, y: y, r: rad, color: c})
}

func (r *recorder) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	r.ops = append(r.ops, op{kind: "line", x: x0, y: y0, x1: x1, y1: y1, r: width, color: c})
}

func (r *recorder) count(kind string) int {
	n := 0
	for _, o := range r.ops {
		if o.kind == kind {
			n++
		}
	}
	return n
}
