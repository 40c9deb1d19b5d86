package field

import "image/color"

const (
	// LinkAlpha is the opacity of a connection between two coincident particles.
	LinkAlpha = 0.4
	LineWidth = 0.7
)

// edge is a connection between particles I and J, I < J.
type edge struct {
	I, J  int
	Dist  float64
	Color color.NRGBA
}

// links returns every connection of the current frame without drawing.
func links(ps []Particle, distance float64, enabled bool) []edge {
	var edges []edge
	eachLink(ps, distance, enabled, func(i, j int, d float64, c color.NRGBA) {
		edges = append(edges, edge{I: i, J: j, Dist: d, Color: c})
	})
	return edges
}

// Connect draws the connections of the current frame and returns how many
// were drawn.
func Connect(s Surface, ps []Particle, distance float64, enabled bool) int {
	n := 0
	eachLink(ps, distance, enabled, func(i, j int, _ float64, c color.NRGBA) {
		a, b := ps[i].Pos, ps[j].Pos
		s.StrokeLine(a.X, a.Y, b.X, b.Y, LineWidth, c)
		n++
	})
	return n
}

// eachLink scans every unordered pair once. The stroke takes the colour of
// the first particle of the pair, so a connection's hue depends on pool
// order.
func eachLink(ps []Particle, distance float64, enabled bool, fn func(i, j int, d float64, c color.NRGBA)) {
	if !enabled || distance <= 0 {
		return
	}
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			d := ps[i].Pos.Dist(ps[j].Pos)
			if d >= distance {
				continue
			}
			fn(i, j, d, WithAlpha(ps[i].Color, (1-d/distance)*LinkAlpha))
		}
	}
}
