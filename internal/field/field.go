package field

import "math/rand"

// Field is the simulation context of one surface: the pool, the pointer,
// and the motion configuration in effect.
type Field struct {
	Pool     *Pool
	Pointer  Pointer
	Settings Settings
	Enabled  bool
}

// Stats summarises one frame.
type Stats struct {
	Particles int
	Edges     int
}

// New returns an empty, motion-disabled field. It is populated by the
// first Apply.
func New(b Bounds, rng *rand.Rand) *Field {
	return &Field{Pool: NewPool(b, rng)}
}

// Apply switches configuration and repopulates the pool.
func (f *Field) Apply(s Settings, enabled bool) {
	f.Settings = s
	f.Enabled = enabled
	f.Pointer.Radius = s.PointerRadius
	f.Pool.Repopulate(s.ParticleCount)
}

// Resize adopts new surface bounds, keeping the particle count.
func (f *Field) Resize(w, h float64) {
	f.Pool.Resize(Bounds{W: w, H: h})
}

// Step renders one frame onto s: clear, update and draw every particle in
// pool order, then draw the connections.
func (f *Field) Step(s Surface) Stats {
	s.Clear()
	b := f.Pool.Bounds()
	ps := f.Pool.Particles()
	for i := range ps {
		ps[i].Update(f.Pointer, b, f.Enabled)
		ps[i].Draw(s)
	}
	edges := Connect(s, ps, f.Settings.ConnectionDistance, f.Enabled)
	return Stats{Particles: len(ps), Edges: edges}
}
