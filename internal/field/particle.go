package field

import "image/color"

const (
	// PointerForce scales the unit push away from the pointer.
	PointerForce = 5.0
	// NearRelax is the per-frame return rate toward drift while a pointer
	// is over the surface but outside the particle's reach.
	NearRelax = 0.1
	// AmbientRelax is the per-frame return rate with no pointer at all.
	AmbientRelax = 0.03

	minDistance = 0.001
)

// Particle is one drifting point. Radius and Color are fixed at creation.
type Particle struct {
	Pos    Vec2
	Vel    Vec2
	Base   Vec2 // drift velocity the particle relaxes toward
	Radius float64
	Color  color.NRGBA
}

// Update advances the particle by one frame. With motion disabled the
// particle is left untouched.
func (p *Particle) Update(ptr Pointer, b Bounds, enabled bool) {
	if !enabled {
		return
	}

	if at, ok := ptr.Position(); ok {
		d := p.Pos.Dist(at)
		if d < ptr.Radius {
			force := (ptr.Radius - d) / ptr.Radius
			if d == 0 {
				d = minDistance
			}
			dir := p.Pos.Sub(at).Scale(1 / d)
			p.Vel = dir.Scale(force * PointerForce).Add(p.Base)
		} else {
			p.Vel = p.Vel.Approach(p.Base, NearRelax)
		}
	} else {
		p.Vel = p.Vel.Approach(p.Base, AmbientRelax)
	}

	p.Pos = p.Pos.Add(p.Vel)
	p.reflect(b)
}

// reflect bounces the particle off the surface edges. The drift velocity
// flips together with the instantaneous one, so a bounce permanently turns
// the particle around.
func (p *Particle) reflect(b Bounds) {
	if p.Pos.X < 0 || p.Pos.X > b.W {
		p.Vel.X = -p.Vel.X
		p.Base.X = -p.Base.X
		p.Pos.X = clamp(p.Pos.X, 0, b.W)
	}
	if p.Pos.Y < 0 || p.Pos.Y > b.H {
		p.Vel.Y = -p.Vel.Y
		p.Base.Y = -p.Base.Y
		p.Pos.Y = clamp(p.Pos.Y, 0, b.H)
	}
}

func (p *Particle) Draw(s Surface) {
	s.FillCircle(p.Pos.X, p.Pos.Y, p.Radius, p.Color)
}
