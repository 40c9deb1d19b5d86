package field

import (
	"math/rand"
	"time"
)

const (
	MinRadius = 1.5
	MaxRadius = 5.0
	// SpeedMul bounds each initial velocity component to [-SpeedMul, SpeedMul].
	SpeedMul = 0.75
)

// Pool owns the live particles. Membership only changes on Repopulate.
type Pool struct {
	particles []Particle
	bounds    Bounds
	rng       *rand.Rand
}

// NewPool returns an empty pool. A nil rng is replaced by a time-seeded one.
func NewPool(b Bounds, rng *rand.Rand) *Pool {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Pool{bounds: b, rng: rng}
}

// Repopulate discards every particle and creates n fresh ones.
func (p *Pool) Repopulate(n int) {
	if n < 0 {
		n = 0
	}
	particles := make([]Particle, n)
	for i := range particles {
		particles[i] = p.spawn()
	}
	p.particles = particles
}

// Resize adopts new bounds and repopulates at the current count.
func (p *Pool) Resize(b Bounds) {
	p.bounds = b
	p.Repopulate(len(p.particles))
}

func (p *Pool) spawn() Particle {
	vel := Vec2{
		X: (p.rng.Float64()*2 - 1) * SpeedMul,
		Y: (p.rng.Float64()*2 - 1) * SpeedMul,
	}
	return Particle{
		Pos:    Vec2{p.rng.Float64() * p.bounds.W, p.rng.Float64() * p.bounds.H},
		Vel:    vel,
		Base:   vel,
		Radius: MinRadius + p.rng.Float64()*(MaxRadius-MinRadius),
		Color:  coolColor(p.rng),
	}
}

func (p *Pool) Len() int {
	return len(p.particles)
}

func (p *Pool) Bounds() Bounds {
	return p.bounds
}

// Particles returns the live slice in draw order. Callers may mutate the
// elements but must not append to or reslice it.
func (p *Pool) Particles() []Particle {
	return p.particles
}
