package field

import (
	"math/rand"
	"testing"

	. "github.com/onsi/gomega"
)

var testBounds = Bounds{W: 800, H: 600}

func TestParticleUpdate_Disabled(t *testing.T) {
	g := NewWithT(t)

	p := Particle{Pos: Vec2{100, 100}, Vel: Vec2{1, -1}, Base: Vec2{0.5, 0.5}, Radius: 2}
	before := p

	ptr := NewPointer(130)
	ptr.Move(100, 100)
	for i := 0; i < 10; i++ {
		p.Update(ptr, testBounds, false)
	}

	g.Expect(p).To(Equal(before))
}

func TestParticleUpdate_ZeroDistance(t *testing.T) {
	g := NewWithT(t)

	p := Particle{Pos: Vec2{100, 100}, Vel: Vec2{3, 3}, Base: Vec2{0.25, -0.5}}
	ptr := NewPointer(130)
	ptr.Move(100, 100)

	p.Update(ptr, testBounds, true)

	g.Expect(p.Vel.IsValid()).To(BeTrue())
	g.Expect(p.Pos.IsValid()).To(BeTrue())
	// the direction is 0/0.001, so only the drift remains
	g.Expect(p.Vel).To(Equal(Vec2{0.25, -0.5}))
	g.Expect(p.Pos).To(Equal(Vec2{100.25, 99.5}))
}

func TestParticleUpdate_InsideRadius(t *testing.T) {
	g := NewWithT(t)

	p := Particle{Pos: Vec2{110, 100}, Vel: Vec2{-1, 2}, Base: Vec2{0.5, 0}}
	ptr := NewPointer(130)
	ptr.Move(100, 100)

	p.Update(ptr, testBounds, true)

	force := (130.0 - 10.0) / 130.0
	g.Expect(p.Vel.X).To(BeNumerically("~", force*PointerForce+0.5, 1e-9))
	g.Expect(p.Vel.Y).To(BeNumerically("~", 0, 1e-9))
	g.Expect(p.Base).To(Equal(Vec2{0.5, 0}))
}

func TestParticleUpdate_Relaxation(t *testing.T) {
	tests := []struct {
		name    string
		pointer func() Pointer
		wantVX  float64
	}{
		{
			name: "pointer outside radius",
			pointer: func() Pointer {
				ptr := NewPointer(130)
				ptr.Move(700, 500)
				return ptr
			},
			wantVX: 2 + (0-2)*NearRelax,
		},
		{
			name:    "pointer unset",
			pointer: func() Pointer { return NewPointer(130) },
			wantVX:  2 + (0-2)*AmbientRelax,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)
			p := Particle{Pos: Vec2{100, 100}, Vel: Vec2{2, 0}}
			p.Update(tt.pointer(), testBounds, true)
			g.Expect(p.Vel.X).To(BeNumerically("~", tt.wantVX, 1e-12))
			g.Expect(p.Pos.X).To(BeNumerically("~", 100+tt.wantVX, 1e-12))
		})
	}
}

func TestParticleUpdate_ReflectsAtEdge(t *testing.T) {
	g := NewWithT(t)

	p := Particle{Pos: Vec2{testBounds.W, 300}, Vel: Vec2{2, 0}, Base: Vec2{2, 0}}
	var ptr Pointer

	p.Update(ptr, testBounds, true)
	g.Expect(p.Vel.X).To(Equal(-2.0))
	g.Expect(p.Base.X).To(Equal(-2.0))
	g.Expect(p.Pos.X).To(Equal(testBounds.W))

	prev := p.Pos.X
	for i := 0; i < 5; i++ {
		p.Update(ptr, testBounds, true)
		g.Expect(p.Pos.X).To(BeNumerically("<", prev))
		prev = p.Pos.X
	}
}

func TestParticleUpdate_ReflectsAtOrigin(t *testing.T) {
	g := NewWithT(t)

	p := Particle{Pos: Vec2{0.5, 0.5}, Vel: Vec2{-1, -1}, Base: Vec2{-1, -1}}
	p.Update(Pointer{}, testBounds, true)

	g.Expect(p.Pos).To(Equal(Vec2{0, 0}))
	g.Expect(p.Vel).To(Equal(Vec2{1, 1}))
	g.Expect(p.Base).To(Equal(Vec2{1, 1}))
}

func TestParticleUpdate_StaysInBounds(t *testing.T) {
	g := NewWithT(t)
	rng := rand.New(rand.NewSource(7))

	pool := NewPool(testBounds, rng)
	pool.Repopulate(300)
	ptr := NewPointer(DefaultPointerRadius)

	for frame := 0; frame < 400; frame++ {
		switch {
		case frame%50 == 49:
			ptr.Leave()
		case frame%3 == 0:
			ptr.Move(rng.Float64()*testBounds.W, rng.Float64()*testBounds.H)
		}
		ps := pool.Particles()
		for i := range ps {
			ps[i].Update(ptr, testBounds, true)
			g.Expect(testBounds.Contains(ps[i].Pos)).To(BeTrue(),
				"frame %d particle %d escaped to %+v", frame, i, ps[i].Pos)
		}
	}
}

func TestParticleDraw(t *testing.T) {
	g := NewWithT(t)

	p := Particle{Pos: Vec2{12, 34}, Radius: 3, Color: coolColor(rand.New(rand.NewSource(1)))}
	rec := newRecorder(100, 100)
	p.Draw(rec)

	g.Expect(rec.ops).To(HaveLen(1))
	g.Expect(rec.ops[0]).To(Equal(op{kind: "circle", x: 12, y: 34, r: 3, color: p.Color}))
	g.Expect(rec.ops[0].color.A).To(Equal(uint8(0xff)))
}
