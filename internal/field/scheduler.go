package field

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event is a change produced outside the frame loop. Events are queued by
// Post and applied, in order, at the start of the next frame.
type Event interface {
	apply(f *Field)
}

type PointerMoved struct {
	X, Y float64
}

func (e PointerMoved) apply(f *Field) { f.Pointer.Move(e.X, e.Y) }

type PointerLeft struct{}

func (PointerLeft) apply(f *Field) { f.Pointer.Leave() }

type Resized struct {
	W, H float64
}

func (e Resized) apply(f *Field) { f.Resize(e.W, e.H) }

type MotionChanged struct {
	Settings Settings
	Enabled  bool
}

func (e MotionChanged) apply(f *Field) { f.Apply(e.Settings, e.Enabled) }

// Scheduler owns a Field and renders it one frame at a time.
type Scheduler struct {
	field *Field
	log   *zap.Logger

	mu      sync.Mutex
	pending []Event

	frames uint64
	last   Stats
}

func NewScheduler(f *Field, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{field: f, log: log}
}

// Post queues an event for the next frame. It never blocks and never drops.
func (s *Scheduler) Post(ev Event) {
	s.mu.Lock()
	s.pending = append(s.pending, ev)
	s.mu.Unlock()
}

func (s *Scheduler) drain() {
	s.mu.Lock()
	events := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, ev := range events {
		switch e := ev.(type) {
		case Resized:
			s.log.Debug("surface resized", zap.Float64("width", e.W), zap.Float64("height", e.H))
		case MotionChanged:
			s.log.Debug("motion changed",
				zap.Bool("enabled", e.Enabled),
				zap.Int("particles", e.Settings.ParticleCount),
				zap.Float64("connection_distance", e.Settings.ConnectionDistance),
				zap.Float64("pointer_radius", e.Settings.PointerRadius))
		}
		ev.apply(s.field)
	}
}

// Frame applies pending events and renders one frame onto surface.
func (s *Scheduler) Frame(surface Surface) Stats {
	s.drain()
	s.last = s.field.Step(surface)
	s.frames++
	return s.last
}

// Run renders one frame per tick until ctx is done or ticks is closed.
func (s *Scheduler) Run(ctx context.Context, surface Surface, ticks <-chan time.Time) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ticks:
			if !ok {
				return nil
			}
			s.Frame(surface)
		}
	}
}

func (s *Scheduler) Frames() uint64 {
	return s.frames
}

func (s *Scheduler) Last() Stats {
	return s.last
}

// Field returns the simulation context. Only the goroutine calling Frame
// may touch it.
func (s *Scheduler) Field() *Field {
	return s.field
}
