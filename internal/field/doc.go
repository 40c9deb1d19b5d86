// Package field implements the drifting particle field: particle kinematics,
// the particle pool, the pointer tracker, the proximity linker and the
// frame scheduler that ties them together.
//
// The package is surface agnostic. Every front end implements [Surface]
// and drives a [Scheduler], either from its own refresh tick via
// [Scheduler.Frame] or from a time channel via [Scheduler.Run]:
//
//	f := field.New(field.Bounds{W: 800, H: 600}, rng)
//	sched := field.NewScheduler(f, logger)
//	sched.Post(field.MotionChanged{Settings: field.DefaultSettings(), Enabled: true})
//	stats := sched.Frame(surface)
//
// # Thread Safety
//
// A [Field] is owned by the goroutine that calls [Scheduler.Frame].
// Other goroutines talk to it only through [Scheduler.Post]; posted
// events are applied at the start of the next frame, so a frame never
// observes half of a resize or a motion change.
package field
