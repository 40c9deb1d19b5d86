// Package motion decides whether the particle field animates, and with
// which settings, from the user's stored choice and the system's
// reduced-motion signal.
package motion

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/san-kum/driftfield/internal/field"
	"go.uber.org/zap"
)

// PreferenceKey is the stored preference holding "on" or "off".
const PreferenceKey = "motion"

const (
	valueOn  = "on"
	valueOff = "off"
)

var ErrInvalidPreference = errors.New("motion: preference must be \"on\" or \"off\"")

// Source says who asked for a motion change. Only user changes persist.
type Source int

const (
	User Source = iota
	System
)

func (s Source) String() string {
	switch s {
	case User:
		return "user"
	case System:
		return "system"
	default:
		return fmt.Sprintf("source(%d)", int(s))
	}
}

// PreferenceStore persists string preferences.
type PreferenceStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// Applier receives the effective settings after every change.
type Applier func(s field.Settings, enabled bool)

// Policy selects the enabled or disabled preset and keeps the stored
// preference.
type Policy struct {
	store      PreferenceStore
	apply      Applier
	indicators []func(enabled bool)
	on, off    field.Settings
	log        *zap.Logger

	mu      sync.Mutex
	enabled bool
	source  Source
}

type Option func(*Policy)

// WithPresets overrides the enabled and disabled settings.
func WithPresets(on, off field.Settings) Option {
	return func(p *Policy) {
		p.on, p.off = on, off
	}
}

// WithIndicator registers a callback that mirrors the on/off state, e.g. a
// toggle's visual state. Indicators run with the policy locked and must
// not call back into it.
func WithIndicator(fn func(enabled bool)) Option {
	return func(p *Policy) {
		p.indicators = append(p.indicators, fn)
	}
}

// Indicator mirrors the applied on/off state for a front end to display.
// Register its Set with WithIndicator; On is safe from any goroutine.
type Indicator struct {
	on atomic.Bool
}

func (i *Indicator) Set(enabled bool) {
	i.on.Store(enabled)
}

func (i *Indicator) On() bool {
	return i.on.Load()
}

func WithLogger(log *zap.Logger) Option {
	return func(p *Policy) {
		p.log = log
	}
}

func New(store PreferenceStore, apply Applier, opts ...Option) *Policy {
	p := &Policy{
		store:   store,
		apply:   apply,
		on:      field.DefaultSettings(),
		off:     field.ReducedSettings(),
		log:     zap.NewNop(),
		enabled: true,
		source:  System,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParsePreference maps a stored value to an enabled flag.
func ParsePreference(v string) (bool, error) {
	switch v {
	case valueOn:
		return true, nil
	case valueOff:
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidPreference, v)
	}
}

func FormatPreference(enabled bool) string {
	if enabled {
		return valueOn
	}
	return valueOff
}

// stored returns the persisted choice, if there is a usable one.
func (p *Policy) stored() (enabled, ok bool) {
	if p.store == nil {
		return false, false
	}
	v, found, err := p.store.Get(PreferenceKey)
	if err != nil {
		p.log.Warn("reading motion preference", zap.Error(err))
		return false, false
	}
	if !found {
		return false, false
	}
	enabled, err = ParsePreference(v)
	if err != nil {
		p.log.Warn("ignoring stored motion preference", zap.Error(err))
		return false, false
	}
	return enabled, true
}

// Resolve picks the starting state: a stored preference wins, then the
// system reduced-motion signal, then enabled. The result is always
// system-sourced so resolving never writes the preference back.
func (p *Policy) Resolve(systemReduced bool) (enabled bool, src Source) {
	if on, ok := p.stored(); ok {
		return on, System
	}
	if systemReduced {
		return false, System
	}
	return true, System
}

// Init resolves the starting state and applies it.
func (p *Policy) Init(systemReduced bool) bool {
	enabled, src := p.Resolve(systemReduced)
	p.Apply(enabled, src)
	return enabled
}

// Apply selects the preset for enabled, hands it to the applier, updates
// the indicators and, for user changes only, stores the choice.
func (p *Policy) Apply(enabled bool, src Source) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.applyLocked(enabled, src)
}

func (p *Policy) applyLocked(enabled bool, src Source) {
	p.enabled = enabled
	p.source = src

	settings := p.off
	if enabled {
		settings = p.on
	}
	if p.apply != nil {
		p.apply(settings, enabled)
	}
	for _, fn := range p.indicators {
		fn(enabled)
	}

	p.log.Info("motion applied", zap.Bool("enabled", enabled), zap.Stringer("source", src))

	if src != User || p.store == nil {
		return
	}
	if err := p.store.Set(PreferenceKey, FormatPreference(enabled)); err != nil {
		p.log.Error("storing motion preference", zap.Error(err))
	}
}

// SetEnabled is the toggle boundary for external controls.
func (p *Policy) SetEnabled(enabled bool, src Source) {
	p.Apply(enabled, src)
}

// Toggle flips the current state as a user change and returns the new state.
func (p *Policy) Toggle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.applyLocked(!p.enabled, User)
	return p.enabled
}

// SystemChanged follows a live change of the system reduced-motion signal,
// unless the user has stored a choice. It reports whether it applied.
func (p *Policy) SystemChanged(reduced bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.stored(); ok {
		p.log.Debug("system motion signal ignored, user preference stored", zap.Bool("reduced", reduced))
		return false
	}
	p.applyLocked(!reduced, System)
	return true
}

// Forget deletes the stored preference so the system signal governs again.
func (p *Policy) Forget() error {
	if p.store == nil {
		return nil
	}
	if err := p.store.Delete(PreferenceKey); err != nil {
		return fmt.Errorf("forget motion preference: %w", err)
	}
	return nil
}

func (p *Policy) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

func (p *Policy) Source() Source {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.source
}

// Settings returns the preset currently in effect.
func (p *Policy) Settings() field.Settings {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.enabled {
		return p.on
	}
	return p.off
}
