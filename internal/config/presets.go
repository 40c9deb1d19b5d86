package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/driftfield/internal/field"
)

var ErrUnknownPreset = errors.New("config: unknown preset")

// Presets are named motion profiles. Each keeps pairs cheap enough for the
// O(n^2) connection scan.
var Presets = map[string]MotionConfig{
	"default": {
		Enabled:  field.DefaultSettings(),
		Disabled: field.ReducedSettings(),
	},
	"dense": {
		Enabled:  field.Settings{ParticleCount: 160, ConnectionDistance: 110, PointerRadius: 150},
		Disabled: field.Settings{ParticleCount: 80},
	},
	"sparse": {
		Enabled:  field.Settings{ParticleCount: 40, ConnectionDistance: 220, PointerRadius: 130},
		Disabled: field.Settings{ParticleCount: 20},
	},
	"calm": {
		Enabled:  field.Settings{ParticleCount: 60, ConnectionDistance: 130, PointerRadius: 0},
		Disabled: field.Settings{ParticleCount: 30},
	},
}

func GetPreset(name string) (MotionConfig, error) {
	p, ok := Presets[name]
	if !ok {
		return MotionConfig{}, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	return p, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
