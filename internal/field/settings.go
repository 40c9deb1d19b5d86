package field

// Settings is the motion-dependent configuration of a field.
type Settings struct {
	ParticleCount      int     `yaml:"particle_count" mapstructure:"particle_count"`
	ConnectionDistance float64 `yaml:"connection_distance" mapstructure:"connection_distance"`
	PointerRadius      float64 `yaml:"pointer_radius" mapstructure:"pointer_radius"`
}

const (
	DefaultParticleCount      = 85
	DefaultConnectionDistance = 150.0
	DefaultPointerRadius      = 130.0

	ReducedParticleCount = 45
)

// DefaultSettings is the preset used while motion is enabled.
func DefaultSettings() Settings {
	return Settings{
		ParticleCount:      DefaultParticleCount,
		ConnectionDistance: DefaultConnectionDistance,
		PointerRadius:      DefaultPointerRadius,
	}
}

// ReducedSettings is the preset used while motion is disabled: fewer
// particles, no connections, no pointer interaction.
func ReducedSettings() Settings {
	return Settings{ParticleCount: ReducedParticleCount}
}
