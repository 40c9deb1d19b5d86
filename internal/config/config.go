package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/san-kum/driftfield/internal/field"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS        = 60
	DefaultWidth      = 1280
	DefaultHeight     = 720
	DefaultTheme      = "midnight"
	DefaultBackground = "#0a0a0f"
	DefaultDataDir    = ".driftfield"

	// EnvPrefix prefixes environment overrides, e.g. DRIFTFIELD_RENDER_FPS.
	EnvPrefix = "DRIFTFIELD"
)

type Config struct {
	DataDir string       `yaml:"data_dir" mapstructure:"data_dir"`
	Motion  MotionConfig `yaml:"motion" mapstructure:"motion"`
	Render  RenderConfig `yaml:"render" mapstructure:"render"`
	System  SystemConfig `yaml:"system" mapstructure:"system"`
	Logger  LoggerConfig `yaml:"logger" mapstructure:"logger"`
}

// MotionConfig holds the two motion presets.
type MotionConfig struct {
	Enabled  field.Settings `yaml:"enabled" mapstructure:"enabled"`
	Disabled field.Settings `yaml:"disabled" mapstructure:"disabled"`
}

type RenderConfig struct {
	FPS        int    `yaml:"fps" mapstructure:"fps"`
	Width      int    `yaml:"width" mapstructure:"width"`
	Height     int    `yaml:"height" mapstructure:"height"`
	Theme      string `yaml:"theme" mapstructure:"theme"`
	Background string `yaml:"background" mapstructure:"background"`
}

// SystemConfig carries host signals that are not user choices.
type SystemConfig struct {
	ReducedMotion bool `yaml:"reduced_motion" mapstructure:"reduced_motion"`
}

type LoggerConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`
	Format     string `yaml:"format" mapstructure:"format"`
	File       string `yaml:"file" mapstructure:"file"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"`
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir: DefaultDataDir,
		Motion: MotionConfig{
			Enabled:  field.DefaultSettings(),
			Disabled: field.ReducedSettings(),
		},
		Render: RenderConfig{
			FPS:        DefaultFPS,
			Width:      DefaultWidth,
			Height:     DefaultHeight,
			Theme:      DefaultTheme,
			Background: DefaultBackground,
		},
		Logger: LoggerConfig{
			Level:      "info",
			Format:     "console",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
}

// Validate rejects values the renderer cannot work with.
func (c *Config) Validate() error {
	var errs []error
	if c.Render.FPS <= 0 {
		errs = append(errs, fmt.Errorf("render.fps must be positive, got %d", c.Render.FPS))
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		errs = append(errs, fmt.Errorf("render size must be positive, got %dx%d", c.Render.Width, c.Render.Height))
	}
	for name, s := range map[string]field.Settings{"enabled": c.Motion.Enabled, "disabled": c.Motion.Disabled} {
		if s.ParticleCount < 0 || s.ConnectionDistance < 0 || s.PointerRadius < 0 {
			errs = append(errs, fmt.Errorf("motion.%s: negative value in %+v", name, s))
		}
	}
	return errors.Join(errs...)
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, DefaultConfig())
	if path != "" {
		v.SetConfigFile(path)
	}
	return v
}

// setDefaults registers every key so environment overrides reach Unmarshal.
func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("data_dir", c.DataDir)
	for name, s := range map[string]field.Settings{"enabled": c.Motion.Enabled, "disabled": c.Motion.Disabled} {
		v.SetDefault("motion."+name+".particle_count", s.ParticleCount)
		v.SetDefault("motion."+name+".connection_distance", s.ConnectionDistance)
		v.SetDefault("motion."+name+".pointer_radius", s.PointerRadius)
	}
	v.SetDefault("render.fps", c.Render.FPS)
	v.SetDefault("render.width", c.Render.Width)
	v.SetDefault("render.height", c.Render.Height)
	v.SetDefault("render.theme", c.Render.Theme)
	v.SetDefault("render.background", c.Render.Background)
	v.SetDefault("system.reduced_motion", c.System.ReducedMotion)
	v.SetDefault("logger.level", c.Logger.Level)
	v.SetDefault("logger.format", c.Logger.Format)
	v.SetDefault("logger.file", c.Logger.File)
	v.SetDefault("logger.max_size", c.Logger.MaxSize)
	v.SetDefault("logger.max_backups", c.Logger.MaxBackups)
	v.SetDefault("logger.max_age", c.Logger.MaxAge)
	v.SetDefault("logger.compress", c.Logger.Compress)
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the config file at path, if any, and applies DRIFTFIELD_*
// environment overrides on top of the defaults.
func Load(path string) (*Config, error) {
	v := newViper(path)
	if path != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	cfg, err := decode(v)
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Watch calls fn with the reloaded config every time the file at path
// changes. Invalid edits are reported through onErr and otherwise ignored.
func Watch(path string, fn func(*Config), onErr func(error)) error {
	if path == "" {
		return nil
	}
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := decode(v)
		if err != nil {
			if onErr != nil {
				onErr(fmt.Errorf("reload %s: %w", e.Name, err))
			}
			return
		}
		fn(cfg)
	})
	v.WatchConfig()
	return nil
}
