package config

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/san-kum/driftfield/internal/field"
)

func TestDefaultConfig(t *testing.T) {
	g := NewWithT(t)
	cfg := DefaultConfig()

	g.Expect(cfg.Motion.Enabled).To(Equal(field.Settings{ParticleCount: 85, ConnectionDistance: 150, PointerRadius: 130}))
	g.Expect(cfg.Motion.Disabled).To(Equal(field.Settings{ParticleCount: 45}))
	g.Expect(cfg.Render.FPS).To(BeNumerically(">", 0))
	g.Expect(cfg.Validate()).To(Succeed())
}

func TestValidate(t *testing.T) {
	g := NewWithT(t)

	cfg := DefaultConfig()
	cfg.Render.FPS = 0
	cfg.Motion.Enabled.ConnectionDistance = -1

	err := cfg.Validate()
	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring("render.fps"))
	g.Expect(err.Error()).To(ContainSubstring("motion.enabled"))
}

func TestGetPreset(t *testing.T) {
	g := NewWithT(t)

	p, err := GetPreset("dense")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(p.Enabled.ParticleCount).To(Equal(160))

	_, err = GetPreset("nonexistent")
	g.Expect(err).To(MatchError(ErrUnknownPreset))
}

func TestListPresets(t *testing.T) {
	g := NewWithT(t)
	g.Expect(ListPresets()).To(Equal([]string{"calm", "default", "dense", "sparse"}))
}

func TestLoad_NoFile(t *testing.T) {
	g := NewWithT(t)
	cfg, err := Load("")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cfg).To(Equal(DefaultConfig()))
}

func TestLoad_File(t *testing.T) {
	g := NewWithT(t)
	path := filepath.Join(t.TempDir(), "driftfield.yaml")
	g.Expect(os.WriteFile(path, []byte(`
motion:
  enabled:
    particle_count: 120
    connection_distance: 90.5
render:
  fps: 30
system:
  reduced_motion: true
`), 0644)).To(Succeed())

	cfg, err := Load(path)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cfg.Motion.Enabled.ParticleCount).To(Equal(120))
	g.Expect(cfg.Motion.Enabled.ConnectionDistance).To(Equal(90.5))
	g.Expect(cfg.Motion.Enabled.PointerRadius).To(Equal(field.DefaultPointerRadius))
	g.Expect(cfg.Render.FPS).To(Equal(30))
	g.Expect(cfg.Render.Width).To(Equal(DefaultWidth))
	g.Expect(cfg.System.ReducedMotion).To(BeTrue())
}

func TestLoad_EnvOverride(t *testing.T) {
	g := NewWithT(t)
	t.Setenv("DRIFTFIELD_RENDER_FPS", "24")
	t.Setenv("DRIFTFIELD_SYSTEM_REDUCED_MOTION", "true")

	cfg, err := Load("")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cfg.Render.FPS).To(Equal(24))
	g.Expect(cfg.System.ReducedMotion).To(BeTrue())
}

func TestLoad_Missing(t *testing.T) {
	g := NewWithT(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	g.Expect(err).To(HaveOccurred())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	g := NewWithT(t)
	path := filepath.Join(t.TempDir(), "driftfield.yaml")

	cfg := DefaultConfig()
	cfg.Render.Theme = "ocean"
	cfg.Motion.Enabled.PointerRadius = 42
	g.Expect(Save(path, cfg)).To(Succeed())

	loaded, err := Load(path)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(loaded).To(Equal(cfg))
}
