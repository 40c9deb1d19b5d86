package export

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/onsi/gomega"
)

func TestSVGDocument(t *testing.T) {
	g := NewWithT(t)
	s := NewSVG(320, 200, "#0a0a0f")

	w, h := s.Size()
	g.Expect(w).To(Equal(320.0))
	g.Expect(h).To(Equal(200.0))

	s.FillCircle(10, 20, 2.5, color.NRGBA{R: 255, A: 255})
	s.StrokeLine(0, 0, 10, 10, 0.7, color.NRGBA{B: 255, A: 51})

	out := s.String()
	g.Expect(out).To(HavePrefix(`<?xml version="1.0"`))
	g.Expect(out).To(ContainSubstring(`viewBox="0 0 320 200"`))
	g.Expect(out).To(ContainSubstring(`fill="#0a0a0f"`))
	g.Expect(out).To(ContainSubstring(`<circle cx="10.0" cy="20.0" r="2.50" fill="#ff0000"/>`))
	g.Expect(out).To(ContainSubstring(`stroke="#0000ff" stroke-width="0.70" stroke-opacity="0.200"`))
	g.Expect(out).To(HaveSuffix("</svg>\n"))
}

func TestSVGClear(t *testing.T) {
	g := NewWithT(t)
	s := NewSVG(10, 10, "#000000")
	s.FillCircle(1, 1, 1, color.NRGBA{A: 255})
	s.Clear()
	s.FillCircle(2, 2, 1, color.NRGBA{A: 128})

	out := s.String()
	g.Expect(strings.Count(out, "<circle")).To(Equal(1))
	g.Expect(out).To(ContainSubstring(`fill-opacity="0.502"`))
}

func TestSVGWriteFile(t *testing.T) {
	g := NewWithT(t)
	path := filepath.Join(t.TempDir(), "frame.svg")
	s := NewSVG(10, 10, "#000000")
	g.Expect(s.WriteFile(path)).To(Succeed())

	data, err := os.ReadFile(path)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(string(data)).To(Equal(s.String()))

	g.Expect(s.WriteFile(filepath.Join(t.TempDir(), "missing", "x.svg"))).NotTo(Succeed())
}
