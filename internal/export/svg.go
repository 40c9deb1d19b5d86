// Package export writes rendered frames to files.
package export

import (
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// SVG is a drawing surface that records one frame as SVG elements.
// Clear discards everything drawn so far, so after several frames only
// the last one remains.
type SVG struct {
	width, height float64
	background    string
	body          strings.Builder
}

func NewSVG(width, height float64, background string) *SVG {
	return &SVG{width: width, height: height, background: background}
}

func (s *SVG) Size() (float64, float64) {
	return s.width, s.height
}

func (s *SVG) Clear() {
	s.body.Reset()
}

func (s *SVG) FillCircle(x, y, r float64, c color.NRGBA) {
	hex, opacity := paint(c)
	s.body.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.2f" fill="%s"`, x, y, r, hex))
	if opacity < 1 {
		s.body.WriteString(fmt.Sprintf(` fill-opacity="%.3f"`, opacity))
	}
	s.body.WriteString("/>\n")
}

func (s *SVG) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	hex, opacity := paint(c)
	s.body.WriteString(fmt.Sprintf(
		`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.2f" stroke-opacity="%.3f"/>
`, x0, y0, x1, y1, hex, width, opacity))
}

func paint(c color.NRGBA) (string, float64) {
	hex := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
	return hex, float64(c.A) / 255
}

// String returns the complete SVG document
func (s *SVG) String() string {
	var sb strings.Builder

	// SVG header
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.width, s.height, s.width, s.height, s.background))

	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

// WriteFile saves the document to path
func (s *SVG) WriteFile(path string) error {
	if err := os.WriteFile(path, []byte(s.String()), 0644); err != nil {
		return fmt.Errorf("write svg %s: %w", path, err)
	}
	return nil
}
