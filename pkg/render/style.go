package render

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Style is the rendering configuration passed by value into Render.
// Every field has a documented fallback, so a partially-populated Style
// (for example one loaded from a sparse YAML file) never produces an
// invalid render.
type Style struct {
	// FontFamily overrides the body font; empty means the presentation
	// layer's default.
	FontFamily string `yaml:"font_family"`

	// MonoFontFamily overrides the code font; empty means default.
	MonoFontFamily string `yaml:"mono_font_family"`

	// HeadingScales are font scale factors for heading levels 1-6.
	// Zero entries fall back to the built-in scale for that level.
	HeadingScales [6]float64 `yaml:"heading_scales"`

	// AccentColor is the theme accent; empty falls back to
	// DefaultAccentColor.
	AccentColor string `yaml:"accent_color"`

	// LinkColor colors link runs; empty falls back to the resolved
	// accent color.
	LinkColor string `yaml:"link_color"`

	// CodeColor colors code runs; empty falls back to the resolved
	// accent color.
	CodeColor string `yaml:"code_color"`

	// QuoteColor colors blockquote runs; empty falls back to
	// DefaultQuoteColor.
	QuoteColor string `yaml:"quote_color"`

	// BulletMarkers are list marker glyphs by nesting depth; depths past
	// the end cycle. Empty falls back to defaultBullets.
	BulletMarkers []string `yaml:"bullet_markers"`
}

// Documented fallback values.
const (
	DefaultAccentColor = "#0a84ff"
	DefaultQuoteColor  = "#8e8e93"
)

// defaultHeadingScales are the built-in per-level factors.
//
//nolint:gochecknoglobals // Read-only fallback table
var defaultHeadingScales = [6]float64{2.0, 1.6, 1.3, 1.15, 1.0, 0.9}

//nolint:gochecknoglobals // Read-only fallback table
var defaultBullets = []string{"•", "◦", "▪"}

// DefaultStyle returns a fully-populated style with every fallback
// applied.
func DefaultStyle() Style {
	return Style{
		HeadingScales: defaultHeadingScales,
		AccentColor:   DefaultAccentColor,
		QuoteColor:    DefaultQuoteColor,
		BulletMarkers: defaultBullets,
	}
}

// HeadingScale resolves the scale factor for a 1-based heading level.
// Out-of-range levels and unset entries use the built-in scale.
func (s Style) HeadingScale(level int) float64 {
	if level < 1 || level > 6 {
		level = 6
	}
	if s.HeadingScales[level-1] > 0 {
		return s.HeadingScales[level-1]
	}
	return defaultHeadingScales[level-1]
}

// ResolvedAccentColor returns the accent color or its fallback.
func (s Style) ResolvedAccentColor() string {
	if s.AccentColor != "" {
		return s.AccentColor
	}
	return DefaultAccentColor
}

// ResolvedLinkColor returns the link color, falling back to the accent.
func (s Style) ResolvedLinkColor() string {
	if s.LinkColor != "" {
		return s.LinkColor
	}
	return s.ResolvedAccentColor()
}

// ResolvedCodeColor returns the code color, falling back to the accent.
func (s Style) ResolvedCodeColor() string {
	if s.CodeColor != "" {
		return s.CodeColor
	}
	return s.ResolvedAccentColor()
}

// ResolvedQuoteColor returns the quote color or its fallback.
func (s Style) ResolvedQuoteColor() string {
	if s.QuoteColor != "" {
		return s.QuoteColor
	}
	return DefaultQuoteColor
}

// Bullet returns the list marker glyph for a 0-based nesting depth.
func (s Style) Bullet(depth int) string {
	markers := s.BulletMarkers
	if len(markers) == 0 {
		markers = defaultBullets
	}
	if depth < 0 {
		depth = 0
	}
	return markers[depth%len(markers)]
}

// LoadStyle reads a YAML style file. Absent fields keep their zero value
// and resolve through the documented fallbacks at render time.
func LoadStyle(r io.Reader) (Style, error) {
	var s Style
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&s); err != nil {
		if err == io.EOF {
			return Style{}, nil
		}
		return Style{}, fmt.Errorf("decode style: %w", err)
	}
	return s, nil
}
