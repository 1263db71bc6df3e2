package entity

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// DefaultColor is given to projects created without a color.
	DefaultColor = "#3B82F6"
	// FallbackColor keys tasks whose project cannot be found.
	FallbackColor = "#6B7280"
)

// Palette is the set of colors offered when creating a project.
var Palette = []string{
	"#3B82F6",
	"#EF4444",
	"#10B981",
	"#F59E0B",
	"#8B5CF6",
	"#EC4899",
	"#F97316",
	"#06B6D4",
}

// ParseColor parses a #RRGGBB or #RGB token.
func ParseColor(hex string) (colorful.Color, error) {
	h := strings.TrimSpace(hex)
	if len(h) == 4 && h[0] == '#' {
		h = "#" + strings.Repeat(h[1:2], 2) + strings.Repeat(h[2:3], 2) + strings.Repeat(h[3:4], 2)
	}
	c, err := colorful.Hex(h)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: color %q", ErrValidation, hex)
	}
	return c, nil
}

// ColorFor resolves a project's color, falling back for unknown projects or
// unparseable tokens.
func ColorFor(projects []Project, projectID string) string {
	for _, p := range projects {
		if p.ID == projectID {
			if _, err := ParseColor(p.Color); err == nil {
				return p.Color
			}
			break
		}
	}
	return FallbackColor
}

// ContrastText returns a black or white hex that reads well on bg.
func ContrastText(bg string) string {
	c, err := ParseColor(bg)
	if err != nil {
		return "#FFFFFF"
	}
	_, _, l := c.Hcl()
	if l > 0.6 {
		return "#000000"
	}
	return "#FFFFFF"
}

// PaletteColor picks a palette entry by index, wrapping around.
func PaletteColor(i int) string {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}
