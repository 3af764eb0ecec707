package imagepkg

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/youruser/dicebattle/internal/config"
)

// DefaultTitle is the bilingual banner. Faces without Arabic glyphs draw the Latin part only.
const DefaultTitle = "DICE BATTLE  معركة النرد"

// Theme holds the text and colours of a battle image.
type Theme struct {
	Title string

	// Base fills the background and is the colour the canvas is flattened onto.
	Base     color.NRGBA
	Text     color.NRGBA
	Shadow   color.NRGBA
	Accent   color.NRGBA
	VS       color.NRGBA
	VSShadow color.NRGBA
	Glow     color.NRGBA

	// GlowAlphas gives the alpha of each winner ring, innermost first.
	GlowAlphas []uint8
}

func DefaultTheme() Theme {
	return Theme{
		Title:      DefaultTitle,
		Base:       color.NRGBA{R: 139, G: 69, B: 19, A: 255},
		Text:       color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Shadow:     color.NRGBA{A: 180},
		Accent:     color.NRGBA{R: 255, G: 215, A: 255},
		VS:         color.NRGBA{R: 255, A: 255},
		VSShadow:   color.NRGBA{A: 200},
		Glow:       color.NRGBA{R: 255, G: 215, A: 255},
		GlowAlphas: []uint8{100, 70, 40},
	}
}

// NewTheme applies the non-empty overrides in cfg to DefaultTheme.
func NewTheme(cfg config.ThemeConfig) (Theme, error) {
	theme := DefaultTheme()
	if cfg.Title != "" {
		theme.Title = cfg.Title
	}

	overrides := []struct {
		name  string
		value string
		dst   *color.NRGBA
	}{
		{"base_color", cfg.BaseColor, &theme.Base},
		{"text_color", cfg.TextColor, &theme.Text},
		{"accent_color", cfg.AccentColor, &theme.Accent},
		{"vs_color", cfg.VSColor, &theme.VS},
		{"glow_color", cfg.GlowColor, &theme.Glow},
	}
	for _, o := range overrides {
		if o.value == "" {
			continue
		}
		c, err := ParseHexColor(o.value)
		if err != nil {
			return Theme{}, fmt.Errorf("theme %s: %w", o.name, err)
		}
		*o.dst = c
	}
	// the flattened output has no alpha
	theme.Base.A = 255
	return theme, nil
}

// ParseHexColor parses "#rgb", "#rrggbb" or "#rrggbbaa" (the leading '#' is optional).
func ParseHexColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
