package imagepkg

import (
	"image"
	"image/color"
	"strings"
	"unicode"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// textLayer is one copy of a string, drawn at an offset from the text origin.
type textLayer struct {
	offset image.Point
	color  color.Color
}

// shadowed is the usual dark copy at (d,d) under a fill copy.
func shadowed(d int, shadow, fill color.Color) []textLayer {
	return []textLayer{
		{offset: image.Pt(d, d), color: shadow},
		{offset: image.Point{}, color: fill},
	}
}

// drawCenteredText draws s with its horizontal centre at cx and the top of
// its line at top, once per layer in order.
func drawCenteredText(dc *gg.Context, face font.Face, s string, cx, top int, layers []textLayer) {
	s = printable(face, visualOrder(s))
	if s == "" {
		return
	}
	dc.SetFontFace(face)
	w, _ := dc.MeasureString(s)
	x := float64(cx) - w/2
	baseline := float64(top + face.Metrics().Ascent.Ceil())
	for _, l := range layers {
		dc.SetColor(l.color)
		dc.DrawString(s, x+float64(l.offset.X), baseline+float64(l.offset.Y))
	}
}

// printable drops runes face has no glyph for and tidies the spaces left behind.
func printable(face font.Face, s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == ' ' {
			b.WriteRune(r)
			continue
		}
		if unicode.IsPrint(r) && hasGlyph(face, r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func isRTL(r rune) bool {
	return unicode.In(r, unicode.Arabic, unicode.Hebrew, unicode.Syriac, unicode.Thaana)
}

// visualOrder reverses right-to-left runs so they read correctly when drawn
// left to right. Spaces between two RTL letters stay inside the run.
func visualOrder(s string) string {
	rs := []rune(s)
	out := make([]rune, 0, len(rs))
	for i := 0; i < len(rs); {
		if !isRTL(rs[i]) {
			out = append(out, rs[i])
			i++
			continue
		}
		j := i
		for j < len(rs) {
			if isRTL(rs[j]) {
				j++
				continue
			}
			if unicode.IsSpace(rs[j]) && nextIsRTL(rs, j) {
				j++
				continue
			}
			break
		}
		for k := j - 1; k >= i; k-- {
			out = append(out, rs[k])
		}
		i = j
	}
	return string(out)
}

func nextIsRTL(rs []rune, i int) bool {
	for ; i < len(rs); i++ {
		if !unicode.IsSpace(rs[i]) {
			return isRTL(rs[i])
		}
	}
	return false
}
