package imagepkg

import (
	"image"
	"image/color"
	"path/filepath"

	"github.com/fogleman/gg"
)

// BackgroundAsset is the file name of the bundled background.
const BackgroundAsset = "red_background_700x250.png"

// gradientDarkening is how much darker the bottom row is than the top.
const gradientDarkening = 0.3

// GradientBackground fills w x h with base at the top, darkening linearly
// to (1-gradientDarkening) of base at the bottom.
func GradientBackground(w, h int, base color.NRGBA) image.Image {
	dc := gg.NewContext(w, h)
	grad := gg.NewLinearGradient(0, 0, 0, float64(h))
	grad.AddColorStop(0, base)
	grad.AddColorStop(1, darken(base, gradientDarkening))
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, float64(w), float64(h))
	dc.Fill()
	return dc.Image()
}

func darken(c color.NRGBA, by float64) color.NRGBA {
	k := 1 - by
	return color.NRGBA{
		R: uint8(float64(c.R) * k),
		G: uint8(float64(c.G) * k),
		B: uint8(float64(c.B) * k),
		A: c.A,
	}
}

func (c *Composer) background() image.Image {
	w, h := c.layout.Width, c.layout.Height
	return resolve(c.logger, "background", []provider[image.Image]{
		{name: "asset", get: func() (image.Image, error) {
			return loadAsset(filepath.Join(c.assetsDir, BackgroundAsset), w, h)
		}},
	}, func() image.Image { return GradientBackground(w, h, c.theme.Base) })
}
