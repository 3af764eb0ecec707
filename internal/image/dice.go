package imagepkg

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/youruser/dicebattle/internal/util"
)

const (
	diceFaceSize    = 60
	diceBorderWidth = 2
	diceDotRadius   = 4
)

// dotPositions are pip centres on a 60x60 face.
var dotPositions = map[int][]image.Point{
	1: {image.Pt(30, 30)},
	2: {image.Pt(15, 15), image.Pt(45, 45)},
	3: {image.Pt(15, 15), image.Pt(30, 30), image.Pt(45, 45)},
	4: {image.Pt(15, 15), image.Pt(45, 15), image.Pt(15, 45), image.Pt(45, 45)},
	5: {image.Pt(15, 15), image.Pt(45, 15), image.Pt(30, 30), image.Pt(15, 45), image.Pt(45, 45)},
	6: {image.Pt(15, 15), image.Pt(45, 15), image.Pt(15, 30), image.Pt(45, 30), image.Pt(15, 45), image.Pt(45, 45)},
}

// DotPositions returns the pip centres for value, or nil outside 1..6.
func DotPositions(value int) []image.Point {
	return append([]image.Point(nil), dotPositions[value]...)
}

// SynthesizeDiceFace draws a white bordered 60x60 face with black pips.
func SynthesizeDiceFace(value int) image.Image {
	dc := gg.NewContext(diceFaceSize, diceFaceSize)
	dc.SetColor(color.White)
	dc.Clear()

	half := float64(diceBorderWidth) / 2
	dc.SetColor(color.Black)
	dc.SetLineWidth(diceBorderWidth)
	dc.DrawRectangle(half, half, diceFaceSize-diceBorderWidth, diceFaceSize-diceBorderWidth)
	dc.Stroke()

	for _, p := range dotPositions[value] {
		dc.DrawCircle(float64(p.X), float64(p.Y), diceDotRadius)
	}
	dc.Fill()
	return dc.Image()
}

// diceAssetPath is where the bundled face for value lives.
func diceAssetPath(assetsDir string, value int) string {
	return filepath.Join(assetsDir, fmt.Sprintf("%d.jpg", value))
}

// loadAsset opens path and resizes it to w x h.
func loadAsset(path string, w, h int) (image.Image, error) {
	if !util.FileExists(path) {
		return nil, fmt.Errorf("%w: %s", ErrAssetMissing, path)
	}
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return imaging.Resize(img, w, h, imaging.Lanczos), nil
}

func (c *Composer) diceFace(value int) image.Image {
	size := c.layout.DiceSize
	return resolve(c.logger, fmt.Sprintf("dice face %d", value), []provider[image.Image]{
		{name: "asset", get: func() (image.Image, error) {
			return loadAsset(diceAssetPath(c.assetsDir, value), size, size)
		}},
	}, func() image.Image {
		face := SynthesizeDiceFace(value)
		if size != diceFaceSize {
			return imaging.Resize(face, size, size, imaging.Lanczos)
		}
		return face
	})
}
