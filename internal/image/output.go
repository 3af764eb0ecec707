package imagepkg

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/youruser/dicebattle/internal/util"
)

const saveAttempts = 5

// OutputName returns dice_result_<8 digits>.png for id in [10000000, 99999999].
func OutputName(id int) string {
	return fmt.Sprintf("dice_result_%08d.png", id)
}

func randomID() int {
	return 10_000_000 + rand.Intn(90_000_000)
}

// Flatten composites img over an opaque background of the theme base colour.
func Flatten(img image.Image, theme Theme) *image.NRGBA {
	b := img.Bounds()
	base := theme.Base
	base.A = 255
	bg := imaging.New(b.Dx(), b.Dy(), base)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}

// save flattens img and writes it under the scratch directory with a fresh random name.
func (c *Composer) save(img image.Image) (string, error) {
	if err := util.EnsureDir(c.scratchDir); err != nil {
		return "", fmt.Errorf("create scratch dir: %w", err)
	}
	flat := Flatten(img, c.theme)

	for i := 0; i < saveAttempts; i++ {
		path := filepath.Join(c.scratchDir, OutputName(randomID()))
		err := writePNG(path, flat)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		return path, nil
	}
	return "", fmt.Errorf("no free output name in %s after %d attempts", c.scratchDir, saveAttempts)
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cErr := f.Close(); cErr != nil && err == nil {
			err = cErr
		}
	}()
	if err := imaging.Encode(f, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
