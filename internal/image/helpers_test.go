package imagepkg

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"sync"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/youruser/dicebattle/internal/battle"
)

// stubFetcher records calls and returns a fixed image or error.
type stubFetcher struct {
	mu    sync.Mutex
	calls []battle.AvatarSource
	img   image.Image
	err   error
}

func (f *stubFetcher) FetchImage(_ context.Context, src battle.AvatarSource) (image.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, src)
	if f.err != nil {
		return nil, f.err
	}
	return f.img, nil
}

func (f *stubFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// testOptions uses empty temp asset/scratch dirs and no system fonts, so the
// embedded Go Bold font is used.
func testOptions(t *testing.T) Options {
	t.Helper()
	dir := t.TempDir()
	return Options{
		Layout:     DefaultLayout(),
		Theme:      DefaultTheme(),
		AssetsDir:  filepath.Join(dir, "assets"),
		ScratchDir: filepath.Join(dir, "out"),
		FontPath:   filepath.Join(dir, "missing.ttf"),
		FontDirs:   []string{filepath.Join(dir, "fonts")},
	}
}

func newTestComposer(t *testing.T, opts Options, fetcher ImageFetcher) *Composer {
	t.Helper()
	c := NewComposer(opts, fetcher, zap.NewNop())
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func solidImage(w, h int, c color.Color) image.Image {
	return imaging.New(w, h, c)
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func openOutput(t *testing.T, path string) image.Image {
	t.Helper()
	img, err := imaging.Open(path)
	require.NoError(t, err)
	return img
}

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func requireColorNear(t *testing.T, want, got color.NRGBA, delta int) {
	t.Helper()
	diff := func(a, b uint8) int {
		d := int(a) - int(b)
		if d < 0 {
			return -d
		}
		return d
	}
	require.LessOrEqual(t, diff(want.R, got.R), delta, "R want %v got %v", want, got)
	require.LessOrEqual(t, diff(want.G, got.G), delta, "G want %v got %v", want, got)
	require.LessOrEqual(t, diff(want.B, got.B), delta, "B want %v got %v", want, got)
	require.LessOrEqual(t, diff(want.A, got.A), delta, "A want %v got %v", want, got)
}
