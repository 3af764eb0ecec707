package imagepkg

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/youruser/dicebattle/internal/util"
)

// systemFontNames are tried in every font directory when the bundled font is unavailable.
var systemFontNames = []string{
	"DejaVuSans-Bold.ttf",
	"Arial Bold.ttf",
	"arialbd.ttf",
	"arial.ttf",
	"Arial.ttf",
}

// FontResolver hands out faces by pixel size. It tries the bundled font file,
// then well-known system fonts, then the embedded Go Bold font, and finally
// basicfont.Face7x13, so Face always returns something usable.
type FontResolver struct {
	path   string
	dirs   []string
	logger *zap.Logger

	parsed map[string]*opentype.Font
	faces  map[float64]font.Face
}

func NewFontResolver(path string, dirs []string, logger *zap.Logger) *FontResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FontResolver{
		path:   path,
		dirs:   dirs,
		logger: logger,
		parsed: make(map[string]*opentype.Font),
		faces:  make(map[float64]font.Face),
	}
}

// Face returns a face for size pixels.
func (r *FontResolver) Face(size float64) font.Face {
	if f, ok := r.faces[size]; ok {
		return f
	}

	f := resolve(r.logger, "font", []provider[font.Face]{
		{name: "bundled", get: func() (font.Face, error) { return r.fileFace(r.path, size) }},
		{name: "system", get: func() (font.Face, error) { return r.systemFace(size) }},
		{name: "gobold", get: func() (font.Face, error) { return r.goBoldFace(size) }},
	}, func() font.Face { return basicfont.Face7x13 })

	r.faces[size] = f
	return f
}

// Close releases every face handed out.
func (r *FontResolver) Close() error {
	for size, f := range r.faces {
		if f != basicfont.Face7x13 {
			_ = f.Close()
		}
		delete(r.faces, size)
	}
	return nil
}

func (r *FontResolver) fileFace(path string, size float64) (font.Face, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: no font path configured", ErrFontLoad)
	}
	f, ok := r.parsed[path]
	if !ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFontLoad, err)
		}
		f, err = opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%w: parse %s: %v", ErrFontLoad, path, err)
		}
		r.parsed[path] = f
	}
	return newFace(f, size)
}

func (r *FontResolver) systemFace(size float64) (font.Face, error) {
	for _, dir := range r.dirs {
		for _, name := range systemFontNames {
			p := filepath.Join(dir, name)
			if !util.FileExists(p) {
				continue
			}
			face, err := r.fileFace(p, size)
			if err == nil {
				return face, nil
			}
			r.logger.Debug("skipping system font", zap.String("path", p), zap.Error(err))
		}
	}
	return nil, fmt.Errorf("%w: no system font found in %v", ErrFontLoad, r.dirs)
}

func (r *FontResolver) goBoldFace(size float64) (font.Face, error) {
	const key = "embedded:gobold"
	f, ok := r.parsed[key]
	if !ok {
		var err error
		f, err = opentype.Parse(gobold.TTF)
		if err != nil {
			return nil, fmt.Errorf("%w: gobold: %v", ErrFontLoad, err)
		}
		r.parsed[key] = f
	}
	return newFace(f, size)
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFontLoad, err)
	}
	return &coveredFace{Face: face, src: f}, nil
}

// coveredFace is an opentype face that can tell which runes its font has.
type coveredFace struct {
	font.Face
	src *opentype.Font
	buf sfnt.Buffer
}

func (f *coveredFace) hasGlyph(r rune) bool {
	idx, err := f.src.GlyphIndex(&f.buf, r)
	return err == nil && idx != 0
}

// hasGlyph reports whether face can draw r with a real glyph.
func hasGlyph(face font.Face, r rune) bool {
	switch f := face.(type) {
	case *coveredFace:
		return f.hasGlyph(r)
	case *basicfont.Face:
		for _, rng := range f.Ranges {
			if r >= rng.Low && r < rng.High {
				return true
			}
		}
		return false
	default:
		_, ok := face.GlyphAdvance(r)
		return ok
	}
}
