package imagepkg

import "errors"

var (
	ErrAvatarFetch  = errors.New("avatar fetch failed")
	ErrAvatarDecode = errors.New("avatar decode failed")
	ErrAssetMissing = errors.New("asset missing")
	ErrFontLoad     = errors.New("font load failed")
	ErrComposition  = errors.New("composition failed")
)
