package imagepkg

import (
	"context"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"go.uber.org/zap"

	"github.com/youruser/dicebattle/internal/battle"
)

var (
	defaultAvatarOuter = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	defaultAvatarInner = color.NRGBA{R: 150, G: 150, B: 150, A: 255}
)

// defaultAvatarInset is the width of the dark ring around the default avatar.
const defaultAvatarInset = 10

// CircleAvatar resizes src to size x size and cuts it to a circle.
func CircleAvatar(src image.Image, size int) image.Image {
	resized := imaging.Resize(src, size, size, imaging.Lanczos)

	dc := gg.NewContext(size, size)
	r := float64(size) / 2
	dc.DrawCircle(r, r, r)
	dc.Clip()
	dc.DrawImage(resized, 0, 0)
	return dc.Image()
}

// DefaultAvatar is the gray disc used when no avatar can be shown.
func DefaultAvatar(size int) image.Image {
	dc := gg.NewContext(size, size)
	r := float64(size) / 2

	dc.DrawCircle(r, r, r)
	dc.SetColor(defaultAvatarOuter)
	dc.Fill()

	dc.DrawCircle(r, r, r-defaultAvatarInset)
	dc.SetColor(defaultAvatarInner)
	dc.Fill()
	return dc.Image()
}

// resolveAvatar never fails: absent sources and failed fetches both yield DefaultAvatar.
func (c *Composer) resolveAvatar(ctx context.Context, side string, src battle.AvatarSource) image.Image {
	size := c.layout.AvatarSize
	if src.IsZero() {
		return DefaultAvatar(size)
	}

	return resolve(c.logger, side+" avatar", []provider[image.Image]{
		{name: "fetch", get: func() (image.Image, error) {
			img, err := c.fetcher.FetchImage(ctx, src)
			if err != nil {
				c.logger.Warn("Avatar unavailable, using default",
					zap.String("side", side),
					zap.Stringer("source", src),
					zap.Error(err))
				return nil, err
			}
			return CircleAvatar(img, size), nil
		}},
	}, func() image.Image { return DefaultAvatar(size) })
}
