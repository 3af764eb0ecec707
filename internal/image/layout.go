package imagepkg

import "image"

// Layout is the fixed geometry of a battle image. Offsets are relative to a
// side's anchor, which is the top centre of its avatar.
type Layout struct {
	Width, Height int

	AvatarSize int
	DiceSize   int

	PlayerAnchor image.Point
	BotAnchor    image.Point

	TitleY      int
	NameOffsetY int
	DiceOffset  image.Point
	// NumberOffsetY is measured from the top of the dice face.
	NumberOffsetY int
	VSY           int

	GlowRings     int
	GlowStep      int
	GlowLineWidth float64

	TitleFontSize  float64
	NameFontSize   float64
	NumberFontSize float64
	VSFontSize     float64
}

// DefaultLayout returns the 700x250 battle layout.
func DefaultLayout() Layout {
	return Layout{
		Width:  700,
		Height: 250,

		AvatarSize: 80,
		DiceSize:   diceFaceSize,

		PlayerAnchor: image.Pt(100, 80),
		BotAnchor:    image.Pt(600, 80),

		TitleY:        10,
		NameOffsetY:   84,
		DiceOffset:    image.Pt(-30, 110),
		NumberOffsetY: 65,
		VSY:           130,

		GlowRings:     3,
		GlowStep:      2,
		GlowLineWidth: 2,

		TitleFontSize:  32,
		NameFontSize:   24,
		NumberFontSize: 28,
		VSFontSize:     40,
	}
}

// AvatarRect is the bounding box of the avatar drawn at anchor.
func (l Layout) AvatarRect(anchor image.Point) image.Rectangle {
	x0 := anchor.X - l.AvatarSize/2
	return image.Rect(x0, anchor.Y, x0+l.AvatarSize, anchor.Y+l.AvatarSize)
}

// DiceRect is the bounding box of the dice face drawn for anchor.
func (l Layout) DiceRect(anchor image.Point) image.Rectangle {
	origin := anchor.Add(l.DiceOffset)
	return image.Rectangle{Min: origin, Max: origin.Add(image.Pt(l.DiceSize, l.DiceSize))}
}
