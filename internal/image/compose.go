package imagepkg

import (
	"context"
	"fmt"
	"image"
	"strconv"

	"github.com/fogleman/gg"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/youruser/dicebattle/internal/battle"
)

// Options configures a Composer.
type Options struct {
	Layout     Layout
	Theme      Theme
	AssetsDir  string
	ScratchDir string
	FontPath   string
	FontDirs   []string
	// ParallelFetch fetches both avatars at once. The composite is the same either way.
	ParallelFetch bool
}

// Composer renders battle images.
type Composer struct {
	layout        Layout
	theme         Theme
	assetsDir     string
	scratchDir    string
	parallelFetch bool

	fetcher ImageFetcher
	fonts   *FontResolver
	logger  *zap.Logger
}

func NewComposer(opts Options, fetcher ImageFetcher, logger *zap.Logger) *Composer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Composer{
		layout:        opts.Layout,
		theme:         opts.Theme,
		assetsDir:     opts.AssetsDir,
		scratchDir:    opts.ScratchDir,
		parallelFetch: opts.ParallelFetch,
		fetcher:       fetcher,
		fonts:         NewFontResolver(opts.FontPath, opts.FontDirs, logger),
		logger:        logger,
	}
}

// Close releases cached font faces.
func (c *Composer) Close() error {
	return c.fonts.Close()
}

// side is one contestant as drawn on the canvas.
type side struct {
	label  string
	anchor image.Point
	name   string
	roll   int
	avatar image.Image
}

// Compose renders req to a PNG in the scratch directory. Avatar, asset and
// font problems are absorbed; anything else is returned wrapped in ErrComposition.
func (c *Composer) Compose(ctx context.Context, req battle.Request) (res battle.Result, err error) {
	if err := req.Validate(); err != nil {
		return battle.Result{}, err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrComposition, r)
			res = battle.Result{}
		}
	}()

	c.logger.Info("Generating dice battle image",
		zap.String("player", battle.TruncateName(req.PlayerName)),
		zap.Int("player_roll", req.PlayerRoll),
		zap.String("bot", battle.TruncateName(req.BotName)),
		zap.Int("bot_roll", req.BotRoll))

	player := side{label: "player", anchor: c.layout.PlayerAnchor, name: req.PlayerName, roll: req.PlayerRoll}
	bot := side{label: "bot", anchor: c.layout.BotAnchor, name: req.BotName, roll: req.BotRoll}
	player.avatar, bot.avatar = c.resolveAvatars(ctx, req.PlayerAvatar, req.BotAvatar)

	dc := gg.NewContext(c.layout.Width, c.layout.Height)
	dc.DrawImage(c.background(), 0, 0)
	c.drawTitle(dc)
	c.drawSide(dc, player)
	c.drawSide(dc, bot)
	c.drawVS(dc)

	winner := req.Winner()
	switch winner {
	case battle.WinnerPlayer:
		c.drawWinnerGlow(dc, player.anchor)
	case battle.WinnerBot:
		c.drawWinnerGlow(dc, bot.anchor)
	}

	if err := ctx.Err(); err != nil {
		return battle.Result{}, fmt.Errorf("%w: %v", ErrComposition, err)
	}

	path, err := c.save(dc.Image())
	if err != nil {
		return battle.Result{}, fmt.Errorf("%w: %v", ErrComposition, err)
	}

	c.logger.Info("Dice battle image written",
		zap.String("path", path),
		zap.String("winner", string(winner)))

	return battle.Result{ImagePath: path, Winner: winner}, nil
}

// resolveAvatars returns the player and bot avatars. Failures fall back per side.
func (c *Composer) resolveAvatars(ctx context.Context, playerSrc, botSrc battle.AvatarSource) (image.Image, image.Image) {
	if !c.parallelFetch {
		return c.resolveAvatar(ctx, "player", playerSrc), c.resolveAvatar(ctx, "bot", botSrc)
	}

	var playerAvatar, botAvatar image.Image
	var g errgroup.Group
	g.Go(func() error {
		playerAvatar = c.resolveAvatar(ctx, "player", playerSrc)
		return nil
	})
	g.Go(func() error {
		botAvatar = c.resolveAvatar(ctx, "bot", botSrc)
		return nil
	})
	_ = g.Wait()
	return playerAvatar, botAvatar
}

func (c *Composer) drawTitle(dc *gg.Context) {
	face := c.fonts.Face(c.layout.TitleFontSize)
	drawCenteredText(dc, face, c.theme.Title, c.layout.Width/2, c.layout.TitleY,
		shadowed(2, c.theme.Shadow, c.theme.Text))
}

func (c *Composer) drawSide(dc *gg.Context, s side) {
	c.logger.Debug("Drawing side", zap.String("side", s.label), zap.Int("roll", s.roll))

	l := c.layout
	avatarRect := l.AvatarRect(s.anchor)
	dc.DrawImage(s.avatar, avatarRect.Min.X, avatarRect.Min.Y)

	name := battle.TruncateName(s.name)
	drawCenteredText(dc, c.fonts.Face(l.NameFontSize), name, s.anchor.X, s.anchor.Y+l.NameOffsetY,
		shadowed(1, c.theme.Shadow, c.theme.Text))

	diceRect := l.DiceRect(s.anchor)
	dc.DrawImage(c.diceFace(s.roll), diceRect.Min.X, diceRect.Min.Y)

	drawCenteredText(dc, c.fonts.Face(l.NumberFontSize), strconv.Itoa(s.roll), s.anchor.X, diceRect.Min.Y+l.NumberOffsetY,
		shadowed(1, c.theme.Shadow, c.theme.Accent))
}

func (c *Composer) drawVS(dc *gg.Context) {
	layers := []textLayer{
		{offset: image.Pt(2, 2), color: c.theme.VSShadow},
		{offset: image.Pt(1, 1), color: c.theme.VSShadow},
		{offset: image.Point{}, color: c.theme.VS},
	}
	drawCenteredText(dc, c.fonts.Face(c.layout.VSFontSize), "VS", c.layout.Width/2, c.layout.VSY, layers)
}

// drawWinnerGlow strokes concentric ellipses around the avatar at anchor,
// each GlowStep larger and fainter than the last.
func (c *Composer) drawWinnerGlow(dc *gg.Context, anchor image.Point) {
	l := c.layout
	box := l.AvatarRect(anchor)
	cx := float64(box.Min.X+box.Max.X) / 2
	cy := float64(box.Min.Y+box.Max.Y) / 2

	dc.SetLineWidth(l.GlowLineWidth)
	for i := 0; i < l.GlowRings; i++ {
		grow := float64(i * l.GlowStep)
		glow := c.theme.Glow
		if i < len(c.theme.GlowAlphas) {
			glow.A = c.theme.GlowAlphas[i]
		}
		dc.SetColor(glow)
		dc.DrawEllipse(cx, cy, float64(box.Dx())/2+grow, float64(box.Dy())/2+grow)
		dc.Stroke()
	}
}
