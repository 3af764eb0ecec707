package battle

import (
	"fmt"
	"strings"
)

const (
	MinRoll = 1
	MaxRoll = 6

	// MaxNameLength is the number of characters of a display name that gets rendered.
	MaxNameLength = 12
)

// Winner labels the outcome of a battle.
type Winner string

const (
	WinnerPlayer Winner = "player"
	WinnerBot    Winner = "bot"
	WinnerTie    Winner = "tie"
)

// AvatarSource points at an avatar image. The zero value means no avatar.
type AvatarSource struct {
	URL  string
	Data []byte
}

// IsZero reports whether the source carries nothing to fetch.
func (s AvatarSource) IsZero() bool {
	return strings.TrimSpace(s.URL) == "" && len(s.Data) == 0
}

func (s AvatarSource) String() string {
	if len(s.Data) > 0 {
		return fmt.Sprintf("<%d bytes>", len(s.Data))
	}
	return s.URL
}

// Request is the input of one battle render.
type Request struct {
	PlayerRoll   int
	BotRoll      int
	PlayerAvatar AvatarSource
	BotAvatar    AvatarSource
	PlayerName   string
	BotName      string
}

// Validate checks the roll values.
func (r Request) Validate() error {
	if r.PlayerRoll < MinRoll || r.PlayerRoll > MaxRoll {
		return fmt.Errorf("%w: player roll %d out of range %d-%d", ErrInvalidArguments, r.PlayerRoll, MinRoll, MaxRoll)
	}
	if r.BotRoll < MinRoll || r.BotRoll > MaxRoll {
		return fmt.Errorf("%w: bot roll %d out of range %d-%d", ErrInvalidArguments, r.BotRoll, MinRoll, MaxRoll)
	}
	return nil
}

// Winner compares the two rolls.
func (r Request) Winner() Winner {
	return DecideWinner(r.PlayerRoll, r.BotRoll)
}

// DecideWinner returns player if playerRoll is strictly greater, bot if botRoll is
// strictly greater, tie otherwise.
func DecideWinner(playerRoll, botRoll int) Winner {
	switch {
	case playerRoll > botRoll:
		return WinnerPlayer
	case botRoll > playerRoll:
		return WinnerBot
	default:
		return WinnerTie
	}
}

// TruncateName cuts name to MaxNameLength characters.
func TruncateName(name string) string {
	r := []rune(name)
	if len(r) <= MaxNameLength {
		return name
	}
	return string(r[:MaxNameLength])
}

// Result is what a successful render reports.
type Result struct {
	ImagePath string
	Winner    Winner
}

// Line formats the result for the command's stdout contract.
func (r Result) Line() string {
	return "SUCCESS:" + r.ImagePath + ":" + string(r.Winner)
}
