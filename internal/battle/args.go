package battle

import (
	"fmt"
	"strconv"
	"strings"
)

// ArgCount is the number of positional arguments the command requires.
const ArgCount = 6

// nullSource is what callers pass when a side has no avatar.
const nullSource = "null"

// Usage describes the positional arguments.
const Usage = "<player_roll> <bot_roll> <player_avatar_url|null> <bot_avatar_url|null> <player_name> <bot_name>"

// ParseArgs builds a Request from the command's positional arguments.
// Extra trailing arguments are ignored.
func ParseArgs(args []string) (Request, error) {
	if len(args) < ArgCount {
		return Request{}, fmt.Errorf("%w: expected %d arguments, got %d", ErrInvalidArguments, ArgCount, len(args))
	}

	playerRoll, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return Request{}, fmt.Errorf("%w: player roll %q is not a number", ErrInvalidArguments, args[0])
	}
	botRoll, err := strconv.Atoi(strings.TrimSpace(args[1]))
	if err != nil {
		return Request{}, fmt.Errorf("%w: bot roll %q is not a number", ErrInvalidArguments, args[1])
	}

	req := Request{
		PlayerRoll:   playerRoll,
		BotRoll:      botRoll,
		PlayerAvatar: parseSource(args[2]),
		BotAvatar:    parseSource(args[3]),
		PlayerName:   args[4],
		BotName:      args[5],
	}
	if err := req.Validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}

func parseSource(s string) AvatarSource {
	s = strings.TrimSpace(s)
	if s == "" || s == nullSource {
		return AvatarSource{}
	}
	return AvatarSource{URL: s}
}
