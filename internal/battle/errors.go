package battle

import "errors"

var ErrInvalidArguments = errors.New("invalid arguments")
