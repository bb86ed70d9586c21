package browsing

import "errors"

var ErrInvalidLocation = errors.New("invalid location")
