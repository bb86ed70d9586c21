package navigation

import "errors"

var ErrNoRoute = errors.New("no route matches path")
var ErrRedirectLoop = errors.New("redirect limit reached")
