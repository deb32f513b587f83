package presenter

import "errors"

var ErrInvalidRoute = errors.New("invalid route")
