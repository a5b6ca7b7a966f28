package spacedrep

import "errors"

// ErrInvalidArgument is returned for malformed calendar dates and for
// Fibonacci indices below 1.
var ErrInvalidArgument = errors.New("spacedrep: invalid argument")
