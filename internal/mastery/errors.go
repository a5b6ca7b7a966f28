package mastery

import "errors"

var (
	ErrUnknownItem   = errors.New("mastery: unknown item")
	ErrItemMastered  = errors.New("mastery: item already mastered")
	ErrInvalidConfig = errors.New("mastery: invalid config")
)
