package pump

import "errors"

var (
	// ErrEmptyStream indicates there is nothing to play.
	ErrEmptyStream = errors.New("empty stream")
	// ErrNoDisplay indicates the pump was started without a display.
	ErrNoDisplay = errors.New("no display")
)
