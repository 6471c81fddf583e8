package asset

import "errors"

// ErrEmpty indicates the stream file has no content.
var ErrEmpty = errors.New("empty stream")
