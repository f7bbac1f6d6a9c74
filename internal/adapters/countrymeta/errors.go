package countrymeta

import "errors"

// ErrInvalidTable is returned when the country table cannot be decoded.
var ErrInvalidTable = errors.New("invalid country table")
