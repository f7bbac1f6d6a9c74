package wordcloud

import "errors"

var (
	// ErrNoWords is returned when there is nothing to draw.
	ErrNoWords = errors.New("no words to render")
	// ErrInvalidSize is returned for non-positive canvas dimensions.
	ErrInvalidSize = errors.New("invalid canvas size")
)
