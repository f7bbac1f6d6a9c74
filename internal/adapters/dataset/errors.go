package dataset

import "errors"

var (
	// ErrMissingColumn is returned when a required header is absent.
	ErrMissingColumn = errors.New("missing required column")
	// ErrEmptyFile is returned when a file has no header row.
	ErrEmptyFile = errors.New("empty dataset file")
	// ErrNoPath is returned when the athletes path is not configured.
	ErrNoPath = errors.New("no dataset path")
)
