package profile

import "errors"

var (
	// ErrNoDataset is returned when a render is attempted without a dataset.
	ErrNoDataset = errors.New("dataset not loaded")
	// ErrInvalidYear is returned when a country row carries a non-positive year.
	ErrInvalidYear = errors.New("invalid year")
)
