package service

import "errors"

var (
	// ErrNotStarted is returned by operations that need a loaded dataset.
	ErrNotStarted = errors.New("service not started")
	// ErrUnknownCountry is returned for codes absent from the dataset.
	ErrUnknownCountry = errors.New("unknown country")
	// ErrNoMedals is returned when a country has no medals to draw.
	ErrNoMedals = errors.New("country has no medals")
)
