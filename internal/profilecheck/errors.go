package profilecheck

import "errors"

var (
	// ErrViolations is returned when at least one property failed.
	ErrViolations = errors.New("profile properties violated")
	// ErrNoCountries is returned when the service lists no countries.
	ErrNoCountries = errors.New("service lists no countries")
)
