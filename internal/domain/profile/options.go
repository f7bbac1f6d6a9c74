package profile

// Bounds limits the top-N sports parameter.
type Bounds struct {
	Min     int
	Max     int
	Default int
}

// DefaultBounds are the bounds of the top-N sports control.
var DefaultBounds = Bounds{Min: 3, Max: 30, Default: 10} //nolint:gochecknoglobals // read-only defaults

// Clamp forces n into [Min, Max].
func (b Bounds) Clamp(n int) int {
	if n < b.Min {
		return b.Min
	}
	if n > b.Max {
		return b.Max
	}
	return n
}

// Option applies a configuration option to a render.
type Option func(*options)

type options struct {
	bounds      Bounds
	topAthletes int
	cloudWords  int
	label       func(noc string) string
}

func defaultOptions() options {
	return options{
		bounds:      DefaultBounds,
		topAthletes: 5,
		cloudWords:  20,
		label:       func(noc string) string { return noc },
	}
}

// WithBounds overrides the top-N bounds. Invalid bounds are ignored.
func WithBounds(b Bounds) Option {
	return func(o *options) {
		if b.Min > 0 && b.Min <= b.Max {
			o.bounds = Bounds{Min: b.Min, Max: b.Max, Default: b.Clamp(b.Default)}
		}
	}
}

// WithTopAthletes sets how many athletes the top athletes card lists.
func WithTopAthletes(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.topAthletes = n
		}
	}
}

// WithCloudWords sets how many sports feed the word cloud.
func WithCloudWords(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.cloudWords = n
		}
	}
}

// WithLabel sets the display label function for country codes.
func WithLabel(fn func(noc string) string) Option {
	return func(o *options) {
		if fn != nil {
			o.label = fn
		}
	}
}
