package wordcloud

import "image/color"

// Option applies a configuration option to a Renderer.
type Option func(*Renderer)

// WithSize sets the canvas size in pixels.
func WithSize(width, height int) Option {
	return func(r *Renderer) {
		r.width, r.height = width, height
	}
}

// WithBackground sets the canvas colour.
func WithBackground(c color.Color) Option {
	return func(r *Renderer) {
		if c != nil {
			r.background = c
		}
	}
}

// WithPalette sets the word colours, applied by rank.
func WithPalette(p []color.Color) Option {
	return func(r *Renderer) {
		if len(p) > 0 {
			r.palette = p
		}
	}
}

// WithFontSizes bounds the font size in points.
func WithFontSizes(minSize, maxSize float64) Option {
	return func(r *Renderer) {
		if minSize > 0 && maxSize >= minSize {
			r.minFont, r.maxFont = minSize, maxSize
		}
	}
}
