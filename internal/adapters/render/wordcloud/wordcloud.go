// Package wordcloud rasterises weighted words into a PNG image.
package wordcloud

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/okian/podium/internal/domain/types"
)

const (
	defaultWidth  = 800
	defaultHeight = 400
	spiralStep    = 0.1 // radians per placement attempt
	maxAttempts   = 4000
	shrinkFactor  = 0.8
	padding       = 2.0
)

// Viridis samples the viridis colour map from dark to light.
var Viridis = []color.Color{ //nolint:gochecknoglobals // read-only palette
	color.NRGBA{R: 0x44, G: 0x01, B: 0x54, A: 0xff},
	color.NRGBA{R: 0x48, G: 0x28, B: 0x78, A: 0xff},
	color.NRGBA{R: 0x3e, G: 0x4a, B: 0x89, A: 0xff},
	color.NRGBA{R: 0x31, G: 0x68, B: 0x8e, A: 0xff},
	color.NRGBA{R: 0x26, G: 0x82, B: 0x8e, A: 0xff},
	color.NRGBA{R: 0x1f, G: 0x9e, B: 0x89, A: 0xff},
	color.NRGBA{R: 0x35, G: 0xb7, B: 0x79, A: 0xff},
	color.NRGBA{R: 0x6d, G: 0xcd, B: 0x59, A: 0xff},
	color.NRGBA{R: 0xb4, G: 0xde, B: 0x2c, A: 0xff},
	color.NRGBA{R: 0xfd, G: 0xe7, B: 0x25, A: 0xff},
}

// Renderer draws word clouds. It is safe for concurrent use.
type Renderer struct {
	font       *truetype.Font
	width      int
	height     int
	background color.Color
	palette    []color.Color
	minFont    float64
	maxFont    float64
}

// New parses the bundled Go Regular font and applies opts.
func New(opts ...Option) (*Renderer, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	r := &Renderer{
		font:       f,
		width:      defaultWidth,
		height:     defaultHeight,
		background: color.White,
		palette:    Viridis,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.width <= 0 || r.height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, r.width, r.height)
	}
	if r.maxFont == 0 {
		r.maxFont = float64(r.height) / 3
		r.minFont = math.Max(8, r.maxFont/8)
	}
	return r, nil
}

// Size returns the canvas dimensions.
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

type box struct {
	x0, y0, x1, y1 float64
}

func (b box) overlaps(o box) bool {
	return b.x0 < o.x1 && o.x0 < b.x1 && b.y0 < o.y1 && o.y0 < b.y1
}

// Placement is where a word ended up on the canvas.
type Placement struct {
	Text string
	Size float64
	X, Y float64 // centre
}

// Render draws words, heaviest first, and encodes the canvas as PNG.
// Words that do not fit even at the minimum font size are dropped.
func (r *Renderer) Render(ctx context.Context, words []types.Word) ([]byte, error) {
	png, _, err := r.render(ctx, words)
	return png, err
}

// render draws words and reports where each one was placed.
func (r *Renderer) render(ctx context.Context, words []types.Word) ([]byte, []Placement, error) {
	maxWeight := 0
	for _, w := range words {
		if w.Weight > maxWeight {
			maxWeight = w.Weight
		}
	}
	if len(words) == 0 || maxWeight <= 0 {
		return nil, nil, ErrNoWords
	}

	dc := gg.NewContext(r.width, r.height)
	dc.SetColor(r.background)
	dc.Clear()

	var (
		placed []box
		out    []Placement
	)
	faces := make(map[float64]font.Face)
	defer func() {
		for _, f := range faces {
			_ = f.Close()
		}
	}()
	face := func(size float64) font.Face {
		if f, ok := faces[size]; ok {
			return f
		}
		f := truetype.NewFace(r.font, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingNone})
		faces[size] = f
		return f
	}

	for rank, w := range words {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		if w.Weight <= 0 || w.Text == "" {
			continue
		}

		// relative scaling 0.5: size follows weight halfway between linear and flat
		rel := float64(w.Weight) / float64(maxWeight)
		size := math.Round(r.minFont + (r.maxFont-r.minFont)*(0.5*rel+0.5*math.Sqrt(rel)))

		for ; size >= r.minFont; size = math.Floor(size * shrinkFactor) {
			dc.SetFontFace(face(size))
			tw, th := dc.MeasureString(w.Text)
			if tw+2*padding > float64(r.width) || th+2*padding > float64(r.height) {
				continue
			}
			cx, cy, b, ok := r.place(tw, th, placed)
			if !ok {
				continue
			}
			dc.SetColor(r.palette[rank%len(r.palette)])
			dc.DrawStringAnchored(w.Text, cx, cy, 0.5, 0.5)
			placed = append(placed, b)
			out = append(out, Placement{Text: w.Text, Size: size, X: cx, Y: cy})
			break
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), out, nil
}

// place walks an Archimedean spiral out from the centre until a tw x th box
// fits inside the canvas without touching placed boxes.
func (r *Renderer) place(tw, th float64, placed []box) (float64, float64, box, bool) {
	w, h := float64(r.width), float64(r.height)
	aspect := h / w
	for i := 0; i < maxAttempts; i++ {
		t := float64(i) * spiralStep
		cx := w/2 + t*math.Cos(t)
		cy := h/2 + t*aspect*math.Sin(t)

		b := box{
			x0: cx - tw/2 - padding, y0: cy - th/2 - padding,
			x1: cx + tw/2 + padding, y1: cy + th/2 + padding,
		}
		if b.x0 < 0 || b.y0 < 0 || b.x1 > w || b.y1 > h {
			continue
		}
		free := true
		for _, p := range placed {
			if b.overlaps(p) {
				free = false
				break
			}
		}
		if free {
			return cx, cy, b, true
		}
	}
	return 0, 0, box{}, false
}
