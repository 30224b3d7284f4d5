// Package signature implements the drawing pad used to capture an
// electronic signature.  Pointer positions arrive in screen coordinates
// and are mapped onto a fixed-size raster surface, which is exported as a
// PNG data URL.
package signature

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"strings"
	"sync"

	"golang.org/x/image/vector"
)

// Default surface size in pixels.
const (
	DefaultWidth  = 400
	DefaultHeight = 200
)

const dataURLPrefix = "data:image/png;base64,"

type Point struct{ X, Y float64 }

// Rect is the on-screen box the surface is displayed in.
type Rect struct {
	Left, Top, Width, Height float64
}

// Pad is a signature surface.  It is idle until PointerDown and drawing
// until PointerUp or PointerLeave.
type Pad struct {
	Ink       color.Color
	LineWidth float64

	mu      sync.Mutex
	w, h    int
	bounds  Rect
	drawing bool
	strokes [][]Point
	img     *image.RGBA
	inked   bool
}

// NewPad creates a w×h surface displayed at its natural size.  Zero
// dimensions fall back to the defaults.
func NewPad(w, h int) *Pad {
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return &Pad{
		Ink:       color.Black,
		LineWidth: 2,
		w:         w,
		h:         h,
		bounds:    Rect{Width: float64(w), Height: float64(h)},
		img:       image.NewRGBA(image.Rect(0, 0, w, h)),
	}
}

// Size returns the surface resolution.
func (p *Pad) Size() (w, h int) { return p.w, p.h }

// SetBounds records where the surface is shown on screen.
func (p *Pad) SetBounds(r Rect) {
	p.mu.Lock()
	p.bounds = r
	p.mu.Unlock()
}

// Map converts a screen position to surface coordinates, scaling each
// axis independently by surface size over box size.
func (p *Pad) Map(client Point) Point {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mapLocked(client)
}

func (p *Pad) mapLocked(client Point) Point {
	sx, sy := 1.0, 1.0
	if p.bounds.Width > 0 {
		sx = float64(p.w) / p.bounds.Width
	}
	if p.bounds.Height > 0 {
		sy = float64(p.h) / p.bounds.Height
	}
	return Point{
		X: (client.X - p.bounds.Left) * sx,
		Y: (client.Y - p.bounds.Top) * sy,
	}
}

// PointerDown starts a stroke at the mapped position.
func (p *Pad) PointerDown(client Point) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.drawing = true
	p.strokes = append(p.strokes, []Point{p.mapLocked(client)})
}

// PointerMove extends the current stroke and draws the new segment.  It
// reports false when no stroke is in progress.
func (p *Pad) PointerMove(client Point) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.drawing {
		return false
	}
	pt := p.mapLocked(client)
	cur := p.strokes[len(p.strokes)-1]
	p.segment(cur[len(cur)-1], pt)
	p.strokes[len(p.strokes)-1] = append(cur, pt)
	return true
}

func (p *Pad) PointerUp() { p.stop() }

// PointerLeave ends the stroke the same way PointerUp does.
func (p *Pad) PointerLeave() { p.stop() }

func (p *Pad) stop() {
	p.mu.Lock()
	p.drawing = false
	p.mu.Unlock()
}

func (p *Pad) Drawing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.drawing
}

// Strokes returns a copy of the recorded strokes in surface coordinates.
func (p *Pad) Strokes() [][]Point {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([][]Point, len(p.strokes))
	for i, s := range p.strokes {
		out[i] = append([]Point(nil), s...)
	}
	return out
}

// Clear erases the surface.  Recorded strokes and the pointer state are
// left as they are.
func (p *Pad) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.img = image.NewRGBA(image.Rect(0, 0, p.w, p.h))
	p.inked = false
}

// Empty reports whether nothing has been drawn.
func (p *Pad) Empty() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.inked
}

// Image returns a copy of the surface.
func (p *Pad) Image() *image.RGBA {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := image.NewRGBA(p.img.Bounds())
	draw.Draw(out, out.Bounds(), p.img, image.Point{}, draw.Src)
	return out
}

// Encode returns the surface as a PNG data URL.
func (p *Pad) Encode() (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, p.Image()); err != nil {
		return "", err
	}
	return dataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// segment draws a line of LineWidth from a to b with square caps.
func (p *Pad) segment(a, b Point) {
	half := p.LineWidth / 2
	if half <= 0 {
		half = 0.5
	}
	src := image.NewUniform(p.Ink)

	dx, dy := b.X-a.X, b.Y-a.Y
	if l := math.Hypot(dx, dy); l > 0 {
		nx, ny := -dy/l*half, dx/l*half
		p.fill(src,
			Point{a.X + nx, a.Y + ny},
			Point{b.X + nx, b.Y + ny},
			Point{b.X - nx, b.Y - ny},
			Point{a.X - nx, a.Y - ny})
	}
	for _, c := range []Point{a, b} {
		p.fill(src,
			Point{c.X - half, c.Y - half},
			Point{c.X + half, c.Y - half},
			Point{c.X + half, c.Y + half},
			Point{c.X - half, c.Y + half})
	}
	p.inked = true
}

func (p *Pad) fill(src image.Image, poly ...Point) {
	z := vector.NewRasterizer(p.w, p.h)
	z.DrawOp = draw.Over
	z.MoveTo(float32(poly[0].X), float32(poly[0].Y))
	for _, q := range poly[1:] {
		z.LineTo(float32(q.X), float32(q.Y))
	}
	z.ClosePath()
	z.Draw(p.img, p.img.Bounds(), src, image.Point{})
}

// DecodeDataURL returns the PNG bytes inside a data URL produced by
// Encode.
func DecodeDataURL(s string) ([]byte, error) {
	rest, ok := strings.CutPrefix(s, dataURLPrefix)
	if !ok {
		return nil, errors.New("not a PNG data URL")
	}
	return base64.StdEncoding.DecodeString(rest)
}
