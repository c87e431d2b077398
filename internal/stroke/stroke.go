// Package stroke draws freehand brush strokes onto a canvas.Buffer.
//
// A stroke is a sequence of line segments with round caps, the same shape a
// 2D canvas context produces with lineCap "round". Segments are rasterized as
// convex capsule polygons with golang.org/x/image/vector and composited with
// draw.Over, so pixels fully inside the stroke take exactly the brush color
// when it is opaque and edge pixels are anti-aliased.
//
// Points are in pixel coordinates: the point (x,y) is the center of pixel
// (x,y). Points may lie outside the canvas; the stroke is clipped.
package stroke

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/ironsheep/canvas-tools-mcp/internal/canvas"
)

// ErrInvalidWidth is returned for a non-positive or non-finite brush width.
var ErrInvalidWidth = errors.New("stroke width must be positive")

// ErrInvalidPoint is returned for a point with a NaN or infinite coordinate.
var ErrInvalidPoint = errors.New("stroke point must be finite")

// Point is a stroke vertex in pixel coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Renderer rasterizes strokes. The zero value is ready to use.
type Renderer struct {
	ras vector.Rasterizer
}

// New returns a Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Line draws a round-capped segment from -> to. When from == to a round dot
// of the given width is drawn.
func (r *Renderer) Line(buf *canvas.Buffer, from, to Point, width float64, c canvas.Color) error {
	if err := Validate(width, from, to); err != nil {
		return err
	}
	r.fill(buf, capsule(from, to, width/2), c)
	return nil
}

// Polyline draws consecutive segments through pts. A single point draws a dot;
// an empty slice draws nothing.
func (r *Renderer) Polyline(buf *canvas.Buffer, pts []Point, width float64, c canvas.Color) error {
	if err := Validate(width, pts...); err != nil {
		return err
	}
	switch len(pts) {
	case 0:
		return nil
	case 1:
		r.fill(buf, capsule(pts[0], pts[0], width/2), c)
		return nil
	}
	for i := 1; i < len(pts); i++ {
		r.fill(buf, capsule(pts[i-1], pts[i], width/2), c)
	}
	return nil
}

// Validate checks a brush width and stroke points without drawing anything.
func Validate(width float64, pts ...Point) error {
	if !(width > 0) || math.IsInf(width, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidWidth, width)
	}
	for _, p := range pts {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return fmt.Errorf("%w: got (%v,%v)", ErrInvalidPoint, p.X, p.Y)
		}
	}
	return nil
}

// fill clips poly to the buffer and composites it in color c.
func (r *Renderer) fill(buf *canvas.Buffer, poly []Point, c canvas.Color) {
	w, h := buf.Width(), buf.Height()
	poly = clip(poly, float64(w), float64(h))
	if len(poly) < 3 {
		return
	}

	r.ras.Reset(w, h)
	r.ras.DrawOp = draw.Over
	r.ras.MoveTo(float32(poly[0].X), float32(poly[0].Y))
	for _, p := range poly[1:] {
		r.ras.LineTo(float32(p.X), float32(p.Y))
	}
	r.ras.ClosePath()

	dst := buf.Image()
	r.ras.Draw(dst, dst.Bounds(), image.NewUniform(c.NRGBA()), image.Point{})
}

// capsule returns the outline of a segment with round caps of the given
// radius, in rasterizer space where pixel centers sit at +0.5.
func capsule(from, to Point, radius float64) []Point {
	ax, ay := from.X+0.5, from.Y+0.5
	bx, by := to.X+0.5, to.Y+0.5

	n := arcSegments(radius)
	dx, dy := bx-ax, by-ay
	if math.Hypot(dx, dy) < 1e-9 {
		poly := make([]Point, 0, 2*n)
		for i := 0; i < 2*n; i++ {
			a := 2 * math.Pi * float64(i) / float64(2*n)
			poly = append(poly, Point{ax + radius*math.Cos(a), ay + radius*math.Sin(a)})
		}
		return poly
	}

	theta := math.Atan2(dy, dx)
	poly := make([]Point, 0, 2*(n+1))
	// Cap around the end point, then around the start point.
	for i := 0; i <= n; i++ {
		a := theta - math.Pi/2 + math.Pi*float64(i)/float64(n)
		poly = append(poly, Point{bx + radius*math.Cos(a), by + radius*math.Sin(a)})
	}
	for i := 0; i <= n; i++ {
		a := theta + math.Pi/2 + math.Pi*float64(i)/float64(n)
		poly = append(poly, Point{ax + radius*math.Cos(a), ay + radius*math.Sin(a)})
	}
	return poly
}

// arcSegments picks how many chords approximate a half circle of radius r.
func arcSegments(r float64) int {
	n := int(math.Ceil(r * 2))
	if n < 8 {
		n = 8
	}
	if n > 64 {
		n = 64
	}
	return n
}

// clip clips a convex polygon to the rectangle [0,w]x[0,h] (Sutherland-Hodgman).
func clip(poly []Point, w, h float64) []Point {
	edges := []struct {
		inside func(Point) bool
		cross  func(a, b Point) Point
	}{
		{func(p Point) bool { return p.X >= 0 }, func(a, b Point) Point { return atX(a, b, 0) }},
		{func(p Point) bool { return p.X <= w }, func(a, b Point) Point { return atX(a, b, w) }},
		{func(p Point) bool { return p.Y >= 0 }, func(a, b Point) Point { return atY(a, b, 0) }},
		{func(p Point) bool { return p.Y <= h }, func(a, b Point) Point { return atY(a, b, h) }},
	}

	for _, e := range edges {
		if len(poly) == 0 {
			return nil
		}
		out := make([]Point, 0, len(poly)+4)
		prev := poly[len(poly)-1]
		for _, cur := range poly {
			switch {
			case e.inside(cur) && e.inside(prev):
				out = append(out, cur)
			case e.inside(cur):
				out = append(out, e.cross(prev, cur), cur)
			case e.inside(prev):
				out = append(out, e.cross(prev, cur))
			}
			prev = cur
		}
		poly = out
	}
	return poly
}

func atX(a, b Point, x float64) Point {
	t := (x - a.X) / (b.X - a.X)
	return Point{x, a.Y + t*(b.Y-a.Y)}
}

func atY(a, b Point, y float64) Point {
	t := (y - a.Y) / (b.Y - a.Y)
	return Point{a.X + t*(b.X-a.X), y}
}
