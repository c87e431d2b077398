package canvas

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Buffer is a fixed-size grid of non-premultiplied RGBA pixels.
//
// The backing image always starts at (0,0) and has Stride == 4*width, so the
// pixel at (x,y) lives at Pix[(y*width+x)*4 : (y*width+x)*4+4].
type Buffer struct {
	img *image.NRGBA
}

// New creates a width x height buffer with every pixel fully transparent.
func New(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Buffer{img: image.NewNRGBA(image.Rect(0, 0, width, height))}, nil
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int { return b.img.Rect.Dx() }

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int { return b.img.Rect.Dy() }

// Bounds returns the buffer rectangle, always anchored at the origin.
func (b *Buffer) Bounds() image.Rectangle { return b.img.Rect }

// InBounds reports whether (x,y) addresses a pixel of the buffer.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.img.Rect.Max.X && y < b.img.Rect.Max.Y
}

func (b *Buffer) checkBounds(x, y int) error {
	if !b.InBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d) outside %dx%d canvas", ErrOutOfBounds, x, y, b.Width(), b.Height())
	}
	return nil
}

// Get returns the color at (x,y).
func (b *Buffer) Get(x, y int) (Color, error) {
	if err := b.checkBounds(x, y); err != nil {
		return Color{}, err
	}
	i := b.img.PixOffset(x, y)
	p := b.img.Pix[i : i+4 : i+4]
	return Color{R: p[0], G: p[1], B: p[2], A: p[3]}, nil
}

// Set writes c to (x,y).
func (b *Buffer) Set(x, y int, c Color) error {
	if err := b.checkBounds(x, y); err != nil {
		return err
	}
	i := b.img.PixOffset(x, y)
	p := b.img.Pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
	return nil
}

// Clear sets every pixel to c.
func (b *Buffer) Clear(c Color) {
	pix := b.img.Pix
	if len(pix) == 0 {
		return
	}
	pix[0], pix[1], pix[2], pix[3] = c.R, c.G, c.B, c.A
	// Double the initialized prefix until the slice is full.
	for n := 4; n < len(pix); n *= 2 {
		copy(pix[n:], pix[:n])
	}
}

// Snapshot returns a deep copy of the current pixel data.
func (b *Buffer) Snapshot() *Snapshot {
	pix := make([]byte, len(b.img.Pix))
	copy(pix, b.img.Pix)
	return &Snapshot{width: b.Width(), height: b.Height(), pix: pix}
}

// Restore overwrites every pixel with the contents of s.
//
// The buffer is left untouched when s has different dimensions.
func (b *Buffer) Restore(s *Snapshot) error {
	if s == nil {
		return fmt.Errorf("%w: nil snapshot", ErrDimensionMismatch)
	}
	if s.width != b.Width() || s.height != b.Height() || len(s.pix) != len(b.img.Pix) {
		return fmt.Errorf("%w: snapshot is %dx%d, canvas is %dx%d",
			ErrDimensionMismatch, s.width, s.height, b.Width(), b.Height())
	}
	copy(b.img.Pix, s.pix)
	return nil
}

// Equal reports whether the buffer holds exactly the pixels of s.
func (b *Buffer) Equal(s *Snapshot) bool {
	if s == nil || s.width != b.Width() || s.height != b.Height() {
		return false
	}
	return bytes.Equal(b.img.Pix, s.pix)
}

// Image returns the live backing image. Renderers in this module draw into
// it directly; writes are visible immediately and bypass bounds checking.
func (b *Buffer) Image() *image.NRGBA {
	return b.img
}

// View returns an independent copy of the canvas suitable for display.
// Changes to the returned image do not affect the buffer.
func (b *Buffer) View() *image.NRGBA {
	return imaging.Clone(b.img)
}
