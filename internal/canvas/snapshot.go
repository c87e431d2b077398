package canvas

import "image"

// Snapshot is an immutable copy of a buffer's pixels at one instant.
//
// A Snapshot owns its pixel slice exclusively; nothing else holds a reference
// to it, so it can be kept on a history stack indefinitely.
type Snapshot struct {
	width  int
	height int
	pix    []byte
}

// Width returns the width of the captured buffer.
func (s *Snapshot) Width() int { return s.width }

// Height returns the height of the captured buffer.
func (s *Snapshot) Height() int { return s.height }

// Size returns the number of bytes of pixel data held by the snapshot.
func (s *Snapshot) Size() int { return len(s.pix) }

// At returns the color captured at (x,y). The second result is false when
// (x,y) lies outside the snapshot.
func (s *Snapshot) At(x, y int) (Color, bool) {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return Color{}, false
	}
	i := (y*s.width + x) * 4
	return Color{R: s.pix[i], G: s.pix[i+1], B: s.pix[i+2], A: s.pix[i+3]}, true
}

// Image returns a copy of the snapshot as an *image.NRGBA.
func (s *Snapshot) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, s.width, s.height))
	copy(img.Pix, s.pix)
	return img
}
