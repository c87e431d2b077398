package fill

import (
	"fmt"
	"image"

	"github.com/ironsheep/canvas-tools-mcp/internal/canvas"
)

// Fill recolors the 4-connected region around (seedX, seedY) that shares the
// seed's original color, and returns the number of pixels changed.
//
// Returns canvas.ErrOutOfBounds if the seed lies outside the buffer. Filling a
// seed that already has color c is a no-op that returns 0.
func Fill(buf *canvas.Buffer, seedX, seedY int, c canvas.Color) (int, error) {
	target, err := buf.Get(seedX, seedY)
	if err != nil {
		return 0, fmt.Errorf("fill seed: %w", err)
	}
	if target == c {
		return 0, nil
	}

	img := buf.Image()
	width, height := buf.Width(), buf.Height()
	pix := img.Pix

	changed := 0
	stack := []image.Point{{X: seedX, Y: seedY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}

		i := img.PixOffset(p.X, p.Y)
		px := pix[i : i+4 : i+4]
		if px[0] != target.R || px[1] != target.G || px[2] != target.B || px[3] != target.A {
			continue
		}

		px[0], px[1], px[2], px[3] = c.R, c.G, c.B, c.A
		changed++

		stack = append(stack,
			image.Point{X: p.X + 1, Y: p.Y},
			image.Point{X: p.X - 1, Y: p.Y},
			image.Point{X: p.X, Y: p.Y + 1},
			image.Point{X: p.X, Y: p.Y - 1},
		)
	}

	return changed, nil
}

// Region returns the points of the 4-connected region around (seedX, seedY)
// that share the seed's color, without modifying the buffer. Points are
// returned in visitation order.
func Region(buf *canvas.Buffer, seedX, seedY int) ([]image.Point, error) {
	target, err := buf.Get(seedX, seedY)
	if err != nil {
		return nil, fmt.Errorf("region seed: %w", err)
	}

	img := buf.Image()
	pix := img.Pix
	width, height := buf.Width(), buf.Height()
	visited := make([]bool, width*height)
	region := make([]image.Point, 0)
	stack := []image.Point{{X: seedX, Y: seedY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		idx := p.Y*width + p.X
		if visited[idx] {
			continue
		}
		i := img.PixOffset(p.X, p.Y)
		px := pix[i : i+4 : i+4]
		if px[0] != target.R || px[1] != target.G || px[2] != target.B || px[3] != target.A {
			continue
		}

		visited[idx] = true
		region = append(region, p)

		stack = append(stack,
			image.Point{X: p.X + 1, Y: p.Y},
			image.Point{X: p.X - 1, Y: p.Y},
			image.Point{X: p.X, Y: p.Y + 1},
			image.Point{X: p.X, Y: p.Y - 1},
		)
	}

	return region, nil
}
