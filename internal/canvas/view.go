package canvas

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"
)

// MaxViewSide is the largest width or height, in pixels, of a rendered view.
const MaxViewSide = 4096

// Region represents a rectangular region of the canvas.
//
// Coordinates follow the standard image convention:
//   - (X1, Y1) is the top-left corner (inclusive)
//   - (X2, Y2) is the bottom-right corner (exclusive)
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// ViewOptions controls how Render produces a preview image.
type ViewOptions struct {
	// Region restricts the view to part of the canvas. Nil means the whole canvas.
	Region *Region

	// Scale magnifies the view with nearest-neighbour sampling so individual
	// pixels stay crisp. Values <= 0 are treated as 1.
	Scale float64

	// GridSpacing draws a grid line every GridSpacing canvas pixels. Zero disables the grid.
	GridSpacing int

	// ShowCoordinates labels grid intersections with their canvas coordinates.
	ShowCoordinates bool

	// GridColor is the grid line color. The zero value selects semi-transparent red.
	GridColor Color
}

// ViewResult contains a rendered canvas view encoded as base64 PNG.
type ViewResult struct {
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	CanvasWidth  int     `json:"canvas_width"`
	CanvasHeight int     `json:"canvas_height"`
	Scale        float64 `json:"scale"`
	ImageBase64  string  `json:"image_base64"`
	MimeType     string  `json:"mime_type"`
}

// Render encodes img, typically a Buffer.View, as a PNG preview.
//
// The region is validated against the image bounds in the same way as a crop:
// it must lie inside the image and be non-empty.
func Render(img image.Image, opts ViewOptions) (*ViewResult, error) {
	bounds := img.Bounds()

	var view image.Image = img
	origin := bounds.Min
	if r := opts.Region; r != nil {
		if r.X1 < bounds.Min.X || r.Y1 < bounds.Min.Y || r.X2 > bounds.Max.X || r.Y2 > bounds.Max.Y {
			return nil, fmt.Errorf("%w: region (%d,%d)-(%d,%d) outside canvas bounds (%d,%d)-(%d,%d)",
				ErrOutOfBounds, r.X1, r.Y1, r.X2, r.Y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
		}
		if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
			return nil, fmt.Errorf("%w: x1 must be < x2, y1 must be < y2", ErrInvalidRegion)
		}
		view = imaging.Crop(img, image.Rect(r.X1, r.Y1, r.X2, r.Y2))
		origin = image.Pt(r.X1, r.Y1)
	}

	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Round(float64(view.Bounds().Dx()) * scale))
	h := int(math.Round(float64(view.Bounds().Dy()) * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w > MaxViewSide || h > MaxViewSide {
		return nil, fmt.Errorf("scaled view %dx%d exceeds maximum of %dx%d", w, h, MaxViewSide, MaxViewSide)
	}

	out := transform.Resize(view, w, h, transform.NearestNeighbor)

	if opts.GridSpacing > 0 {
		if float64(opts.GridSpacing)*scale < 1 {
			return nil, fmt.Errorf("%w: grid spacing %d at scale %g is finer than one view pixel",
				ErrInvalidGrid, opts.GridSpacing, scale)
		}
		gridColor := opts.GridColor
		if gridColor == (Color{}) {
			gridColor = Color{255, 0, 0, 128}
		}
		drawGrid(out, image.Rectangle{Min: origin, Max: origin.Add(view.Bounds().Size())}, scale, opts.GridSpacing, opts.ShowCoordinates, gridColor)
	}

	var buf bytes.Buffer
	if err := imgio.PNGEncoder()(&buf, out); err != nil {
		return nil, fmt.Errorf("failed to encode view: %w", err)
	}

	return &ViewResult{
		Width:        w,
		Height:       h,
		CanvasWidth:  bounds.Dx(),
		CanvasHeight: bounds.Dy(),
		Scale:        scale,
		ImageBase64:  base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:     "image/png",
	}, nil
}

// drawGrid overlays grid lines on a scaled view. Lines sit on multiples of
// spacing in canvas coordinates; area is the canvas rectangle the view shows.
func drawGrid(img *image.RGBA, area image.Rectangle, scale float64, spacing int, labels bool, c Color) {
	bounds := img.Bounds()
	origin := area.Min
	src := image.NewUniform(c.NRGBA())

	firstX := ((origin.X + spacing - 1) / spacing) * spacing
	if firstX == origin.X {
		firstX += spacing
	}
	firstY := ((origin.Y + spacing - 1) / spacing) * spacing
	if firstY == origin.Y {
		firstY += spacing
	}

	var xs, ys []int
	for cx := firstX; cx < area.Max.X; cx += spacing {
		px := int(float64(cx-origin.X) * scale)
		if px >= bounds.Max.X {
			break
		}
		xs = append(xs, cx)
		draw.Draw(img, image.Rect(px, bounds.Min.Y, px+1, bounds.Max.Y), src, image.Point{}, draw.Over)
	}
	for cy := firstY; cy < area.Max.Y; cy += spacing {
		py := int(float64(cy-origin.Y) * scale)
		if py >= bounds.Max.Y {
			break
		}
		ys = append(ys, cy)
		draw.Draw(img, image.Rect(bounds.Min.X, py, bounds.Max.X, py+1), src, image.Point{}, draw.Over)
	}

	if !labels {
		return
	}
	fg := color.RGBA{255, 255, 255, 255}
	bg := color.RGBA{0, 0, 0, 180}
	for _, cy := range ys {
		for _, cx := range xs {
			px := int(float64(cx-origin.X) * scale)
			py := int(float64(cy-origin.Y) * scale)
			drawLabel(img, px+2, py+2, fmt.Sprintf("%d,%d", cx, cy), fg, bg)
		}
	}
}

// labelGlyphs is a 3x5 pixel font covering digits and the comma.
var labelGlyphs = map[rune][]string{
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "001", "001", "001"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
	',': {"000", "000", "000", "010", "010"},
}

// drawLabel draws text at (x,y) on a solid background box, clipped to img.
func drawLabel(img *image.RGBA, x, y int, text string, fg, bg color.RGBA) {
	const charWidth = 4
	const labelHeight = 7

	box := image.Rect(x-1, y-1, x+len(text)*charWidth, y+labelHeight).Intersect(img.Bounds())
	draw.Draw(img, box, image.NewUniform(bg), image.Point{}, draw.Over)

	cx := x
	for _, ch := range text {
		glyph, ok := labelGlyphs[ch]
		if !ok {
			cx += charWidth
			continue
		}
		for row, line := range glyph {
			for col, pixel := range line {
				if pixel != '1' {
					continue
				}
				if p := image.Pt(cx+col, y+row); p.In(img.Bounds()) {
					img.SetRGBA(p.X, p.Y, fg)
				}
			}
		}
		cx += charWidth
	}
}
