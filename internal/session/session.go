package session

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/ironsheep/canvas-tools-mcp/internal/canvas"
	"github.com/ironsheep/canvas-tools-mcp/internal/fill"
	"github.com/ironsheep/canvas-tools-mcp/internal/history"
	"github.com/ironsheep/canvas-tools-mcp/internal/stroke"
)

var (
	// ErrNoStroke is returned by ContinueStroke when no stroke is open.
	ErrNoStroke = errors.New("no stroke in progress")

	// ErrEmptyStroke is returned by Stroke when no points are given.
	ErrEmptyStroke = errors.New("stroke needs at least one point")
)

// Session owns one canvas and its undo history.
type Session struct {
	mu       sync.Mutex
	buf      *canvas.Buffer
	history  *history.Manager
	renderer *stroke.Renderer

	// Open stroke state, valid while stroking is true.
	stroking    bool
	strokeLast  stroke.Point
	strokeWidth float64
	strokeColor canvas.Color
}

// Info summarizes the state of a session.
type Info struct {
	Width           int  `json:"width"`
	Height          int  `json:"height"`
	UndoDepth       int  `json:"undo_depth"`
	RedoDepth       int  `json:"redo_depth"`
	HistoryCapacity int  `json:"history_capacity"`
	StrokeOpen      bool `json:"stroke_open"`
}

// RegionInfo describes the fill region around a seed pixel.
type RegionInfo struct {
	Color  canvas.Color  `json:"color"`
	Pixels int           `json:"pixels"`
	Bounds canvas.Region `json:"bounds"`
}

// New creates a width x height session cleared to background. historyDepth
// bounds each history stack; <= 0 selects history.DefaultCapacity.
func New(width, height int, background canvas.Color, historyDepth int) (*Session, error) {
	buf, err := canvas.New(width, height)
	if err != nil {
		return nil, err
	}
	buf.Clear(background)
	return &Session{
		buf:      buf,
		history:  history.New(historyDepth),
		renderer: stroke.New(),
	}, nil
}

// Info returns the canvas size and history depths.
func (s *Session) Info() Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Info{
		Width:           s.buf.Width(),
		Height:          s.buf.Height(),
		UndoDepth:       s.history.UndoDepth(),
		RedoDepth:       s.history.RedoDepth(),
		HistoryCapacity: s.history.Capacity(),
		StrokeOpen:      s.stroking,
	}
}

// Pixel returns the color at (x,y).
func (s *Session) Pixel(x, y int) (canvas.Color, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Get(x, y)
}

// View returns a copy of the current canvas for display.
func (s *Session) View() *image.NRGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.View()
}

// SetPixel writes a single pixel as one undo step.
func (s *Session) SetPixel(x, y int, c canvas.Color) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endStroke()

	if _, err := s.buf.Get(x, y); err != nil {
		return err
	}
	s.history.Record(s.buf)
	return s.buf.Set(x, y, c)
}

// Fill flood-fills the region around (x,y) with c and returns the number of
// pixels changed. A fill that would change nothing records no undo step.
func (s *Session) Fill(x, y int, c canvas.Color) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endStroke()

	target, err := s.buf.Get(x, y)
	if err != nil {
		return 0, fmt.Errorf("fill seed: %w", err)
	}
	if target == c {
		return 0, nil
	}

	s.history.Record(s.buf)
	return fill.Fill(s.buf, x, y, c)
}

// Region reports the region a fill at (x,y) would recolor, without changing
// the canvas.
func (s *Session) Region(x, y int) (*RegionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, err := s.buf.Get(x, y)
	if err != nil {
		return nil, fmt.Errorf("region seed: %w", err)
	}
	points, err := fill.Region(s.buf, x, y)
	if err != nil {
		return nil, err
	}

	bounds := image.Rectangle{Min: points[0], Max: points[0].Add(image.Pt(1, 1))}
	for _, p := range points[1:] {
		bounds = bounds.Union(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))})
	}
	return &RegionInfo{
		Color:  target,
		Pixels: len(points),
		Bounds: canvas.Region{X1: bounds.Min.X, Y1: bounds.Min.Y, X2: bounds.Max.X, Y2: bounds.Max.Y},
	}, nil
}

// Clear sets every pixel to c as one undo step.
func (s *Session) Clear(c canvas.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endStroke()

	s.history.Record(s.buf)
	s.buf.Clear(c)
}

// Stroke draws a round-capped polyline through pts as one undo step. A single
// point draws a dot.
func (s *Session) Stroke(pts []stroke.Point, width float64, c canvas.Color) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endStroke()

	if len(pts) == 0 {
		return ErrEmptyStroke
	}
	// Validate before recording so a rejected stroke leaves no empty undo step.
	if err := stroke.Validate(width, pts...); err != nil {
		return err
	}

	s.history.Record(s.buf)
	return s.renderer.Polyline(s.buf, pts, width, c)
}

// BeginStroke opens a freehand stroke at p, records the save point and draws
// a dot. Any stroke already open is closed first.
func (s *Session) BeginStroke(p stroke.Point, width float64, c canvas.Color) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endStroke()

	if err := stroke.Validate(width, p); err != nil {
		return err
	}

	s.history.Record(s.buf)
	if err := s.renderer.Line(s.buf, p, p, width, c); err != nil {
		return err
	}
	s.stroking = true
	s.strokeLast = p
	s.strokeWidth = width
	s.strokeColor = c
	return nil
}

// ContinueStroke extends the open stroke to p.
func (s *Session) ContinueStroke(p stroke.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.stroking {
		return ErrNoStroke
	}
	if err := s.renderer.Line(s.buf, s.strokeLast, p, s.strokeWidth, s.strokeColor); err != nil {
		return err
	}
	s.strokeLast = p
	return nil
}

// EndStroke closes the open stroke. It reports whether a stroke was open.
func (s *Session) EndStroke() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endStroke()
}

func (s *Session) endStroke() bool {
	open := s.stroking
	s.stroking = false
	return open
}

// Undo reverts the most recent action. It returns false when there is nothing
// to undo.
func (s *Session) Undo() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endStroke()
	return s.history.Undo(s.buf)
}

// Redo re-applies the most recently undone action. It returns false when
// there is nothing to redo.
func (s *Session) Redo() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endStroke()
	return s.history.Redo(s.buf)
}
