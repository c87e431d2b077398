package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/canvas-tools-mcp/internal/canvas"
	"github.com/ironsheep/canvas-tools-mcp/internal/history"
	"github.com/ironsheep/canvas-tools-mcp/internal/session"
	"github.com/ironsheep/canvas-tools-mcp/internal/stroke"
)

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Looks up the target canvas in the registry
//  4. Calls the matching session operation
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (any, error) {
	switch name {
	// Canvas Management
	case "canvas_create":
		return s.handleCanvasCreate(args)
	case "canvas_delete":
		return s.handleCanvasDelete(args)
	case "canvas_list":
		return s.handleCanvasList(args)
	case "canvas_info":
		return s.handleCanvasInfo(args)

	// Pixel Operations
	case "canvas_get_pixel":
		return s.handleGetPixel(args)
	case "canvas_set_pixel":
		return s.handleSetPixel(args)

	// Fill Operations
	case "canvas_fill":
		return s.handleFill(args)
	case "canvas_region":
		return s.handleRegion(args)
	case "canvas_clear":
		return s.handleClear(args)

	// Stroke Operations
	case "canvas_stroke":
		return s.handleStroke(args)
	case "canvas_stroke_begin":
		return s.handleStrokeBegin(args)
	case "canvas_stroke_continue":
		return s.handleStrokeContinue(args)
	case "canvas_stroke_end":
		return s.handleStrokeEnd(args)

	// History
	case "canvas_undo":
		return s.handleHistory(args, (*session.Session).Undo)
	case "canvas_redo":
		return s.handleHistory(args, (*session.Session).Redo)

	// Viewing
	case "canvas_view":
		return s.handleView(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// decodeArgs unmarshals tool arguments. Absent arguments decode as {}.
func decodeArgs(args json.RawMessage, v any) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// parseColor parses a hex color argument, substituting def when it is empty.
func parseColor(name, value, def string) (canvas.Color, error) {
	if value == "" {
		value = def
	}
	c, err := canvas.ParseHexColor(value)
	if err != nil {
		return canvas.Color{}, fmt.Errorf("%s: %w", name, err)
	}
	return c, nil
}

// canvasArgs selects a canvas. It is embedded in every argument struct.
type canvasArgs struct {
	Canvas string `json:"canvas"`
}

func (s *Server) lookup(a canvasArgs) (*session.Session, error) {
	return s.registry.Get(a.Canvas)
}

func canvasID(a canvasArgs) string {
	if a.Canvas == "" {
		return session.DefaultID
	}
	return a.Canvas
}

// === Canvas Management Handlers ===

type canvasCreateArgs struct {
	canvasArgs
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Background   string `json:"background"`
	HistoryDepth int    `json:"history_depth"`
}

// CanvasResult identifies a canvas and reports its state.
type CanvasResult struct {
	Canvas string `json:"canvas"`
	session.Info
}

func (s *Server) handleCanvasCreate(args json.RawMessage) (any, error) {
	var a canvasCreateArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Width > canvas.MaxViewSide || a.Height > canvas.MaxViewSide {
		return nil, fmt.Errorf("%w: %dx%d exceeds maximum of %dx%d",
			canvas.ErrInvalidDimensions, a.Width, a.Height, canvas.MaxViewSide, canvas.MaxViewSide)
	}
	if a.HistoryDepth > history.MaxCapacity {
		return nil, fmt.Errorf("history depth %d exceeds maximum of %d", a.HistoryDepth, history.MaxCapacity)
	}

	bg := s.background
	if a.Background != "" {
		var err error
		if bg, err = parseColor("background", a.Background, ""); err != nil {
			return nil, err
		}
	}
	depth := a.HistoryDepth
	if depth <= 0 {
		depth = s.depth
	}

	sess, err := s.registry.Create(a.Canvas, a.Width, a.Height, bg, depth)
	if err != nil {
		return nil, err
	}
	s.logger.Info("canvas created", "canvas", canvasID(a.canvasArgs), "width", a.Width, "height", a.Height)
	return &CanvasResult{Canvas: canvasID(a.canvasArgs), Info: sess.Info()}, nil
}

func (s *Server) handleCanvasDelete(args json.RawMessage) (any, error) {
	var a canvasArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if !s.registry.Delete(a.Canvas) {
		return nil, fmt.Errorf("%w: %q", session.ErrUnknownCanvas, canvasID(a))
	}
	return map[string]any{"canvas": canvasID(a), "deleted": true}, nil
}

func (s *Server) handleCanvasList(args json.RawMessage) (any, error) {
	return map[string]any{"canvases": s.registry.IDs()}, nil
}

func (s *Server) handleCanvasInfo(args json.RawMessage) (any, error) {
	var a canvasArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.lookup(a)
	if err != nil {
		return nil, err
	}
	return &CanvasResult{Canvas: canvasID(a), Info: sess.Info()}, nil
}

// === Pixel Operation Handlers ===

type pixelArgs struct {
	canvasArgs
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Color string `json:"color"`
}

// PixelResult reports the color of one pixel.
type PixelResult struct {
	X     int                `json:"x"`
	Y     int                `json:"y"`
	Color canvas.ColorResult `json:"color"`
}

func (s *Server) handleGetPixel(args json.RawMessage) (any, error) {
	var a pixelArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.lookup(a.canvasArgs)
	if err != nil {
		return nil, err
	}
	c, err := sess.Pixel(a.X, a.Y)
	if err != nil {
		return nil, err
	}
	return &PixelResult{X: a.X, Y: a.Y, Color: canvas.Describe(c)}, nil
}

func (s *Server) handleSetPixel(args json.RawMessage) (any, error) {
	var a pixelArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	c, err := parseColor("color", a.Color, "")
	if err != nil {
		return nil, err
	}
	sess, err := s.lookup(a.canvasArgs)
	if err != nil {
		return nil, err
	}
	if err := sess.SetPixel(a.X, a.Y, c); err != nil {
		return nil, err
	}
	return &PixelResult{X: a.X, Y: a.Y, Color: canvas.Describe(c)}, nil
}

// === Fill Operation Handlers ===

// FillResult reports how many pixels a fill changed.
type FillResult struct {
	Changed   int  `json:"changed"`
	Recorded  bool `json:"recorded"`
	UndoDepth int  `json:"undo_depth"`
}

func (s *Server) handleFill(args json.RawMessage) (any, error) {
	var a pixelArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	c, err := parseColor("color", a.Color, "")
	if err != nil {
		return nil, err
	}
	sess, err := s.lookup(a.canvasArgs)
	if err != nil {
		return nil, err
	}
	changed, err := sess.Fill(a.X, a.Y, c)
	if err != nil {
		return nil, err
	}
	return &FillResult{Changed: changed, Recorded: changed > 0, UndoDepth: sess.Info().UndoDepth}, nil
}

func (s *Server) handleRegion(args json.RawMessage) (any, error) {
	var a pixelArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.lookup(a.canvasArgs)
	if err != nil {
		return nil, err
	}
	return sess.Region(a.X, a.Y)
}

type clearArgs struct {
	canvasArgs
	Color string `json:"color"`
}

func (s *Server) handleClear(args json.RawMessage) (any, error) {
	var a clearArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	c := s.background
	if a.Color != "" {
		var err error
		if c, err = parseColor("color", a.Color, ""); err != nil {
			return nil, err
		}
	}
	sess, err := s.lookup(a.canvasArgs)
	if err != nil {
		return nil, err
	}
	sess.Clear(c)
	return &CanvasResult{Canvas: canvasID(a.canvasArgs), Info: sess.Info()}, nil
}

// === Stroke Operation Handlers ===

type strokeArgs struct {
	canvasArgs
	Points []stroke.Point `json:"points"`
	X      float64        `json:"x"`
	Y      float64        `json:"y"`
	Width  float64        `json:"width"`
	Color  string         `json:"color"`
}

// brush applies the width and color defaults.
func (a *strokeArgs) brush() (float64, canvas.Color, error) {
	width := a.Width
	if width == 0 {
		width = defaultBrushWidth
	}
	c, err := parseColor("color", a.Color, defaultBrushColor)
	return width, c, err
}

func (s *Server) handleStroke(args json.RawMessage) (any, error) {
	var a strokeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	width, c, err := a.brush()
	if err != nil {
		return nil, err
	}
	sess, err := s.lookup(a.canvasArgs)
	if err != nil {
		return nil, err
	}
	if err := sess.Stroke(a.Points, width, c); err != nil {
		return nil, err
	}
	return &CanvasResult{Canvas: canvasID(a.canvasArgs), Info: sess.Info()}, nil
}

func (s *Server) handleStrokeBegin(args json.RawMessage) (any, error) {
	var a strokeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	width, c, err := a.brush()
	if err != nil {
		return nil, err
	}
	sess, err := s.lookup(a.canvasArgs)
	if err != nil {
		return nil, err
	}
	if err := sess.BeginStroke(stroke.Point{X: a.X, Y: a.Y}, width, c); err != nil {
		return nil, err
	}
	return &CanvasResult{Canvas: canvasID(a.canvasArgs), Info: sess.Info()}, nil
}

func (s *Server) handleStrokeContinue(args json.RawMessage) (any, error) {
	var a strokeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.lookup(a.canvasArgs)
	if err != nil {
		return nil, err
	}
	if err := sess.ContinueStroke(stroke.Point{X: a.X, Y: a.Y}); err != nil {
		return nil, err
	}
	return map[string]any{"x": a.X, "y": a.Y}, nil
}

func (s *Server) handleStrokeEnd(args json.RawMessage) (any, error) {
	var a canvasArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.lookup(a)
	if err != nil {
		return nil, err
	}
	return map[string]any{"ended": sess.EndStroke()}, nil
}

// === History Handlers ===

// HistoryResult reports the outcome of an undo or redo.
type HistoryResult struct {
	Applied   bool `json:"applied"`
	UndoDepth int  `json:"undo_depth"`
	RedoDepth int  `json:"redo_depth"`
}

func (s *Server) handleHistory(args json.RawMessage, step func(*session.Session) (bool, error)) (any, error) {
	var a canvasArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.lookup(a)
	if err != nil {
		return nil, err
	}
	applied, err := step(sess)
	if err != nil {
		return nil, err
	}
	info := sess.Info()
	return &HistoryResult{Applied: applied, UndoDepth: info.UndoDepth, RedoDepth: info.RedoDepth}, nil
}

// === Viewing Handlers ===

type viewArgs struct {
	canvasArgs
	X1              *int    `json:"x1"`
	Y1              *int    `json:"y1"`
	X2              *int    `json:"x2"`
	Y2              *int    `json:"y2"`
	Scale           float64 `json:"scale"`
	GridSpacing     int     `json:"grid_spacing"`
	ShowCoordinates bool    `json:"show_coordinates"`
	GridColor       string  `json:"grid_color"`
}

var errPartialRegion = errors.New("region needs all of x1, y1, x2 and y2")

func (a *viewArgs) region() (*canvas.Region, error) {
	set := 0
	for _, v := range []*int{a.X1, a.Y1, a.X2, a.Y2} {
		if v != nil {
			set++
		}
	}
	switch set {
	case 0:
		return nil, nil
	case 4:
		return &canvas.Region{X1: *a.X1, Y1: *a.Y1, X2: *a.X2, Y2: *a.Y2}, nil
	default:
		return nil, errPartialRegion
	}
}

func (s *Server) handleView(args json.RawMessage) (any, error) {
	var a viewArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	region, err := a.region()
	if err != nil {
		return nil, err
	}
	if a.ShowCoordinates && a.GridSpacing == 0 {
		a.GridSpacing = defaultGridSpacing
	}
	var gridColor canvas.Color
	if a.GridColor != "" {
		if gridColor, err = parseColor("grid_color", a.GridColor, ""); err != nil {
			return nil, err
		}
	}
	sess, err := s.lookup(a.canvasArgs)
	if err != nil {
		return nil, err
	}
	return canvas.Render(sess.View(), canvas.ViewOptions{
		Region:          region,
		Scale:           a.Scale,
		GridSpacing:     a.GridSpacing,
		ShowCoordinates: a.ShowCoordinates,
		GridColor:       gridColor,
	})
}
