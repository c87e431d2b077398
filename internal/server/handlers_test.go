package server

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"
	"testing"

	"github.com/ironsheep/canvas-tools-mcp/internal/canvas"
	"github.com/ironsheep/canvas-tools-mcp/internal/session"
)

func TestCanvasTools_FillUndoGetPixel(t *testing.T) {
	cs := mcpSession(t)

	var fill FillResult
	mcpCallTool(t, cs, "canvas_fill", map[string]any{"x": 3, "y": 4, "color": "#ff0000"}, &fill)
	if fill.Changed != 16*12 {
		t.Errorf("Changed: got %d, want %d", fill.Changed, 16*12)
	}
	if !fill.Recorded || fill.UndoDepth != 1 {
		t.Errorf("got recorded=%v undo_depth=%d, want true 1", fill.Recorded, fill.UndoDepth)
	}

	var px PixelResult
	mcpCallTool(t, cs, "canvas_get_pixel", map[string]any{"x": 0, "y": 0}, &px)
	if px.Color.Hex != "#FF0000" {
		t.Errorf("after fill: got %s, want #FF0000", px.Color.Hex)
	}

	var undo HistoryResult
	mcpCallTool(t, cs, "canvas_undo", map[string]any{}, &undo)
	if !undo.Applied || undo.UndoDepth != 0 || undo.RedoDepth != 1 {
		t.Errorf("undo: got %+v", undo)
	}

	mcpCallTool(t, cs, "canvas_get_pixel", map[string]any{"x": 0, "y": 0}, &px)
	if px.Color.Hex != "#FFFFFF" {
		t.Errorf("after undo: got %s, want #FFFFFF", px.Color.Hex)
	}

	var redo HistoryResult
	mcpCallTool(t, cs, "canvas_redo", map[string]any{}, &redo)
	if !redo.Applied || redo.UndoDepth != 1 || redo.RedoDepth != 0 {
		t.Errorf("redo: got %+v", redo)
	}
	mcpCallTool(t, cs, "canvas_get_pixel", map[string]any{"x": 15, "y": 11}, &px)
	if px.Color.Hex != "#FF0000" {
		t.Errorf("after redo: got %s, want #FF0000", px.Color.Hex)
	}
}

func TestCanvasTools_NoOpFill(t *testing.T) {
	cs := mcpSession(t)

	var fill FillResult
	mcpCallTool(t, cs, "canvas_fill", map[string]any{"x": 0, "y": 0, "color": "#FFF"}, &fill)
	if fill.Changed != 0 || fill.Recorded || fill.UndoDepth != 0 {
		t.Errorf("no-op fill: got %+v", fill)
	}

	var undo HistoryResult
	mcpCallTool(t, cs, "canvas_undo", map[string]any{}, &undo)
	if undo.Applied {
		t.Error("undo with empty history should not apply")
	}
}

func TestCanvasTools_GetPixelFormats(t *testing.T) {
	cs := mcpSession(t)

	mcpCallTool(t, cs, "canvas_set_pixel", map[string]any{"x": 2, "y": 2, "color": "#0000FF"}, nil)

	var px PixelResult
	mcpCallTool(t, cs, "canvas_get_pixel", map[string]any{"x": 2, "y": 2}, &px)
	if px.Color.RGBA != (canvas.Color{B: 255, A: 255}) {
		t.Errorf("RGBA: got %+v", px.Color.RGBA)
	}
	if px.Color.HSL.H != 240 || px.Color.HSL.S != 100 || px.Color.HSL.L != 50 {
		t.Errorf("HSL: got %+v, want {240 100 50}", px.Color.HSL)
	}
}

func TestCanvasTools_Errors(t *testing.T) {
	cs := mcpSession(t)

	tests := []struct {
		name    string
		tool    string
		args    map[string]any
		wantMsg string
	}{
		{"fill out of bounds", "canvas_fill", map[string]any{"x": 16, "y": 0, "color": "#000"}, "outside canvas bounds"},
		{"get pixel out of bounds", "canvas_get_pixel", map[string]any{"x": -1, "y": 0}, "outside canvas bounds"},
		{"bad color", "canvas_set_pixel", map[string]any{"x": 0, "y": 0, "color": "#zzzzzz"}, "invalid color"},
		{"unknown canvas", "canvas_info", map[string]any{"canvas": "nope"}, "unknown canvas"},
		{"continue without begin", "canvas_stroke_continue", map[string]any{"x": 1, "y": 1}, "no stroke in progress"},
		{"empty stroke", "canvas_stroke", map[string]any{"points": []any{}}, "at least one point"},
		{"negative width", "canvas_stroke", map[string]any{"points": []any{map[string]any{"x": 1, "y": 1}}, "width": -3}, "width must be positive"},
		{"create too small", "canvas_create", map[string]any{"canvas": "x", "width": 0, "height": 10}, "must be positive"},
		{"create too large", "canvas_create", map[string]any{"canvas": "x", "width": 100000, "height": 10}, "exceeds maximum"},
		{"create history too deep", "canvas_create", map[string]any{"canvas": "x", "width": 4, "height": 4, "history_depth": 1099511627776}, "history depth 1099511627776 exceeds maximum"},
		{"partial view region", "canvas_view", map[string]any{"x1": 0, "y1": 0}, "x1, y1, x2 and y2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := mcpCallToolError(t, cs, tt.tool, tt.args)
			if !strings.Contains(msg, tt.wantMsg) {
				t.Errorf("error %q does not contain %q", msg, tt.wantMsg)
			}
		})
	}

	var info CanvasResult
	mcpCallTool(t, cs, "canvas_info", map[string]any{}, &info)
	if info.UndoDepth != 0 {
		t.Errorf("failed calls recorded %d undo steps", info.UndoDepth)
	}
}

func TestCanvasTools_CreateListDelete(t *testing.T) {
	cs := mcpSession(t)

	var created CanvasResult
	mcpCallTool(t, cs, "canvas_create", map[string]any{
		"canvas": "sketch", "width": 8, "height": 4, "background": "#00000000", "history_depth": 3,
	}, &created)
	if created.Canvas != "sketch" || created.Width != 8 || created.Height != 4 || created.HistoryCapacity != 3 {
		t.Errorf("create: got %+v", created)
	}

	var px PixelResult
	mcpCallTool(t, cs, "canvas_get_pixel", map[string]any{"canvas": "sketch", "x": 7, "y": 3}, &px)
	if px.Color.RGBA != canvas.Transparent {
		t.Errorf("background: got %+v, want transparent", px.Color.RGBA)
	}

	var list struct {
		Canvases []string `json:"canvases"`
	}
	mcpCallTool(t, cs, "canvas_list", map[string]any{}, &list)
	if strings.Join(list.Canvases, ",") != "default,sketch" {
		t.Errorf("list: got %v", list.Canvases)
	}

	mcpCallTool(t, cs, "canvas_delete", map[string]any{"canvas": "sketch"}, nil)
	mcpCallToolError(t, cs, "canvas_delete", map[string]any{"canvas": "sketch"})

	mcpCallTool(t, cs, "canvas_list", map[string]any{}, &list)
	if len(list.Canvases) != 1 || list.Canvases[0] != session.DefaultID {
		t.Errorf("after delete: got %v", list.Canvases)
	}
}

func TestCanvasTools_CanvasesAreIndependent(t *testing.T) {
	cs := mcpSession(t)

	mcpCallTool(t, cs, "canvas_create", map[string]any{"canvas": "other", "width": 4, "height": 4}, nil)
	mcpCallTool(t, cs, "canvas_fill", map[string]any{"canvas": "other", "x": 0, "y": 0, "color": "#00FF00"}, nil)

	var px PixelResult
	mcpCallTool(t, cs, "canvas_get_pixel", map[string]any{"x": 0, "y": 0}, &px)
	if px.Color.Hex != "#FFFFFF" {
		t.Errorf("default canvas changed: got %s", px.Color.Hex)
	}

	var undo HistoryResult
	mcpCallTool(t, cs, "canvas_undo", map[string]any{}, &undo)
	if undo.Applied {
		t.Error("default canvas history should be empty")
	}
}

func TestCanvasTools_StrokeSingleUndoStep(t *testing.T) {
	cs := mcpSession(t)

	var res CanvasResult
	mcpCallTool(t, cs, "canvas_stroke", map[string]any{
		"points": []any{
			map[string]any{"x": 1, "y": 6},
			map[string]any{"x": 8, "y": 6},
			map[string]any{"x": 14, "y": 6},
		},
		"width": 3,
		"color": "#000000",
	}, &res)
	if res.UndoDepth != 1 {
		t.Errorf("UndoDepth: got %d, want 1", res.UndoDepth)
	}

	var px PixelResult
	mcpCallTool(t, cs, "canvas_get_pixel", map[string]any{"x": 8, "y": 6}, &px)
	if px.Color.Hex != "#000000" {
		t.Errorf("stroke pixel: got %s, want #000000", px.Color.Hex)
	}

	mcpCallTool(t, cs, "canvas_undo", map[string]any{}, nil)
	mcpCallTool(t, cs, "canvas_get_pixel", map[string]any{"x": 8, "y": 6}, &px)
	if px.Color.Hex != "#FFFFFF" {
		t.Errorf("after undo: got %s, want #FFFFFF", px.Color.Hex)
	}
}

func TestCanvasTools_IncrementalStroke(t *testing.T) {
	cs := mcpSession(t)

	var res CanvasResult
	mcpCallTool(t, cs, "canvas_stroke_begin", map[string]any{"x": 2, "y": 2, "width": 2, "color": "#0000FF"}, &res)
	if !res.StrokeOpen {
		t.Error("stroke should be open after begin")
	}
	mcpCallTool(t, cs, "canvas_stroke_continue", map[string]any{"x": 10, "y": 2}, nil)

	var end struct {
		Ended bool `json:"ended"`
	}
	mcpCallTool(t, cs, "canvas_stroke_end", map[string]any{}, &end)
	if !end.Ended {
		t.Error("stroke_end should report an open stroke")
	}
	mcpCallTool(t, cs, "canvas_stroke_end", map[string]any{}, &end)
	if end.Ended {
		t.Error("second stroke_end should report no stroke")
	}

	var px PixelResult
	mcpCallTool(t, cs, "canvas_get_pixel", map[string]any{"x": 6, "y": 2}, &px)
	if px.Color.Hex != "#0000FF" {
		t.Errorf("stroke pixel: got %s, want #0000FF", px.Color.Hex)
	}

	var info CanvasResult
	mcpCallTool(t, cs, "canvas_info", map[string]any{}, &info)
	if info.UndoDepth != 1 {
		t.Errorf("UndoDepth: got %d, want 1", info.UndoDepth)
	}
}

func TestCanvasTools_ClearAndRegion(t *testing.T) {
	cs := mcpSession(t)

	mcpCallTool(t, cs, "canvas_clear", map[string]any{"color": "#101010"}, nil)

	var region session.RegionInfo
	mcpCallTool(t, cs, "canvas_region", map[string]any{"x": 5, "y": 5}, &region)
	if region.Pixels != 16*12 {
		t.Errorf("Pixels: got %d, want %d", region.Pixels, 16*12)
	}
	if region.Color != (canvas.Color{R: 16, G: 16, B: 16, A: 255}) {
		t.Errorf("Color: got %+v", region.Color)
	}
	if region.Bounds != (canvas.Region{X1: 0, Y1: 0, X2: 16, Y2: 12}) {
		t.Errorf("Bounds: got %+v", region.Bounds)
	}

	// Clear without a color resets to the configured background.
	mcpCallTool(t, cs, "canvas_clear", map[string]any{}, nil)
	var px PixelResult
	mcpCallTool(t, cs, "canvas_get_pixel", map[string]any{"x": 0, "y": 0}, &px)
	if px.Color.Hex != "#FFFFFF" {
		t.Errorf("after clear: got %s, want #FFFFFF", px.Color.Hex)
	}

	var info CanvasResult
	mcpCallTool(t, cs, "canvas_info", map[string]any{}, &info)
	if info.UndoDepth != 2 {
		t.Errorf("UndoDepth: got %d, want 2", info.UndoDepth)
	}
}

func TestCanvasTools_View(t *testing.T) {
	cs := mcpSession(t)

	var view canvas.ViewResult
	mcpCallTool(t, cs, "canvas_view", map[string]any{
		"x1": 0, "y1": 0, "x2": 8, "y2": 6, "scale": 2, "grid_spacing": 4,
	}, &view)

	if view.Width != 16 || view.Height != 12 {
		t.Errorf("view size: got %dx%d, want 16x12", view.Width, view.Height)
	}
	if view.CanvasWidth != 16 || view.CanvasHeight != 12 {
		t.Errorf("canvas size: got %dx%d, want 16x12", view.CanvasWidth, view.CanvasHeight)
	}
	if view.MimeType != "image/png" {
		t.Errorf("MimeType: got %s", view.MimeType)
	}

	data, err := base64.StdEncoding.DecodeString(view.ImageBase64)
	if err != nil {
		t.Fatalf("decode base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 12 {
		t.Errorf("png size: got %dx%d, want 16x12", b.Dx(), b.Dy())
	}
}
