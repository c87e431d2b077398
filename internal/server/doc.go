// Package server implements the MCP (Model Context Protocol) server for the
// canvas editing tools.
//
// The server is built on github.com/modelcontextprotocol/go-sdk and serves
// over stdio. Every tool is registered through one wrapper that decodes the
// raw arguments, dispatches through executeTool and returns the result as
// JSON text content.
//
// # Available Tools
//
// Canvas Management:
//   - canvas_create: Create or replace a canvas
//   - canvas_delete: Delete a canvas
//   - canvas_list: List open canvases
//   - canvas_info: Size, history depth, open stroke
//
// Pixel Operations:
//   - canvas_get_pixel: Read a pixel (hex, RGBA, HSL)
//   - canvas_set_pixel: Write a pixel
//
// Fill Operations:
//   - canvas_fill: 4-connected flood fill
//   - canvas_region: Describe a fill region without changing it
//   - canvas_clear: Fill the whole canvas
//
// Stroke Operations:
//   - canvas_stroke: Draw a whole polyline
//   - canvas_stroke_begin, canvas_stroke_continue, canvas_stroke_end:
//     freehand stroke driven by pointer events
//
// History:
//   - canvas_undo, canvas_redo
//
// Viewing:
//   - canvas_view: Render the canvas as PNG, with optional region, scale and grid
//
// # Canvases
//
// Every tool takes an optional "canvas" argument naming the canvas to act on.
// It defaults to "default", a canvas created at startup from the
// configuration. Each canvas has its own undo and redo history.
//
// # Error Handling
//
// Tool failures (out-of-bounds coordinates, bad colors, unknown canvases) are
// returned as tool results with IsError set and the error text as content.
// They never change the canvas or its history.
//
// # Usage
//
//	srv, err := server.New(cfg, version, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
