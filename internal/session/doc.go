// Package session ties a pixel buffer, its undo history and a stroke
// renderer into one editing session.
//
// A Session is the handle the input-dispatch layer talks to. Every mutating
// method records a history save point immediately before it changes pixels,
// so each user action (a stroke, a fill, a clear, a single-pixel set) is one
// undo step. Operations that turn out to be no-ops, such as filling a region
// with the color it already has, record nothing.
//
// # Strokes
//
// Strokes come in two forms. Stroke draws a whole polyline in one call.
// BeginStroke, ContinueStroke and EndStroke follow pointer down, move and up
// events: the save point is taken once at BeginStroke and every
// ContinueStroke draws the segment from the previous point.
//
// # Thread Safety
//
// Session serializes all of its methods behind a mutex, so operations never
// interleave and a restore is always complete before the next mutation
// starts. Registry is safe for concurrent use.
package session
