// Package canvas provides the pixel buffer that every editing operation works on.
//
// A Buffer owns a fixed-size grid of non-premultiplied RGBA pixels backed by an
// *image.NRGBA whose Pix slice holds exactly width*height*4 bytes. The package
// also defines the exact-match Color type, immutable Snapshots used by the undo
// history, and the PNG preview renderer used to show the canvas to clients.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - Valid coordinates satisfy 0 <= x < width and 0 <= y < height
//
// Coordinates outside the buffer are reported with ErrOutOfBounds. They are
// never clamped.
//
// # Color Equality
//
// Colors compare with ==. Two colors are equal only when all four channels
// match exactly; there is no tolerance and no blending.
//
// # Snapshots
//
// Snapshot returns a deep copy of the pixel data. Snapshots never alias the
// live buffer or each other, so a snapshot stays valid no matter what happens
// to the buffer afterwards. Restore copies a snapshot back into the buffer and
// fails with ErrDimensionMismatch if the sizes disagree.
//
// # Thread Safety
//
// Buffer is not safe for concurrent use. The session package serializes all
// access to a buffer behind a mutex.
package canvas
