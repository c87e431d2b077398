// Package fill implements the bucket tool: an exact-match flood fill over a
// canvas.Buffer.
//
// # Algorithm
//
// Fill recolors the maximal 4-connected region of pixels whose color equals
// the seed pixel's original color:
//
//  1. Read the target color at the seed.
//  2. If the target already equals the fill color, return 0 without doing any
//     work. Without this check the fill would keep revisiting its own output.
//  3. Push the seed on an explicit work stack. Pop a point; discard it if it is
//     outside the buffer or its color is not exactly the target. Otherwise
//     paint it, count it, and push its four axis neighbours without
//     pre-checking bounds.
//  4. Stop when the stack is empty.
//
// The fill is iterative rather than recursive so large regions never grow the
// goroutine stack. Matching is exact per channel with no tolerance, so fills
// against anti-aliased edges stop at a ragged, pixel-exact boundary.
//
// # Complexity
//
// O(region size) time. The work stack holds at most a few entries per
// frontier pixel because neighbours are pushed unchecked and filtered on pop.
package fill
