// Package history keeps bounded undo and redo stacks of canvas snapshots.
//
// The manager follows a manual save-point discipline: callers invoke Record
// immediately before every user mutation, so each mutation is exactly one
// undo step no matter how many pixels it touches. The two stacks change only
// through three events:
//
//	Record: push current state onto undo, clear redo
//	Undo:   move top of undo to the buffer, current state onto redo
//	Redo:   move top of redo to the buffer, current state onto undo
//
// Restores are synchronous raw pixel copies. Manager is not safe for
// concurrent use; the session package serializes access.
package history

import (
	"fmt"

	"github.com/ironsheep/canvas-tools-mcp/internal/canvas"
)

// DefaultCapacity is the maximum depth of each stack when none is configured.
const DefaultCapacity = 50

// MaxCapacity bounds the depth of each stack. Each step holds a full copy of
// the canvas pixels.
const MaxCapacity = 500

// Target is the state a Manager snapshots and restores. *canvas.Buffer
// satisfies it.
type Target interface {
	Snapshot() *canvas.Snapshot
	Restore(*canvas.Snapshot) error
}

// Manager holds the undo and redo stacks for one canvas.
type Manager struct {
	undo     *stack
	redo     *stack
	capacity int
}

// New creates a manager whose stacks each hold at most capacity snapshots.
// A capacity <= 0 selects DefaultCapacity; larger values are clamped to
// MaxCapacity.
func New(capacity int) *Manager {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if capacity > MaxCapacity {
		capacity = MaxCapacity
	}
	return &Manager{
		undo:     newStack(capacity),
		redo:     newStack(capacity),
		capacity: capacity,
	}
}

// Record saves the current state of t as an undo step and discards the redo
// history. Call it immediately before applying a mutation.
func (m *Manager) Record(t Target) {
	m.undo.push(t.Snapshot())
	m.redo.clear()
}

// Undo restores the most recent undo step into t and makes the replaced state
// available to Redo. It returns false when there is nothing to undo.
//
// If the restore fails neither stack is modified.
func (m *Manager) Undo(t Target) (bool, error) {
	return m.step(t, m.undo, m.redo)
}

// Redo re-applies the most recently undone step. It returns false when there
// is nothing to redo.
func (m *Manager) Redo(t Target) (bool, error) {
	return m.step(t, m.redo, m.undo)
}

func (m *Manager) step(t Target, from, to *stack) (bool, error) {
	snap := from.peek()
	if snap == nil {
		return false, nil
	}

	current := t.Snapshot()
	if err := t.Restore(snap); err != nil {
		return false, fmt.Errorf("restore history step: %w", err)
	}

	from.pop()
	to.push(current)
	return true, nil
}

// CanUndo reports whether Undo would change the target.
func (m *Manager) CanUndo() bool { return m.undo.len() > 0 }

// CanRedo reports whether Redo would change the target.
func (m *Manager) CanRedo() bool { return m.redo.len() > 0 }

// UndoDepth returns the number of available undo steps.
func (m *Manager) UndoDepth() int { return m.undo.len() }

// RedoDepth returns the number of available redo steps.
func (m *Manager) RedoDepth() int { return m.redo.len() }

// Capacity returns the maximum depth of each stack.
func (m *Manager) Capacity() int { return m.capacity }

// Reset drops all undo and redo steps.
func (m *Manager) Reset() {
	m.undo.clear()
	m.redo.clear()
}
