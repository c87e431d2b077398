package history

import "github.com/ironsheep/canvas-tools-mcp/internal/canvas"

// stack is a bounded LIFO of snapshots, most recent last. Pushing beyond
// capacity evicts the oldest entry.
type stack struct {
	items    []*canvas.Snapshot
	capacity int
}

func newStack(capacity int) *stack {
	return &stack{capacity: capacity}
}

func (s *stack) push(snap *canvas.Snapshot) {
	if len(s.items) == s.capacity {
		// Drop the oldest; shift in place so the backing array is reused.
		copy(s.items, s.items[1:])
		s.items[len(s.items)-1] = nil
		s.items = s.items[:len(s.items)-1]
	}
	s.items = append(s.items, snap)
}

func (s *stack) peek() *canvas.Snapshot {
	if len(s.items) == 0 {
		return nil
	}
	return s.items[len(s.items)-1]
}

func (s *stack) pop() *canvas.Snapshot {
	n := len(s.items)
	if n == 0 {
		return nil
	}
	snap := s.items[n-1]
	s.items[n-1] = nil
	s.items = s.items[:n-1]
	return snap
}

func (s *stack) clear() {
	for i := range s.items {
		s.items[i] = nil
	}
	s.items = s.items[:0]
}

func (s *stack) len() int { return len(s.items) }
