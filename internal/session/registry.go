package session

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/ironsheep/canvas-tools-mcp/internal/canvas"
)

// DefaultID names the canvas tools use when the caller does not pick one.
const DefaultID = "default"

// ErrUnknownCanvas is returned by Get for an ID with no session.
var ErrUnknownCanvas = errors.New("unknown canvas")

// Registry holds the open sessions keyed by canvas ID.
//
// Registry is safe for concurrent use by multiple goroutines.
//
// # Example Usage
//
//	reg := session.NewRegistry()
//	s, err := reg.Create("sketch", 640, 480, canvas.White, 50)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// Use s...
//	reg.Delete("sketch")
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
	}
}

// Create starts a new session under id, replacing any session already
// registered with that ID.
func (r *Registry) Create(id string, width, height int, background canvas.Color, historyDepth int) (*Session, error) {
	if id == "" {
		id = DefaultID
	}
	s, err := New(width, height, background, historyDepth)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()

	return s, nil
}

// Get returns the session registered under id. An empty id selects DefaultID.
func (r *Registry) Get(id string) (*Session, error) {
	if id == "" {
		id = DefaultID
	}

	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCanvas, id)
	}
	return s, nil
}

// Delete removes the session registered under id and reports whether one
// existed.
func (r *Registry) Delete(id string) bool {
	if id == "" {
		id = DefaultID
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	return ok
}

// Clear removes every session.
func (r *Registry) Clear() {
	r.mu.Lock()
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()
}

// IDs returns the registered canvas IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	sort.Strings(ids)
	return ids
}
