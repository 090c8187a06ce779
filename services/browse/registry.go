package browse

import (
	"sync"

	"github.com/google/uuid"
)

// Registry hands out browse views keyed by opaque session ids. Views live for
// the process lifetime; the working set is a handful of concurrent clients.
type Registry struct {
	mu       sync.Mutex
	pageSize int
	views    map[string]*View
}

func NewRegistry(pageSize int) *Registry {
	return &Registry{pageSize: pageSize, views: make(map[string]*View)}
}

// Create makes a fresh view and returns its id.
func (r *Registry) Create() (string, *View) {
	id := uuid.NewString()
	v := NewView(r.pageSize)
	r.mu.Lock()
	r.views[id] = v
	r.mu.Unlock()
	return id, v
}

// Get looks up a view by id.
func (r *Registry) Get(id string) (*View, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.views[id]
	return v, ok
}

// Remove drops a view.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.views, id)
}
