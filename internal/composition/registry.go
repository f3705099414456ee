package composition

import (
	"fmt"
	"sync"

	"github.com/san-kum/framekit/internal/display"
	"github.com/san-kum/framekit/internal/motion"
)

// Registry maps ids to compositions in registration order. Writes are
// serialized; reads may run concurrently with each other and with
// rendering.
type Registry struct {
	mu    sync.RWMutex
	byID  map[string]Composition
	order []string
}

func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]Composition)}
}

// Register validates c and adds it. A repeated id fails with
// motion.ErrDuplicateID and leaves the first registration in place.
func (r *Registry) Register(c Composition) error {
	if err := c.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[c.ID]; ok {
		return &motion.IDError{ID: c.ID, Wrapped: motion.ErrDuplicateID}
	}
	r.byID[c.ID] = c
	r.order = append(r.order, c.ID)
	return nil
}

// RegisterAll registers each composition in turn and stops at the first
// failure.
func (r *Registry) RegisterAll(cs ...Composition) error {
	for _, c := range cs {
		if err := r.Register(c); err != nil {
			return fmt.Errorf("register %q: %w", c.ID, err)
		}
	}
	return nil
}

// Resolve returns the composition with the given id.
func (r *Registry) Resolve(id string) (Composition, error) {
	r.mu.RLock()
	c, ok := r.byID[id]
	r.mu.RUnlock()
	if !ok {
		return Composition{}, &motion.IDError{ID: id, Wrapped: motion.ErrNotFound}
	}
	return c, nil
}

// RenderFrame resolves id and evaluates it at frame.
func (r *Registry) RenderFrame(id string, frame int) (display.Frame, error) {
	c, err := r.Resolve(id)
	if err != nil {
		return display.Frame{}, err
	}
	return c.Render(frame)
}

// IDs returns the registered ids in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
