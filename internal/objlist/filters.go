package objlist

import (
	"context"
	"fmt"
	"sync"
)

// FilterChange is a filter replacement waiting to be sent to the backend.
type FilterChange struct {
	Session Session
	Frame   int
	Filters []string
}

// FilterController owns the active filter sequence. Filters are opaque strings
// passed through unchanged; an empty sequence means no filtering.
type FilterController struct {
	backend Backend

	mu      sync.RWMutex
	filters []string
}

// NewFilterController returns a controller starting from initial.
func NewFilterController(backend Backend, initial []string) *FilterController {
	return &FilterController{backend: backend, filters: cloneStrings(initial)}
}

// Filters returns a copy of the active filter sequence.
func (f *FilterController) Filters() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return cloneStrings(f.filters)
}

// Replace swaps the active filters immediately and returns the change that
// Apply must send. Updating local state first means any refetch issued after
// Replace already sees the new filters.
func (f *FilterController) Replace(session Session, frame int, filters []string) FilterChange {
	f.mu.Lock()
	f.filters = cloneStrings(filters)
	f.mu.Unlock()
	return FilterChange{Session: session, Frame: frame, Filters: cloneStrings(filters)}
}

// Apply notifies the backend of the new filters and then refetches the frame.
// The fetch is only issued once the filter update has returned.
func (f *FilterController) Apply(ctx context.Context, change FilterChange) ([]ObjectState, error) {
	if f.backend == nil {
		return nil, fmt.Errorf("filter controller has no backend")
	}
	if err := f.backend.UpdateFilters(ctx, change.Session, change.Filters); err != nil {
		return nil, fmt.Errorf("update filters: %w", err)
	}
	states, err := f.backend.Fetch(ctx, change.Session, change.Frame)
	if err != nil {
		return nil, fmt.Errorf("fetch frame %d: %w", change.Frame, err)
	}
	return states, nil
}

// SetFilters replaces the active filters and refetches under them.
func (f *FilterController) SetFilters(ctx context.Context, session Session, frame int, filters []string) ([]ObjectState, error) {
	return f.Apply(ctx, f.Replace(session, frame, filters))
}
