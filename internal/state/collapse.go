package state

import (
	"sync"

	"github.com/five82/framelist/internal/objlist"
)

var _ objlist.CollapseStore = (*Collapse)(nil)

// Collapse is the view-local expand/collapse map. It outlives frame changes,
// so it may hold ids that are not on the current frame.
type Collapse struct {
	mu sync.RWMutex
	m  objlist.CollapsedMap
}

// SetCollapsed sets every listed object to collapsed.
func (c *Collapse) SetCollapsed(states []objlist.ObjectState, collapsed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.m == nil {
		c.m = make(objlist.CollapsedMap, len(states))
	}
	for _, st := range states {
		c.m[st.ClientID] = collapsed
	}
}

// CollapsedMap returns a copy of the map.
func (c *Collapse) CollapsedMap() objlist.CollapsedMap {
	c.mu.RLock()
	defer c.mu.RUnlock()
	dup := make(objlist.CollapsedMap, len(c.m))
	for id, collapsed := range c.m {
		dup[id] = collapsed
	}
	return dup
}
