package objlist

import (
	"context"
	"slices"
)

// Options configure a Coordinator.
type Options struct {
	Session  Session
	Frame    int
	Ordering Ordering
	Filters  []string
}

// Coordinator owns the list's view state and routes user actions to the
// mutator, the filter controller and the collapse store. It is meant to be
// driven from a single event loop; only the Commit and ApplyFilters calls
// touch the backend and may run elsewhere.
type Coordinator struct {
	session  Session
	frame    int
	view     ViewState
	mutator  *Mutator
	filters  *FilterController
	collapse CollapseStore
}

// NewCoordinator builds a coordinator over backend and collapse.
func NewCoordinator(backend Backend, collapse CollapseStore, opts Options) *Coordinator {
	return &Coordinator{
		session:  opts.Session,
		frame:    opts.Frame,
		view:     NewViewState(opts.Ordering),
		mutator:  NewMutator(backend),
		filters:  NewFilterController(backend, opts.Filters),
		collapse: collapse,
	}
}

// Session returns the job handle the coordinator works against.
func (c *Coordinator) Session() Session { return c.session }

// Frame returns the frame number currently shown.
func (c *Coordinator) Frame() int { return c.frame }

// SetFrame switches frames. The held collection belongs to the old frame, so
// the view is cleared until the next collection arrives.
func (c *Coordinator) SetFrame(frame int) {
	if frame == c.frame {
		return
	}
	c.frame = frame
	c.view = NewViewState(c.view.Ordering)
}

// View returns the current view state. OrderedIDs is a copy.
func (c *Coordinator) View() ViewState {
	v := c.view
	v.OrderedIDs = slices.Clone(c.view.OrderedIDs)
	return v
}

// Ordering returns the active ordering.
func (c *Coordinator) Ordering() Ordering { return c.view.Ordering }

// OrderedIDs returns the current id order.
func (c *Coordinator) OrderedIDs() []int { return slices.Clone(c.view.OrderedIDs) }

// Collection returns the collection the view was computed from.
func (c *Coordinator) Collection() *Collection { return c.view.Source }

// Filters returns the active filter sequence.
func (c *Coordinator) Filters() []string { return c.filters.Filters() }

// ChangeOrdering re-sorts the held collection. Nothing is refetched.
func (c *Coordinator) ChangeOrdering(ordering Ordering) {
	mustBeValid(ordering)
	c.view = c.view.WithOrdering(ordering)
}

// OnCollectionChanged adopts next and reports whether the view was recomputed.
// Handing back the collection already held is a no-op.
func (c *Coordinator) OnCollectionChanged(next *Collection) bool {
	if next != nil && next.Frame != c.frame {
		return false
	}
	prev := c.view
	c.view = Recompute(prev, next)
	return c.view.Source != prev.Source
}

// Flags aggregates the held collection against the collapse store.
func (c *Coordinator) Flags() Flags {
	return Aggregate(c.view.Source.Objects(), c.collapsedMap())
}

// ToggleLockAll locks everything unless everything is already locked.
func (c *Coordinator) ToggleLockAll() Mutation {
	return c.setAll(FieldLock, !c.Flags().AllLocked)
}

// ToggleHiddenAll hides everything unless everything is already hidden.
func (c *Coordinator) ToggleHiddenAll() Mutation {
	return c.setAll(FieldHidden, !c.Flags().AllHidden)
}

// LockAll prepares locking every object.
func (c *Coordinator) LockAll() Mutation { return c.setAll(FieldLock, true) }

// UnlockAll prepares unlocking every object.
func (c *Coordinator) UnlockAll() Mutation { return c.setAll(FieldLock, false) }

// HideAll prepares hiding every object.
func (c *Coordinator) HideAll() Mutation { return c.setAll(FieldHidden, true) }

// ShowAll prepares showing every object.
func (c *Coordinator) ShowAll() Mutation { return c.setAll(FieldHidden, false) }

// Commit persists a prepared mutation with a single backend call.
func (c *Coordinator) Commit(ctx context.Context, mut Mutation) error {
	return c.mutator.Apply(ctx, mut)
}

// ToggleCollapseAll collapses everything unless everything is already
// collapsed, in which case it expands everything.
func (c *Coordinator) ToggleCollapseAll() {
	c.setCollapsed(c.view.Source.Objects(), !c.Flags().AllCollapsed)
}

// CollapseAll collapses every object.
func (c *Coordinator) CollapseAll() { c.setCollapsed(c.view.Source.Objects(), true) }

// ExpandAll expands every object.
func (c *Coordinator) ExpandAll() { c.setCollapsed(c.view.Source.Objects(), false) }

// ToggleCollapsed flips a single object.
func (c *Coordinator) ToggleCollapsed(clientID int) {
	st, ok := c.view.Source.Lookup(clientID)
	if !ok {
		return
	}
	c.setCollapsed([]ObjectState{st}, !c.collapsedMap().Collapsed(clientID))
}

// Collapsed reports whether one object is collapsed.
func (c *Coordinator) Collapsed(clientID int) bool {
	return c.collapsedMap().Collapsed(clientID)
}

// SetFilters replaces the active filters and returns the change to apply.
func (c *Coordinator) SetFilters(filters []string) FilterChange {
	return c.filters.Replace(c.session, c.frame, filters)
}

// ApplyFilters sends a filter change and refetches under it.
func (c *Coordinator) ApplyFilters(ctx context.Context, change FilterChange) ([]ObjectState, error) {
	return c.filters.Apply(ctx, change)
}

// Dispatch runs a shortcut action. Shortcuts share the toggle code with the
// explicit buttons.
func (c *Coordinator) Dispatch(action Action) (Mutation, bool) {
	switch action {
	case ActionToggleLockAll:
		return c.ToggleLockAll(), true
	case ActionToggleHiddenAll:
		return c.ToggleHiddenAll(), true
	default:
		return Mutation{}, false
	}
}

func (c *Coordinator) setAll(field Field, value bool) Mutation {
	return c.mutator.Prepare(c.session, c.frame, c.view.Source.Objects(), field, value)
}

func (c *Coordinator) setCollapsed(states []ObjectState, collapsed bool) {
	if c.collapse == nil || len(states) == 0 {
		return
	}
	c.collapse.SetCollapsed(states, collapsed)
}

func (c *Coordinator) collapsedMap() CollapsedMap {
	if c.collapse == nil {
		return nil
	}
	return c.collapse.CollapsedMap()
}
