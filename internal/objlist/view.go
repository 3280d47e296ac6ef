package objlist

// ViewState is the derived list state: the active ordering, the collection it
// was computed from and the resulting id order.
type ViewState struct {
	Ordering   Ordering
	Source     *Collection
	OrderedIDs []int
}

// NewViewState returns an empty view using ordering.
func NewViewState(ordering Ordering) ViewState {
	mustBeValid(ordering)
	return ViewState{Ordering: ordering}
}

// Recompute derives the view for next. When next is the collection prev was
// built from, prev is returned as is and no sort happens. Otherwise a fresh
// view is built; nothing from prev other than the ordering carries over.
func Recompute(prev ViewState, next *Collection) ViewState {
	if next == prev.Source {
		return prev
	}
	return ViewState{
		Ordering:   prev.Ordering,
		Source:     next,
		OrderedIDs: Sort(next.Objects(), prev.Ordering),
	}
}

// WithOrdering re-sorts the current source under ordering.
func (v ViewState) WithOrdering(ordering Ordering) ViewState {
	return ViewState{
		Ordering:   ordering,
		Source:     v.Source,
		OrderedIDs: Sort(v.Source.Objects(), ordering),
	}
}
