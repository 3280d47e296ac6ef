package objlist

import (
	"cmp"
	"slices"
)

// Sort returns the client ids of states in the requested order. The input is
// left untouched. Updated ordering puts the most recently changed object first
// and keeps input order for equal versions, which happens whenever a bulk
// change stamps several objects at once.
func Sort(states []ObjectState, ordering Ordering) []int {
	mustBeValid(ordering)

	ordered := cloneStates(states)
	switch ordering {
	case IDAscent:
		slices.SortStableFunc(ordered, func(a, b ObjectState) int {
			return cmp.Compare(a.ClientID, b.ClientID)
		})
	case IDDescent:
		slices.SortStableFunc(ordered, func(a, b ObjectState) int {
			return cmp.Compare(b.ClientID, a.ClientID)
		})
	case Updated:
		slices.SortStableFunc(ordered, func(a, b ObjectState) int {
			return cmp.Compare(b.Updated, a.Updated)
		})
	}

	ids := make([]int, len(ordered))
	for i, st := range ordered {
		ids[i] = st.ClientID
	}
	return ids
}
