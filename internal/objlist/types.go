package objlist

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ObjectState is one annotated object on the current frame.
type ObjectState struct {
	ClientID int    `json:"clientID"`
	Label    string `json:"label,omitempty"`
	Shape    string `json:"shape,omitempty"`
	Hidden   bool   `json:"hidden"`
	Lock     bool   `json:"lock"`
	Updated  int64  `json:"updated"`
}

// Collection is one fetched version of a frame's objects. Pointer identity is
// what distinguishes one collection from the next: a refetch always yields a
// new *Collection even when the contents are equal.
type Collection struct {
	Version uint64
	Frame   int
	States  []ObjectState
}

// Len reports the number of objects, tolerating a nil collection.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.States)
}

// Objects returns the states of c, or nil when c is nil.
func (c *Collection) Objects() []ObjectState {
	if c == nil {
		return nil
	}
	return c.States
}

// Lookup finds the state for a client id.
func (c *Collection) Lookup(clientID int) (ObjectState, bool) {
	for _, st := range c.Objects() {
		if st.ClientID == clientID {
			return st, true
		}
	}
	return ObjectState{}, false
}

// CollapsedMap tracks per-object expand/collapse state. Missing entries are
// collapsed.
type CollapsedMap map[int]bool

// Collapsed reports whether clientID is collapsed.
func (m CollapsedMap) Collapsed(clientID int) bool {
	collapsed, ok := m[clientID]
	if !ok {
		return true
	}
	return collapsed
}

// Session identifies the labeling job the frame belongs to.
type Session string

// Ordering selects how object ids are ordered in the list.
type Ordering int

const (
	IDAscent Ordering = iota
	IDDescent
	Updated
)

// ErrUnknownOrdering is returned when an ordering name cannot be parsed.
var ErrUnknownOrdering = errors.New("unknown ordering")

var orderingNames = [...]string{
	IDAscent:  "id-ascent",
	IDDescent: "id-descent",
	Updated:   "updated",
}

func (o Ordering) valid() bool {
	return o >= IDAscent && int(o) < len(orderingNames)
}

// String returns the canonical name of the ordering.
func (o Ordering) String() string {
	if !o.valid() {
		return fmt.Sprintf("Ordering(%d)", int(o))
	}
	return orderingNames[o]
}

// Label is the short header text for the ordering.
func (o Ordering) Label() string {
	switch o {
	case IDAscent:
		return "ID ↑"
	case IDDescent:
		return "ID ↓"
	case Updated:
		return "Updated"
	default:
		return o.String()
	}
}

// Next cycles through the orderings in declaration order.
func (o Ordering) Next() Ordering {
	mustBeValid(o)
	return Ordering((int(o) + 1) % len(orderingNames))
}

// ParseOrdering accepts the canonical names plus the upper-case enum spellings
// (ID_ASCENT, ID_DESCENT, UPDATED).
func ParseOrdering(value string) (Ordering, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.ReplaceAll(normalized, "_", "-")
	for i, name := range orderingNames {
		if name == normalized {
			return Ordering(i), nil
		}
	}
	return IDAscent, fmt.Errorf("%w: %q", ErrUnknownOrdering, value)
}

// mustBeValid panics on an ordering outside the closed enumeration. Such a value
// can only come from a programming error, so it is never defaulted.
func mustBeValid(o Ordering) {
	if !o.valid() {
		panic(fmt.Sprintf("objlist: invalid ordering %d", int(o)))
	}
}

// Backend is the persistence and session collaborator. Implementations may be
// slow; callers run them off the event loop.
type Backend interface {
	Persist(ctx context.Context, session Session, frame int, states []ObjectState) error
	UpdateFilters(ctx context.Context, session Session, filters []string) error
	Fetch(ctx context.Context, session Session, frame int) ([]ObjectState, error)
}

// CollapseStore holds view-local collapse state.
type CollapseStore interface {
	SetCollapsed(states []ObjectState, collapsed bool)
	CollapsedMap() CollapsedMap
}

func cloneStates(states []ObjectState) []ObjectState {
	if len(states) == 0 {
		return nil
	}
	dup := make([]ObjectState, len(states))
	copy(dup, states)
	return dup
}

func cloneStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	dup := make([]string, len(values))
	copy(dup, values)
	return dup
}
