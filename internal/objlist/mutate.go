package objlist

import (
	"context"
	"fmt"
	"time"
)

// Field names the boolean attribute a bulk mutation sets.
type Field int

const (
	FieldLock Field = iota
	FieldHidden
)

func (f Field) String() string {
	switch f {
	case FieldLock:
		return "lock"
	case FieldHidden:
		return "hidden"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// Mutation is a prepared bulk change: the full set of updated copies that will
// be handed to the backend in a single Persist call.
type Mutation struct {
	Session Session
	Frame   int
	Field   Field
	Value   bool
	States  []ObjectState
}

// Empty reports whether the mutation carries no objects.
func (m Mutation) Empty() bool {
	return len(m.States) == 0
}

// Mutator applies uniform lock/hidden changes across a frame's objects.
type Mutator struct {
	backend Backend
	now     func() int64
}

// NewMutator returns a Mutator persisting through backend.
func NewMutator(backend Backend) *Mutator {
	return &Mutator{
		backend: backend,
		now:     func() int64 { return time.Now().UnixMilli() },
	}
}

// Prepare copies states and sets field to value on every copy. All copies share
// one new Updated version that is newer than any version in the input. The
// caller's slice is never written.
func (m *Mutator) Prepare(session Session, frame int, states []ObjectState, field Field, value bool) Mutation {
	updated := cloneStates(states)
	version := m.nextVersion(states)
	for i := range updated {
		switch field {
		case FieldLock:
			updated[i].Lock = value
		case FieldHidden:
			updated[i].Hidden = value
		default:
			panic(fmt.Sprintf("objlist: invalid field %d", int(field)))
		}
		updated[i].Updated = version
	}
	return Mutation{Session: session, Frame: frame, Field: field, Value: value, States: updated}
}

// Apply hands the whole mutation to the backend in one Persist call. Empty
// mutations are still persisted so the backend observes every request.
func (m *Mutator) Apply(ctx context.Context, mut Mutation) error {
	if m == nil || m.backend == nil {
		return fmt.Errorf("mutator has no backend")
	}
	if err := m.backend.Persist(ctx, mut.Session, mut.Frame, mut.States); err != nil {
		return fmt.Errorf("persist %s=%t for %d objects: %w", mut.Field, mut.Value, len(mut.States), err)
	}
	return nil
}

// SetLockForAll locks or unlocks every object and persists the result.
func (m *Mutator) SetLockForAll(ctx context.Context, session Session, frame int, states []ObjectState, locked bool) ([]ObjectState, error) {
	mut := m.Prepare(session, frame, states, FieldLock, locked)
	return mut.States, m.Apply(ctx, mut)
}

// SetHiddenForAll hides or shows every object and persists the result.
func (m *Mutator) SetHiddenForAll(ctx context.Context, session Session, frame int, states []ObjectState, hidden bool) ([]ObjectState, error) {
	mut := m.Prepare(session, frame, states, FieldHidden, hidden)
	return mut.States, m.Apply(ctx, mut)
}

func (m *Mutator) nextVersion(states []ObjectState) int64 {
	version := m.now()
	for _, st := range states {
		if st.Updated >= version {
			version = st.Updated + 1
		}
	}
	return version
}
