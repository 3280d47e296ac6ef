package objlist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCoordinator(t *testing.T, ordering Ordering, states []ObjectState) (*Coordinator, *fakeBackend, *mapCollapse) {
	t.Helper()
	backend := &fakeBackend{objects: cloneStates(states)}
	collapse := &mapCollapse{}
	c := NewCoordinator(backend, collapse, Options{Session: "job", Ordering: ordering})
	require.True(t, c.OnCollectionChanged(&Collection{Version: 1, States: states}))
	return c, backend, collapse
}

// refetch mimics the host: fetch after a commit and hand over a new collection.
func refetch(t *testing.T, c *Coordinator, backend *fakeBackend, version uint64) {
	t.Helper()
	states, err := backend.Fetch(context.Background(), c.Session(), c.Frame())
	require.NoError(t, err)
	c.OnCollectionChanged(&Collection{Version: version, Frame: c.Frame(), States: states})
}

func TestCoordinator_ScenarioOrders(t *testing.T) {
	c, _, _ := newTestCoordinator(t, Updated, scenarioStates())
	assert.Equal(t, []int{1, 2}, c.OrderedIDs())

	flags := c.Flags()
	assert.False(t, flags.AllHidden)
	assert.False(t, flags.AllLocked)

	c.ChangeOrdering(IDDescent)
	assert.Equal(t, IDDescent, c.Ordering())
	assert.Equal(t, []int{2, 1}, c.OrderedIDs())
}

func TestCoordinator_ChangeOrderingDoesNotFetch(t *testing.T) {
	c, backend, _ := newTestCoordinator(t, IDAscent, scenarioStates())
	c.ChangeOrdering(Updated)
	assert.Empty(t, backend.calls)
}

func TestCoordinator_SameCollectionShortCircuits(t *testing.T) {
	backend := &fakeBackend{}
	c := NewCoordinator(backend, nil, Options{Ordering: IDAscent})
	coll := &Collection{States: scenarioStates()}

	assert.True(t, c.OnCollectionChanged(coll))
	before := c.View()
	assert.False(t, c.OnCollectionChanged(coll))
	assert.Same(t, before.Source, c.View().Source)

	// Equal contents under a new identity still rebuild the view.
	assert.True(t, c.OnCollectionChanged(&Collection{States: scenarioStates()}))
}

func TestCoordinator_IgnoresOtherFrames(t *testing.T) {
	c := NewCoordinator(&fakeBackend{}, nil, Options{Frame: 2})
	assert.False(t, c.OnCollectionChanged(&Collection{Frame: 1, States: scenarioStates()}))
	assert.Empty(t, c.OrderedIDs())

	c.SetFrame(1)
	assert.True(t, c.OnCollectionChanged(&Collection{Frame: 1, States: scenarioStates()}))
	assert.Len(t, c.OrderedIDs(), 2)

	c.SetFrame(3)
	assert.Nil(t, c.Collection())
	assert.Empty(t, c.OrderedIDs())
}

func TestCoordinator_ToggleLockAllScenario(t *testing.T) {
	c, backend, _ := newTestCoordinator(t, Updated, scenarioStates())

	mut := c.ToggleLockAll()
	require.NoError(t, c.Commit(context.Background(), mut))

	require.Equal(t, []string{"persist"}, backend.kinds())
	persisted := backend.calls[0].states
	require.Len(t, persisted, 2)
	for _, st := range persisted {
		assert.True(t, st.Lock)
	}
	// The held collection is not written in place.
	assert.False(t, c.Collection().States[0].Lock)
}

func TestCoordinator_ToggleTwiceRestoresFlags(t *testing.T) {
	c, backend, _ := newTestCoordinator(t, IDAscent, scenarioStates())
	ctx := context.Background()

	startLocked := c.Flags().AllLocked
	require.NoError(t, c.Commit(ctx, c.ToggleLockAll()))
	refetch(t, c, backend, 2)
	assert.Equal(t, !startLocked, c.Flags().AllLocked)
	require.NoError(t, c.Commit(ctx, c.ToggleLockAll()))
	refetch(t, c, backend, 3)
	assert.Equal(t, startLocked, c.Flags().AllLocked)

	startHidden := c.Flags().AllHidden
	require.NoError(t, c.Commit(ctx, c.ToggleHiddenAll()))
	refetch(t, c, backend, 4)
	assert.Equal(t, !startHidden, c.Flags().AllHidden)
	require.NoError(t, c.Commit(ctx, c.ToggleHiddenAll()))
	refetch(t, c, backend, 5)
	assert.Equal(t, startHidden, c.Flags().AllHidden)
}

func TestCoordinator_ToggleUnlocksWhenAllLocked(t *testing.T) {
	states := []ObjectState{{ClientID: 1, Lock: true}, {ClientID: 2, Lock: true}}
	c, _, _ := newTestCoordinator(t, IDAscent, states)

	mut := c.ToggleLockAll()
	assert.Equal(t, FieldLock, mut.Field)
	assert.False(t, mut.Value)
}

func TestCoordinator_ExplicitBulkActions(t *testing.T) {
	c, _, _ := newTestCoordinator(t, IDAscent, scenarioStates())

	assert.True(t, c.LockAll().Value)
	assert.False(t, c.UnlockAll().Value)
	assert.True(t, c.HideAll().Value)
	assert.Equal(t, FieldHidden, c.ShowAll().Field)
	assert.False(t, c.ShowAll().Value)
}

func TestCoordinator_EmptyCollection(t *testing.T) {
	backend := &fakeBackend{}
	c := NewCoordinator(backend, &mapCollapse{}, Options{})

	assert.Equal(t, Flags{AllHidden: true, AllLocked: true, AllCollapsed: true}, c.Flags())
	mut := c.ToggleLockAll()
	assert.True(t, mut.Empty())
	assert.False(t, mut.Value, "vacuously all locked, so the toggle unlocks")
	require.NoError(t, c.Commit(context.Background(), mut))
	c.ToggleCollapseAll()
	c.ExpandAll()
}

func TestCoordinator_CollapseDelegatesToStore(t *testing.T) {
	c, backend, collapse := newTestCoordinator(t, IDAscent, scenarioStates())

	assert.True(t, c.Flags().AllCollapsed)
	c.ToggleCollapseAll()
	assert.False(t, c.Flags().AllCollapsed)
	assert.False(t, collapse.m[1])
	assert.False(t, collapse.m[2])

	c.ToggleCollapseAll()
	assert.True(t, c.Flags().AllCollapsed)

	c.ExpandAll()
	assert.False(t, c.Collapsed(1))
	c.ToggleCollapsed(1)
	assert.True(t, c.Collapsed(1))
	c.ToggleCollapsed(404)

	c.CollapseAll()
	assert.True(t, c.Flags().AllCollapsed)
	assert.Empty(t, backend.calls, "collapse state never reaches the persistence backend")
}

func TestCoordinator_SetFiltersSequence(t *testing.T) {
	c, backend, _ := newTestCoordinator(t, IDAscent, scenarioStates())

	change := c.SetFilters([]string{"width>50"})
	assert.Equal(t, []string{"width>50"}, c.Filters())

	states, err := c.ApplyFilters(context.Background(), change)
	require.NoError(t, err)
	assert.Len(t, states, 2)

	require.Equal(t, []string{"filters", "fetch"}, backend.kinds())
	assert.Equal(t, []string{"width>50"}, backend.calls[0].filters)
}

func TestCoordinator_DispatchSharesToggleLogic(t *testing.T) {
	c, _, _ := newTestCoordinator(t, IDAscent, scenarioStates())

	viaShortcut, ok := c.Dispatch(ActionToggleLockAll)
	require.True(t, ok)
	viaButton := c.ToggleLockAll()
	assert.Equal(t, viaButton.Field, viaShortcut.Field)
	assert.Equal(t, viaButton.Value, viaShortcut.Value)

	viaShortcut, ok = c.Dispatch(ActionToggleHiddenAll)
	require.True(t, ok)
	assert.Equal(t, FieldHidden, viaShortcut.Field)
	assert.True(t, viaShortcut.Value)

	_, ok = c.Dispatch(ActionNone)
	assert.False(t, ok)
}

func TestRecompute_IsPure(t *testing.T) {
	coll := &Collection{States: scenarioStates()}
	prev := NewViewState(IDDescent)

	next := Recompute(prev, coll)
	assert.Equal(t, []int{2, 1}, next.OrderedIDs)
	assert.Nil(t, prev.Source)

	again := Recompute(next, coll)
	assert.Equal(t, next, again)

	cleared := Recompute(next, nil)
	assert.Nil(t, cleared.Source)
	assert.Empty(t, cleared.OrderedIDs)
	assert.Equal(t, IDDescent, cleared.Ordering)
}
