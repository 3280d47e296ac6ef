package objlist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutator_SetLockForAllPersistsOnce(t *testing.T) {
	backend := &fakeBackend{}
	m := NewMutator(backend)
	m.now = func() int64 { return 100 }
	states := scenarioStates()

	updated, err := m.SetLockForAll(context.Background(), "job-1", 4, states, true)
	require.NoError(t, err)

	require.Len(t, backend.calls, 1)
	call := backend.calls[0]
	assert.Equal(t, "persist", call.kind)
	assert.Equal(t, Session("job-1"), call.session)
	assert.Equal(t, 4, call.frame)
	require.Len(t, call.states, 2)
	for _, st := range call.states {
		assert.True(t, st.Lock)
		assert.Equal(t, int64(100), st.Updated)
	}
	assert.Equal(t, call.states, updated)

	// The caller's copy is untouched.
	assert.Equal(t, scenarioStates(), states)
}

func TestMutator_SetHiddenForAll(t *testing.T) {
	backend := &fakeBackend{}
	m := NewMutator(backend)
	updated, err := m.SetHiddenForAll(context.Background(), "job", 0, scenarioStates(), false)
	require.NoError(t, err)
	for _, st := range updated {
		assert.False(t, st.Hidden)
	}
	assert.Equal(t, []string{"persist"}, backend.kinds())
}

func TestMutator_VersionNewerThanInput(t *testing.T) {
	m := NewMutator(&fakeBackend{})
	m.now = func() int64 { return 2 }

	mut := m.Prepare("job", 0, scenarioStates(), FieldLock, true)
	for _, st := range mut.States {
		assert.Equal(t, int64(6), st.Updated)
	}
}

func TestMutator_EmptyCollection(t *testing.T) {
	backend := &fakeBackend{}
	m := NewMutator(backend)

	updated, err := m.SetLockForAll(context.Background(), "job", 0, nil, true)
	require.NoError(t, err)
	assert.Empty(t, updated)
	assert.Equal(t, []string{"persist"}, backend.kinds())
}

func TestMutator_PersistErrorWrapped(t *testing.T) {
	backend := &fakeBackend{persistErr: errBoom}
	m := NewMutator(backend)

	_, err := m.SetLockForAll(context.Background(), "job", 0, scenarioStates(), true)
	require.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "lock=true")
}

func TestMutator_NilBackend(t *testing.T) {
	m := NewMutator(nil)
	err := m.Apply(context.Background(), Mutation{})
	assert.Error(t, err)
}
