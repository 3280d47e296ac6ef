package objlist

import (
	"context"
	"errors"
	"sync"
)

type backendCall struct {
	kind    string
	session Session
	frame   int
	filters []string
	states  []ObjectState
}

// fakeBackend records every call and serves Fetch from whatever was last
// persisted.
type fakeBackend struct {
	mu         sync.Mutex
	calls      []backendCall
	objects    []ObjectState
	persistErr error
	filterErr  error
	fetchErr   error
}

func (f *fakeBackend) Persist(_ context.Context, session Session, frame int, states []ObjectState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, backendCall{kind: "persist", session: session, frame: frame, states: cloneStates(states)})
	if f.persistErr != nil {
		return f.persistErr
	}
	f.objects = cloneStates(states)
	return nil
}

func (f *fakeBackend) UpdateFilters(_ context.Context, session Session, filters []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, backendCall{kind: "filters", session: session, filters: cloneStrings(filters)})
	return f.filterErr
}

func (f *fakeBackend) Fetch(_ context.Context, session Session, frame int) ([]ObjectState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, backendCall{kind: "fetch", session: session, frame: frame})
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return cloneStates(f.objects), nil
}

func (f *fakeBackend) kinds() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.kind
	}
	return out
}

type mapCollapse struct {
	m CollapsedMap
}

func (c *mapCollapse) SetCollapsed(states []ObjectState, collapsed bool) {
	if c.m == nil {
		c.m = CollapsedMap{}
	}
	for _, st := range states {
		c.m[st.ClientID] = collapsed
	}
}

func (c *mapCollapse) CollapsedMap() CollapsedMap {
	dup := make(CollapsedMap, len(c.m))
	for k, v := range c.m {
		dup[k] = v
	}
	return dup
}

var errBoom = errors.New("boom")

func scenarioStates() []ObjectState {
	return []ObjectState{
		{ClientID: 1, Lock: false, Hidden: false, Updated: 5},
		{ClientID: 2, Lock: false, Hidden: true, Updated: 3},
	}
}
