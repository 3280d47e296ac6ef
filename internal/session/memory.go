package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/five82/framelist/internal/objlist"
)

// Backend is everything the application needs from a session server.
type Backend interface {
	objlist.Backend
	FetchJob(ctx context.Context, session objlist.Session) (JobResponse, error)
}

var (
	_ Backend = (*Client)(nil)
	_ Backend = (*Memory)(nil)
)

// Memory is an in-process session backend used by demo mode and tests.
type Memory struct {
	mu      sync.Mutex
	frames  map[int][]objlist.ObjectState
	count   int
	filters []string
	latency time.Duration
	clock   int64
}

// NewMemory returns an empty backend with frameCount frames.
func NewMemory(frameCount int) *Memory {
	if frameCount <= 0 {
		frameCount = 1
	}
	return &Memory{frames: make(map[int][]objlist.ObjectState), count: frameCount}
}

// NewDemo returns a backend seeded with a few objects on every frame.
func NewDemo(frameCount int, latency time.Duration) *Memory {
	m := NewMemory(frameCount)
	m.latency = latency
	labels := []string{"car", "person", "bicycle", "traffic light", "dog"}
	shapes := []string{"rectangle", "polygon", "points", "polyline"}
	for frame := 0; frame < m.count; frame++ {
		n := 3 + frame%4
		states := make([]objlist.ObjectState, n)
		for i := range states {
			id := frame*100 + i + 1
			states[i] = objlist.ObjectState{
				ClientID: id,
				Label:    labels[(id+frame)%len(labels)],
				Shape:    shapes[id%len(shapes)],
				Hidden:   i%3 == 2,
				Lock:     i%4 == 1,
				Updated:  int64(n - i),
			}
		}
		m.frames[frame] = states
	}
	m.clock = 100
	return m
}

// Put replaces the stored objects for a frame without stamping versions.
func (m *Memory) Put(frame int, states []objlist.ObjectState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frames[frame] = cloneStates(states)
	if frame >= m.count {
		m.count = frame + 1
	}
}

// Filters returns the last filter sequence received.
func (m *Memory) Filters() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.filters...)
}

// Fetch implements objlist.Backend. Filters are recorded, not evaluated.
func (m *Memory) Fetch(ctx context.Context, _ objlist.Session, frame int) ([]objlist.ObjectState, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if frame < 0 || frame >= m.count {
		return nil, fmt.Errorf("frame %d out of range [0,%d)", frame, m.count)
	}
	return cloneStates(m.frames[frame]), nil
}

// Persist implements objlist.Backend. Objects are matched by client id:
// known ones are replaced in place, unknown ones are appended, and objects
// not mentioned are left alone. Objects without a version get one.
func (m *Memory) Persist(ctx context.Context, _ objlist.Session, frame int, states []objlist.ObjectState) error {
	if err := m.wait(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if frame < 0 || frame >= m.count {
		return fmt.Errorf("frame %d out of range [0,%d)", frame, m.count)
	}
	m.clock++
	stored := cloneStates(m.frames[frame])
	index := make(map[int]int, len(stored))
	for i, st := range stored {
		index[st.ClientID] = i
	}
	for _, st := range states {
		if st.Updated == 0 {
			st.Updated = m.clock
		}
		if i, ok := index[st.ClientID]; ok {
			stored[i] = st
			continue
		}
		index[st.ClientID] = len(stored)
		stored = append(stored, st)
	}
	m.frames[frame] = stored
	return nil
}

// UpdateFilters implements objlist.Backend.
func (m *Memory) UpdateFilters(ctx context.Context, _ objlist.Session, filters []string) error {
	if err := m.wait(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filters = append([]string(nil), filters...)
	return nil
}

// FetchJob reports the frame count.
func (m *Memory) FetchJob(_ context.Context, session objlist.Session) (JobResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return JobResponse{ID: string(session), Name: "demo", Frames: m.count}, nil
}

func (m *Memory) wait(ctx context.Context) error {
	if m.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(m.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func cloneStates(states []objlist.ObjectState) []objlist.ObjectState {
	if len(states) == 0 {
		return nil
	}
	dup := make([]objlist.ObjectState, len(states))
	copy(dup, states)
	return dup
}
