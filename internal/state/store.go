package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/framelist/internal/objlist"
)

// Snapshot represents the latest frame data available to the UI.
type Snapshot struct {
	Collection          *objlist.Collection
	Frame               int
	Frames              int
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive fetch failures
}

// IsOffline returns true when the server has been unreachable for multiple fetches.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Ticket identifies one fetch. Tickets are issued in increasing order.
type Ticket struct {
	Seq   uint64
	Frame int
}

// Store coordinates concurrent updates to the snapshot. Fetches from the
// poller, from filter changes and from bulk changes can complete in any order;
// tickets make sure only the newest issued result is ever shown.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	issued   uint64
	applied  uint64
	version  uint64
}

// NewStore returns a store positioned on frame.
func NewStore(frame int) *Store {
	return &Store{snapshot: Snapshot{Frame: frame}}
}

// Begin issues the ticket for a fetch of the current frame.
func (s *Store) Begin() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return Ticket{Seq: s.issued, Frame: s.snapshot.Frame}
}

// Issue issues a ticket for a fetch of frame, which may no longer be the
// current frame. Such a ticket is dropped by Apply.
func (s *Store) Issue(frame int) Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return Ticket{Seq: s.issued, Frame: frame}
}

// Apply records the outcome of the fetch identified by t and reports whether
// it was accepted. Results for another frame, or older than a result already
// applied, are dropped. When err is non-nil the previous data is kept but the
// error is recorded for visibility. Every accepted success publishes a new
// *Collection; published collections must not be modified.
func (s *Store) Apply(t Ticket, states []objlist.ObjectState, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.Frame != s.snapshot.Frame || t.Seq <= s.applied {
		return false
	}
	s.applied = t.Seq

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return true
	}

	s.version++
	s.snapshot.Collection = &objlist.Collection{
		Version: s.version,
		Frame:   s.snapshot.Frame,
		States:  cloneStates(states),
	}
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
	return true
}

// RecordError surfaces a failure that is not tied to a fetch, such as a
// rejected persist.
func (s *Store) RecordError(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.LastError = err
	s.snapshot.LastUpdated = time.Now()
}

// SetFrame moves the store to another frame. The held collection is dropped
// and every fetch issued so far becomes stale.
func (s *Store) SetFrame(frame int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if frame == s.snapshot.Frame {
		return false
	}
	s.snapshot.Frame = frame
	s.snapshot.Collection = nil
	s.applied = s.issued
	return true
}

// SetFrames records the job's frame count.
func (s *Store) SetFrames(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Frames = n
}

// Snapshot returns a copy of the current snapshot. The collection pointer is
// shared so callers can compare identities.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneStates(states []objlist.ObjectState) []objlist.ObjectState {
	dup := make([]objlist.ObjectState, len(states))
	copy(dup, states)
	return dup
}
