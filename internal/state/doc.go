// Package state provides thread-safe state shared between the poller and the UI.
//
// # Overview
//
// Two stores live here:
//
//   - Store: the latest fetched collection for the current frame, plus error
//     and frame bookkeeping
//   - Collapse: the view-local expand/collapse map (never sent to the server)
//
// # Architecture
//
// Fetches are started by three independent sources and complete whenever the
// server answers:
//
//	Poller tick ───────┐
//	Bulk change done ──┼──> store.Begin() ──> Backend.Fetch ──> store.Apply(ticket, ...)
//	Refresh key ───────┘                                             │
//	                                                                 v
//	                                     UI: store.Snapshot() ──> Coordinator.OnCollectionChanged
//
// # Sequence Tickets
//
// Every fetch takes a Ticket from Begin before it is sent. Apply accepts a
// result only if its ticket is newer than the last accepted one and was issued
// for the frame the store is on. A slow fetch that started before a bulk
// change therefore cannot overwrite the refreshed result that came back first,
// and a fetch for frame 7 cannot land after the user moved to frame 8.
//
//	t1 := store.Begin()   // poller
//	t2 := store.Begin()   // refresh after a bulk change
//	store.Apply(t2, fresh, nil) // accepted
//	store.Apply(t1, stale, nil) // dropped: older than t2
//
// A filter change is the exception: its fetch runs only after the server has
// accepted the new filters, so it takes its ticket with Issue once the result
// is in hand. That makes it newer than any fetch started while the update was
// in flight, since those may have been answered under the old filters.
//
// # Collection Identity
//
// Every accepted success publishes a new *objlist.Collection. Snapshot hands
// out the same pointer until the next accepted Apply, which lets the list
// coordinator skip re-sorting when the UI re-reads an unchanged store.
// Published collections are read-only.
//
// # Update Semantics
//
//	// Success: replace the collection
//	store.Apply(ticket, states, nil)
//	→ snapshot.Collection = new collection (Version+1)
//	→ snapshot.LastError = nil
//	→ snapshot.ConsecutiveFailures = 0
//
//	// Error: keep old data, record error
//	store.Apply(ticket, nil, err)
//	→ snapshot.Collection = <unchanged>
//	→ snapshot.LastError = err
//	→ snapshot.ConsecutiveFailures++
//
// Persist failures are not fetches; they go through RecordError so they are
// shown without counting toward IsOffline.
//
// # Concurrency Model
//
// Both stores use a readers-writer lock held only while copying. Network I/O
// and rendering happen outside the lock.
package state
