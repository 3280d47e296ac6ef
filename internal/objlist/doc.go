// Package objlist coordinates the presentation state of a frame's object list.
//
// # Overview
//
// A labeling job shows every annotated object on the current frame in a side
// list. This package decides the order the list is drawn in, computes the
// list-wide indicators (is everything hidden, locked, collapsed) and turns the
// bulk buttons and keyboard shortcuts into changes for the session backend.
// It does not draw anything and it does not talk HTTP; the ui and session
// packages do that.
//
// # Components
//
//   - sort.go: Sort orders client ids by id (ascending/descending) or by
//     most recent update, stable for equal versions
//   - aggregate.go: Aggregate folds a collection into Flags
//   - mutate.go: Mutator prepares value copies for a bulk lock/hide change and
//     persists them with one backend call
//   - filters.go: FilterController replaces the filter sequence and refetches
//   - view.go: ViewState and the pure Recompute function
//   - coordinator.go: Coordinator, the owner of ViewState used by the ui
//   - shortcuts.go: the shortcut table and the sequence Matcher
//
// # Data Flow
//
//	Backend.Fetch ──> *Collection ──> Coordinator.OnCollectionChanged
//	                                        │ Recompute (identity check, Sort)
//	                                        v
//	                                    ViewState ──> ui renders OrderedIDs + Flags
//
//	key / button ──> Coordinator.ToggleLockAll ──> Mutation ──> Commit ──> Backend.Persist
//	filter input ──> Coordinator.SetFilters ──> FilterChange ──> ApplyFilters
//	                                              (UpdateFilters, then Fetch)
//
// # Collections and Identity
//
// A *Collection is one fetched version of a frame. The pointer is the identity:
// handing the coordinator the collection it already holds does not re-sort,
// while any new pointer rebuilds the view from scratch. Callers must treat a
// collection as read-only once published.
//
// # Bulk Changes
//
// Bulk changes never write to the held collection. Prepare returns a Mutation
// with fresh copies; Commit sends them in a single Persist. The new state only
// becomes visible after the backend is refetched, which keeps the renderer from
// ever observing a half-applied change.
//
// # Threading
//
// Coordinator methods other than Commit and ApplyFilters are expected to run
// on one event loop (the Bubble Tea update loop in this project). Commit and
// ApplyFilters only touch the backend and the filter controller's own lock, so
// they may run in a tea.Cmd goroutine.
//
// # Errors
//
// Empty collections are valid everywhere. Backend errors are wrapped and
// returned, never retried. An Ordering outside the enumeration is a programming
// error and panics rather than falling back to a default.
package objlist
