// Package app is the composition root for framelist.
//
// # Overview
//
// Run builds every collaborator from an already loaded config.Config, checks
// that the job is reachable and then runs the background poller and the TUI
// side by side until one of them stops.
//
// # Startup
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> newLogger()          slog text handler on the log file
//	       ├─────> prefs.Load()         saved theme and ordering
//	       ├─────> newBackend()         session.Client or session.Memory (demo)
//	       ├─────> FetchJob()           pre-flight, 3 second timeout
//	       ├─────> UpdateFilters()      only when filters are configured
//	       ├─────> state.NewStore()     frame, frame count, first fetch
//	       └─────> errgroup
//	                 ├─> runPoller()    background refresh
//	                 └─> ui.Run()       blocks until quit
//
// The poller and the UI share one errgroup context. Quitting the UI cancels
// the poller; a poller error cancels the UI.
//
// # Polling
//
// runPoller fetches the current frame through a state.Store ticket every poll
// interval (default 2 seconds). After consecutive failures the delay doubles
// up to 30 seconds and drops back to the base interval on the next success.
// The UI reads store snapshots on its own tick, so a slow server never blocks
// key handling.
//
// # Errors
//
// Fatal (returned from Run):
//   - log file cannot be opened
//   - backend construction fails (bad server address)
//   - pre-flight FetchJob fails or the requested frame is out of range
//   - configured filters are rejected
//
// Recoverable (logged and shown in the UI):
//   - periodic fetch failures, including timeouts
//   - rejected bulk changes and filter updates
//
// # Preferences
//
// A saved ordering replaces the configured one unless Options.OrderingOverride
// is set, which the CLI does for an explicit --ordering flag.
package app
