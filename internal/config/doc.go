// Package config loads framelist's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/framelist/config.toml (default)
//  3. If the config file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing/empty, use defaults
//
// Command-line flags are applied on top of the loaded Config by cmd/framelist.
//
// # Default Values
//
//   - Config file: ~/.config/framelist/config.toml
//   - Session server: 127.0.0.1:8080
//   - Job: default
//   - Frame: 0
//   - Poll interval: 2s
//   - Log file: ~/.local/state/framelist/framelist.log
//   - Ordering: id-ascent
//
// # File Format
//
//	server = "labels.internal:8080"
//	job = "job-42"
//	frame = 0
//	poll_seconds = 2
//	log_file = "~/.local/state/framelist/framelist.log"
//	ordering = "updated"          # id-ascent | id-descent | updated
//	filters = ["width>50"]        # passed to the server unchanged
//	demo = false                  # use the in-process demo backend
//
// # Error Handling
//
// A missing file is not an error. Unreadable files, invalid TOML, an unknown
// ordering name and a negative frame are, and are wrapped with context:
//
//	open config: permission denied
//	parse config: unknown ordering: "newest"
//
// Paths starting with ~ are expanded against the user's home directory.
package config
