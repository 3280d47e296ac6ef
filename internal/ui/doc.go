// Package ui provides the terminal interface for framelist.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model owns an objlist.Coordinator and is
// the only code that touches it: key presses, snapshot ticks and backend
// completions all arrive as messages on the Bubble Tea event loop, so the
// coordinator's view state is never shared between goroutines.
//
// Backend calls (bulk persist, filter update, frame fetch) run inside
// tea.Cmd functions and report back with persistDoneMsg and fetchDoneMsg.
// Fetch results go through state.Store tickets, so a slow fetch can never
// replace a newer one. A successful persist triggers a refetch, so the server
// copy is what gets displayed; a failed one is recorded in the store and shown
// in the indicator bar while the list keeps its last good collection.
//
// # Package Structure
//
//   - app.go: Options, Model, Init/Update/View, messages, commands and Run
//   - input.go: key handling, filter editor and frame navigation
//   - list.go: selection, scrolling and row rendering
//   - header.go: status line, aggregate indicators and footer
//   - help.go: help overlay built from the keymap and the sequence table
//   - logview.go: overlay with the tail of framelist's own log ("v")
//   - keys.go: bubbles/key bindings
//   - layout.go: layout constants
//   - strings.go: small text helpers
//   - theme.go: Dracula and Slate palettes and lipgloss styles
//   - style_helpers.go: BgStyle for seamless background colors
//
// # Keys
//
// Single keys are bound in keys.go. Multi-key sequences ("t l", "t h") come
// from objlist.DefaultShortcuts and are fed to an objlist.Matcher before the
// single-key bindings; a key that starts or completes a sequence is consumed.
//
// # Themes
//
// Two palettes are available (Dracula, Slate), cycled with "T". The choice and
// the list ordering are saved through internal/prefs.
package ui
