package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/five82/framelist/internal/objlist"
)

// keyMap defines all single-key bindings. Multi-key sequences come from the
// objlist shortcut table and are matched before these.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	ViewLog    key.Binding
	WarnOnly   key.Binding

	// List actions
	CycleOrdering  key.Binding
	EditFilters    key.Binding
	LockAll        key.Binding
	HideAll        key.Binding
	CollapseAll    key.Binding
	ExpandAll      key.Binding
	ToggleSelected key.Binding

	// Frames
	PrevFrame key.Binding
	NextFrame key.Binding
	Refresh   key.Binding

	// Navigation
	Up           key.Binding
	Down         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding

	// Filter input
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		ViewLog: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "View log"),
		),
		WarnOnly: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "Warnings only (in log)"),
		),

		CycleOrdering: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Cycle ordering"),
		),
		EditFilters: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Edit filters"),
		),
		LockAll: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Lock/unlock all"),
		),
		HideAll: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "Hide/show all"),
		),
		CollapseAll: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Collapse/expand all"),
		),
		ExpandAll: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "Expand all"),
		),
		ToggleSelected: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "Expand/collapse object"),
		),

		PrevFrame: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Previous frame"),
		),
		NextFrame: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Next frame"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refetch frame"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "Half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "Half page down"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Apply filters"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.CycleOrdering, k.EditFilters, k.LockAll, k.HideAll, k.CollapseAll, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.HalfPageDown, k.HalfPageUp},
		{k.CycleOrdering, k.EditFilters, k.ToggleSelected, k.CollapseAll, k.ExpandAll},
		{k.LockAll, k.HideAll},
		{k.PrevFrame, k.NextFrame, k.Refresh},
		{k.ViewLog, k.WarnOnly, k.CycleTheme, k.Help, k.Quit},
	}
}

// shortcutBindings exposes the sequence table as help entries.
func shortcutBindings(shortcuts []objlist.Shortcut) []key.Binding {
	bindings := make([]key.Binding, 0, len(shortcuts))
	for _, sc := range shortcuts {
		seq := strings.Join(sc.Keys, " ")
		bindings = append(bindings, key.NewBinding(
			key.WithKeys(seq),
			key.WithHelp(seq, sc.Help),
		))
	}
	return bindings
}
