package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/framelist/internal/objlist"
)

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes help
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.showLog {
		if key.Matches(msg, m.keys.WarnOnly) {
			m.warnOnly = !m.warnOnly
			return m, nil
		}
		m.showLog = false
		return m, nil
	}

	if m.editingFilters {
		return m.handleFilterKey(msg)
	}

	// Sequences are matched before single keys. A key that completes or
	// continues a sequence never reaches the bindings below.
	switch result, action := m.matcher.Feed(msg.String()); result {
	case objlist.Matched:
		mut, ok := m.coord.Dispatch(action)
		if !ok {
			return m, nil
		}
		return m.commit(mut)
	case objlist.Pending:
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.ViewLog):
		m.showLog = true
		m.logLines, m.logErr = nil, nil
		if m.logPath == "" {
			return m, nil
		}
		return m, loadLogCmd(m.logPath)

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.CycleOrdering):
		next := m.coord.Ordering().Next()
		m.keepSelection(func() { m.coord.ChangeOrdering(next) })
		m.logger.Debug("ordering changed", "ordering", next.String())
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.EditFilters):
		m.editingFilters = true
		m.filterInput.SetValue(joinFilters(m.coord.Filters()))
		m.filterInput.CursorEnd()
		return m, m.filterInput.Focus()

	case key.Matches(msg, m.keys.LockAll):
		return m.commit(m.coord.ToggleLockAll())

	case key.Matches(msg, m.keys.HideAll):
		return m.commit(m.coord.ToggleHiddenAll())

	case key.Matches(msg, m.keys.CollapseAll):
		m.coord.ToggleCollapseAll()
		m.clampSelection()
		return m, nil

	case key.Matches(msg, m.keys.ExpandAll):
		m.coord.ExpandAll()
		m.clampSelection()
		return m, nil

	case key.Matches(msg, m.keys.ToggleSelected):
		if id, ok := m.selectedID(); ok {
			m.coord.ToggleCollapsed(id)
			m.clampSelection()
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevFrame):
		return m.gotoFrame(m.coord.Frame() - 1)

	case key.Matches(msg, m.keys.NextFrame):
		return m.gotoFrame(m.coord.Frame() + 1)

	case key.Matches(msg, m.keys.Refresh):
		return m.refetch()
	}

	return m.handleListKey(msg)
}

// handleListKey moves the selection.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.coord.OrderedIDs())
	if count == 0 {
		return m, nil
	}
	half := maxInt(m.listHeight()/2, 1)

	switch {
	case key.Matches(msg, m.keys.Down):
		m.selected++
	case key.Matches(msg, m.keys.Up):
		m.selected--
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = count - 1
	case key.Matches(msg, m.keys.HalfPageDown):
		m.selected += half
	case key.Matches(msg, m.keys.HalfPageUp):
		m.selected -= half
	default:
		return m, nil
	}
	m.clampSelection()
	return m, nil
}

// handleFilterKey drives the filter editor.
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.editingFilters = false
		m.filterInput.Blur()
		return m.applyFilters(parseFilters(m.filterInput.Value()))

	case key.Matches(msg, m.keys.Cancel):
		m.editingFilters = false
		m.filterInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

// gotoFrame moves the store and the coordinator to frame and fetches it.
func (m Model) gotoFrame(frame int) (tea.Model, tea.Cmd) {
	if frame < 0 || (m.snapshot.Frames > 0 && frame >= m.snapshot.Frames) {
		return m, nil
	}
	if !m.store.SetFrame(frame) {
		return m, nil
	}
	m.logger.Info("frame changed", "frame", frame)
	m.applySnapshot(m.store.Snapshot())
	return m.refetch()
}

// parseFilters splits the editor text on ';'. Blank entries are dropped and
// the rest are passed through as typed, minus surrounding spaces.
func parseFilters(value string) []string {
	var filters []string
	for _, part := range strings.Split(value, ";") {
		if part = strings.TrimSpace(part); part != "" {
			filters = append(filters, part)
		}
	}
	return filters
}

func joinFilters(filters []string) string {
	return strings.Join(filters, "; ")
}
