package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/framelist/internal/objlist"
)

// selectedID returns the client id under the cursor.
func (m Model) selectedID() (int, bool) {
	ids := m.coord.OrderedIDs()
	if m.selected < 0 || m.selected >= len(ids) {
		return 0, false
	}
	return ids[m.selected], true
}

// keepSelection runs change and moves the cursor back onto the object it was
// on, if that object still exists.
func (m *Model) keepSelection(change func()) {
	id, ok := m.selectedID()
	change()
	if ok {
		if i := slices.Index(m.coord.OrderedIDs(), id); i >= 0 {
			m.selected = i
		}
	}
	m.clampSelection()
}

// clampSelection keeps the cursor inside the list and on screen.
func (m *Model) clampSelection() {
	count := len(m.coord.OrderedIDs())
	if m.selected >= count {
		m.selected = count - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	m.ensureVisible()
}

// ensureVisible scrolls so every line of the selected row is in view.
func (m *Model) ensureVisible() {
	if m.height == 0 {
		return
	}
	start, end := m.rowSpan(m.selected)
	height := m.listHeight()
	if end > m.offset+height {
		m.offset = end - height
	}
	if start < m.offset {
		m.offset = start
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// rowSpan returns the first line and one past the last line of row index.
func (m Model) rowSpan(index int) (start, end int) {
	line := 0
	for i, id := range m.coord.OrderedIDs() {
		h := m.rowHeight(id)
		if i == index {
			return line, line + h
		}
		line += h
	}
	return line, line
}

func (m Model) rowHeight(id int) int {
	if m.coord.Collapsed(id) {
		return 1
	}
	return 2
}

// listHeight is the number of lines available to rows.
func (m Model) listHeight() int {
	return maxInt(m.height-headerLines-footerLines, 1)
}

// renderList renders the visible part of the object list.
func (m Model) renderList() string {
	styles := m.theme.Styles()
	height := m.listHeight()

	coll := m.coord.Collection()
	if coll == nil {
		msg := "Loading frame..."
		if m.snapshot.LastError != nil {
			msg = "Frame unavailable"
		}
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, styles.MutedText.Render(msg))
	}
	if coll.Len() == 0 {
		msg := "No objects on this frame"
		if len(m.coord.Filters()) > 0 {
			msg = "No objects match the active filters"
		}
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, styles.MutedText.Render(msg))
	}

	var lines []string
	for i, id := range m.coord.OrderedIDs() {
		st, ok := coll.Lookup(id)
		if !ok {
			continue
		}
		lines = append(lines, m.renderRow(st, i == m.selected)...)
	}

	vp := viewport.New(m.width, height)
	vp.SetContent(strings.Join(lines, "\n"))
	vp.SetYOffset(m.offset)
	return vp.View()
}

// renderRow renders one object as one line, plus a detail line when expanded.
func (m Model) renderRow(st objlist.ObjectState, selected bool) []string {
	styles := m.theme.Styles()
	collapsed := m.coord.Collapsed(st.ClientID)
	compact := m.width < LayoutCompactWidth

	marker := "▸"
	if !collapsed {
		marker = "▾"
	}
	labelWidth, shapeWidth := 18, 10
	if compact {
		labelWidth, shapeWidth = 12, 8
	}

	label := st.Label
	if label == "" {
		label = "-"
	}
	lockBadge := styles.FaintText
	if st.Lock {
		lockBadge = styles.LockedBadge
	}
	hiddenBadge := styles.FaintText
	if st.Hidden {
		hiddenBadge = styles.HiddenBadge
	}

	bg := NewBgStyle(m.theme.Background)
	if selected {
		bg = NewBgStyle(m.theme.SelectionBg)
		styles.Text = styles.Selected
		styles.MutedText = styles.MutedText.Foreground(styles.Selected.GetForeground())
	}

	parts := []string{
		bg.Render(marker, styles.AccentText),
		bg.Render(padRight(fmt.Sprintf("#%d", st.ClientID), 6), styles.Text),
		bg.Render(padRight(truncate(label, labelWidth), labelWidth), styles.Text),
		bg.Render(padRight(truncate(st.Shape, shapeWidth), shapeWidth), styles.MutedText),
		bg.Render(ternary(st.Lock, "[L]", "[ ]"), lockBadge),
		bg.Render(ternary(st.Hidden, "[H]", "[ ]"), hiddenBadge),
	}
	lines := []string{bg.FillLine(bg.Join(parts, " "), m.width)}

	if !collapsed {
		detail := fmt.Sprintf("    lock %s  hidden %s  updated %d",
			ternary(st.Lock, "yes", "no"),
			ternary(st.Hidden, "yes", "no"),
			st.Updated)
		lines = append(lines, bg.FillLine(bg.Render(detail, styles.MutedText), m.width))
	}
	return lines
}
