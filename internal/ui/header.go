package ui

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// renderMain renders the full screen.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderIndicators())
	b.WriteString("\n")
	b.WriteString(m.renderList())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderHeader renders the status line.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	parts := []string{bg.Render("framelist", styles.Logo)}

	if !compact {
		parts = append(parts,
			bg.Render("Job:", styles.MutedText)+bg.Spaces(1)+
				bg.Render(truncate(string(m.coord.Session()), 24), styles.Text))
	}

	frame := fmt.Sprintf("%d", m.coord.Frame())
	if m.snapshot.Frames > 0 {
		frame = fmt.Sprintf("%d/%d", m.coord.Frame(), m.snapshot.Frames-1)
	}
	parts = append(parts,
		bg.Render("Frame:", styles.MutedText)+bg.Spaces(1)+bg.Render(frame, styles.Text),
		bg.Render("Objects:", styles.MutedText)+bg.Spaces(1)+
			bg.Render(fmt.Sprintf("%d", m.coord.Collection().Len()), styles.Text),
		bg.Render("Order:", styles.MutedText)+bg.Spaces(1)+
			bg.Render(m.coord.Ordering().Label(), styles.AccentText),
	)

	filters := "none"
	filterStyle := styles.FaintText
	if f := m.coord.Filters(); len(f) > 0 {
		filters = truncate(joinFilters(f), ternaryInt(compact, 20, 48))
		filterStyle = styles.InfoText
	}
	parts = append(parts,
		bg.Render("Filters:", styles.MutedText)+bg.Spaces(1)+bg.Render(filters, filterStyle))

	if ts := m.formatTimestamp(); ts != "" && !compact {
		parts = append(parts, bg.Render(ts, styles.MutedText))
	}

	content := bg.Join(parts, "  ")
	if m.width > 2 {
		content = clipLine(content, m.width-2)
	}
	return styles.Header.Width(m.width).Render(content)
}

// renderIndicators renders the aggregate flags and any transient state.
func (m Model) renderIndicators() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Background)
	flags := m.coord.Flags()

	indicator := func(label string, on bool) string {
		if on {
			return styles.IndicatorOn.Render(label)
		}
		return styles.IndicatorOff.Render(label)
	}

	parts := []string{
		indicator("ALL LOCKED", flags.AllLocked),
		indicator("ALL HIDDEN", flags.AllHidden),
		indicator("ALL COLLAPSED", flags.AllCollapsed),
	}

	if pending := m.matcher.Pending(); len(pending) > 0 {
		parts = append(parts, bg.Render(strings.Join(pending, " ")+" -", styles.WarningText))
	}
	if m.inflight > 0 {
		parts = append(parts, bg.Render("syncing...", styles.InfoText))
	}
	if status := m.formatError(m.width < LayoutCompactWidth); status != "" {
		parts = append(parts, bg.Render(status, styles.DangerText))
	}

	return bg.FillLine(bg.Join(parts, " "), m.width)
}

// renderFooter renders key hints, or the filter editor while it is open.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	if m.editingFilters {
		return styles.Footer.Width(m.width).Render(m.filterInput.View())
	}

	h := help.New()
	h.Width = maxInt(m.width-2, 0)
	h.Styles.ShortKey = styles.WarningText.Background(lipgloss.Color(m.theme.SurfaceAlt))
	h.Styles.ShortDesc = styles.MutedText.Background(lipgloss.Color(m.theme.SurfaceAlt))
	h.Styles.ShortSeparator = styles.FaintText.Background(lipgloss.Color(m.theme.SurfaceAlt))
	return styles.Footer.Width(m.width).Render(h.ShortHelpView(m.keys.ShortHelp()))
}

// formatTimestamp formats the last update time with a relative hint.
func (m Model) formatTimestamp() string {
	last := m.snapshot.LastUpdated
	if last.IsZero() {
		return ""
	}
	since := time.Since(last)
	if since > 10*time.Second {
		return fmt.Sprintf("%s (%s ago)", last.Format("15:04:05"), since.Truncate(time.Second))
	}
	return last.Format("15:04:05")
}

// formatError describes the last failure, if any.
func (m Model) formatError(compact bool) string {
	err := m.snapshot.LastError
	if err == nil {
		return ""
	}
	if m.snapshot.IsOffline() {
		return fmt.Sprintf("OFFLINE: %s (retrying)", classifyConnectionError(err))
	}
	return "ERROR " + truncate(err.Error(), ternaryInt(compact, 30, 70))
}

// classifyConnectionError returns a short description of a transport error.
func classifyConnectionError(err error) string {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timeout"
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Op == "dial" {
			return "connection refused"
		}
		return "network error"
	}
	return "server error"
}

func ternaryInt(cond bool, a, b int) int {
	if cond {
		return a
	}
	return b
}
