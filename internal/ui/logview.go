package ui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/framelist/internal/logtail"
)

// renderLog renders the log overlay, newest lines at the bottom.
func (m Model) renderLog() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	title := bg.Render("Log", styles.Logo)
	if m.logPath != "" {
		title += bg.Spaces(2) + bg.Render(m.logPath, styles.MutedText)
	}
	if m.warnOnly {
		title += bg.Spaces(2) + bg.Render("warnings only", styles.WarningText)
	}
	header := styles.Header.Width(m.width).Render(clipLine(title, maxInt(m.width-2, 1)))
	footer := styles.Footer.Width(m.width).Render("w warnings only  •  any other key closes")

	height := maxInt(m.height-2, 1)
	var body string
	switch {
	case m.logPath == "":
		body = lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render("Logging is disabled"))
	case m.logErr != nil:
		body = lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center,
			styles.DangerText.Render(fmt.Sprintf("Cannot read log: %v", m.logErr)))
	default:
		lines := m.logLines
		if m.warnOnly {
			lines = logtail.AtLeast(lines, slog.LevelWarn)
		}
		rendered := make([]string, len(lines))
		for i, line := range lines {
			rendered[i] = m.logLineStyle(line).Render(clipLine(line, maxInt(m.width, 1)))
		}
		vp := viewport.New(m.width, height)
		vp.SetContent(strings.Join(rendered, "\n"))
		vp.GotoBottom()
		body = vp.View()
	}

	return header + "\n" + body + "\n" + footer
}

// logLineStyle colors a log line by its level.
func (m Model) logLineStyle(line string) lipgloss.Style {
	styles := m.theme.Styles()
	level, ok := logtail.Level(line)
	switch {
	case !ok:
		return styles.MutedText
	case level >= slog.LevelError:
		return styles.DangerText
	case level >= slog.LevelWarn:
		return styles.WarningText
	case level < slog.LevelInfo:
		return styles.FaintText
	default:
		return styles.Text
	}
}
