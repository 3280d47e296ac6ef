package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThemeNames(t *testing.T) {
	assert.Equal(t, []string{"Dracula", "Slate"}, ThemeNames())
}

func TestNextTheme(t *testing.T) {
	assert.Equal(t, "Slate", NextTheme("Dracula"))
	assert.Equal(t, "Dracula", NextTheme("Slate"))
	assert.Equal(t, "Dracula", NextTheme("Unknown"))
}

func TestGetTheme(t *testing.T) {
	assert.Equal(t, "Dracula", GetTheme("Dracula").Name)
	assert.Equal(t, "Slate", GetTheme("Slate").Name)
	assert.Equal(t, "Dracula", GetTheme("Unknown").Name, "unknown names fall back to Dracula")
}

func TestThemesDefineEveryColor(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		colors := map[string]string{
			"Background":    th.Background,
			"Surface":       th.Surface,
			"SurfaceAlt":    th.SurfaceAlt,
			"SelectionBg":   th.SelectionBg,
			"SelectionText": th.SelectionText,
			"Text":          th.Text,
			"Muted":         th.Muted,
			"Faint":         th.Faint,
			"Accent":        th.Accent,
			"Success":       th.Success,
			"Warning":       th.Warning,
			"Danger":        th.Danger,
			"Info":          th.Info,
			"Locked":        th.Locked,
			"Hidden":        th.Hidden,
		}
		for field, value := range colors {
			assert.Regexp(t, `^#[0-9a-fA-F]{6}$`, value, "%s.%s", name, field)
		}
	}
}
