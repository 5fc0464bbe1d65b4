package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bamsammich/batchsplit/internal/config"
)

// Catppuccin Mocha palette, overridable from config.
var (
	ColorGreen  = lipgloss.Color("#a6e3a1")
	ColorRed    = lipgloss.Color("#f38ba8")
	ColorYellow = lipgloss.Color("#f9e2af")
	ColorMuted  = lipgloss.Color("#5a6278")
)

var (
	styleDone  lipgloss.Style
	styleError lipgloss.Style
	styleWarn  lipgloss.Style
	styleMuted lipgloss.Style
)

func init() {
	rebuildStyles()
}

func rebuildStyles() {
	styleDone = lipgloss.NewStyle().Foreground(ColorGreen)
	styleError = lipgloss.NewStyle().Foreground(ColorRed)
	styleWarn = lipgloss.NewStyle().Foreground(ColorYellow)
	styleMuted = lipgloss.NewStyle().Foreground(ColorMuted)
}

// ApplyTheme overrides colors from a config ThemeConfig and rebuilds styles.
func ApplyTheme(tc config.ThemeConfig) {
	if tc.Green != nil {
		ColorGreen = lipgloss.Color(*tc.Green)
	}
	if tc.Red != nil {
		ColorRed = lipgloss.Color(*tc.Red)
	}
	if tc.Yellow != nil {
		ColorYellow = lipgloss.Color(*tc.Yellow)
	}
	if tc.Muted != nil {
		ColorMuted = lipgloss.Color(*tc.Muted)
	}
	rebuildStyles()
}
