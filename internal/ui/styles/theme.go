// Package styles defines the color palette and pre-built lipgloss styles
// for the picker.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the panel and its overlays.
type Theme struct {
	// Text hierarchy
	FgBase   lipgloss.Color // primary text
	FgMuted  lipgloss.Color // section headers
	FgSubtle lipgloss.Color // footer icons, separators

	// Backgrounds
	BgBase  lipgloss.Color // panel background
	BgHover lipgloss.Color // hovered/selected cell highlight
	BgPress lipgloss.Color // pressed cell highlight

	// Accent
	Accent lipgloss.Color // active footer icon, picker border

	styles *Styles
}

// Styles contains pre-built lipgloss styles for the panel.
type Styles struct {
	Base       lipgloss.Style // default cell
	Hover      lipgloss.Style // hovered cell background
	Press      lipgloss.Style // pressed cell background
	Header     lipgloss.Style // section title row
	Footer     lipgloss.Style // inactive footer icon
	FooterOn   lipgloss.Style // active footer icon
	Status     lipgloss.Style // status line text
	PickerBody lipgloss.Style // variant strip background
}

var defaultTheme = Theme{
	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	BgBase:  lipgloss.Color("#1a1a1a"),
	BgHover: lipgloss.Color("#303030"),
	BgPress: lipgloss.Color("#3c3c50"),

	Accent: lipgloss.Color("#a78bfa"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = &Styles{
			Base:       lipgloss.NewStyle().Foreground(t.FgBase),
			Hover:      lipgloss.NewStyle().Background(t.BgHover),
			Press:      lipgloss.NewStyle().Background(t.BgPress),
			Header:     lipgloss.NewStyle().Foreground(t.FgMuted).Bold(true),
			Footer:     lipgloss.NewStyle().Foreground(t.FgSubtle),
			FooterOn:   lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
			Status:     lipgloss.NewStyle().Foreground(t.FgMuted),
			PickerBody: lipgloss.NewStyle().Background(t.BgHover),
		}
	}
	return t.styles
}

// Override replaces palette entries from configuration; empty values keep
// the defaults. Pre-built styles are rebuilt on next use.
func (t *Theme) Override(accent, hover string) {
	if accent != "" {
		t.Accent = lipgloss.Color(accent)
	}
	if hover != "" {
		t.BgHover = lipgloss.Color(hover)
	}
	t.styles = nil
}
