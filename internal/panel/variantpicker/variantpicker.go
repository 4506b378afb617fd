// Package variantpicker implements the skin-tone strip that opens over the
// grid when a toned glyph is pressed.
//
// The strip runs its own hover/press pair, scoped to the variant cells, with
// the same press-equals-release commit rule as the grid. It fades in and out
// over a short interval; the panel steps the fade on its animation ticks and
// learns from Step when a hide completed.
package variantpicker

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lhoarau/glyphdeck/internal/panel/gridlayout"
	"github.com/lhoarau/glyphdeck/internal/panel/render"
	"github.com/lhoarau/glyphdeck/internal/ui/styles"
)

// FadeDuration is how long the show/hide opacity fade runs.
const FadeDuration = 120 * time.Millisecond

// Strip insets, in cells.
const (
	padWidth = 1 // blank column at each end
	sepWidth = 1 // separator between the base variant and the toned ones
)

// Model is the variant strip state. The zero value is hidden.
type Model struct {
	cell gridlayout.Size

	family   string
	variants []string

	selected int
	pressed  int

	x, y      int
	visible   bool
	hiding    bool
	fadeFrom  time.Time
	noiseless bool // skip the fade entirely (reduced animations)
}

// New creates a hidden picker for the given cell size.
func New(cell gridlayout.Size) Model {
	return Model{cell: cell, selected: -1, pressed: -1}
}

// SetCell updates the cell size used for strip geometry.
func (m *Model) SetCell(cell gridlayout.Size) {
	m.cell = cell
}

// SetNoFade disables the opacity fade (host preference).
func (m *Model) SetNoFade(v bool) {
	m.noiseless = v
}

// Show opens the strip for a variant family.
func (m *Model) Show(family string, variants []string, now time.Time) {
	if len(variants) < 2 {
		return
	}
	m.family = family
	m.variants = variants
	m.selected = -1
	m.pressed = -1
	m.visible = true
	m.hiding = false
	m.fadeFrom = now
}

// Family returns the family the strip is open for.
func (m Model) Family() string {
	return m.family
}

// Visible reports whether the strip occupies the screen, including while
// fading out.
func (m Model) Visible() bool {
	return m.visible
}

// Hiding reports whether a fade-out is in progress.
func (m Model) Hiding() bool {
	return m.hiding
}

// HideAnimated starts the fade-out. Step reports when it completes.
func (m *Model) HideAnimated(now time.Time) {
	if !m.visible || m.hiding {
		return
	}
	m.ClearSelection()
	m.hiding = true
	m.fadeFrom = now
	if m.noiseless {
		m.visible = false
	}
}

// HideFast drops the strip without animating, for panel teardown.
func (m *Model) HideFast() {
	m.ClearSelection()
	m.visible = false
	m.hiding = false
}

// Animating reports whether an opacity fade still needs ticks.
func (m Model) Animating(now time.Time) bool {
	return m.visible && !m.noiseless && now.Sub(m.fadeFrom) < FadeDuration
}

// Step advances the fade; it returns true once a hide completes, at which
// point the strip is gone and the panel resumes normal hover tracking.
func (m *Model) Step(now time.Time) (hidden bool) {
	if m.visible && m.hiding && now.Sub(m.fadeFrom) >= FadeDuration {
		m.visible = false
		m.hiding = false
		return true
	}
	return false
}

// Move positions the strip's top-left corner in panel view coordinates.
func (m *Model) Move(x, y int) {
	m.x = x
	m.y = y
}

// Width returns the strip width in cells.
func (m Model) Width() int {
	if len(m.variants) == 0 {
		return 0
	}
	return padWidth + m.cell.Width + sepWidth + (len(m.variants)-1)*m.cell.Width + padWidth
}

// Height returns the strip height in cells.
func (m Model) Height() int {
	return m.cell.Height
}

// Rect returns the strip bounds in panel view coordinates.
func (m Model) Rect() gridlayout.Rect {
	return gridlayout.Rect{X: m.x, Y: m.y, Width: m.Width(), Height: m.Height()}
}

// Contains reports whether a panel view point lies inside the strip.
func (m Model) Contains(x, y int) bool {
	return m.visible && m.Rect().Contains(x, y)
}

// variantAt maps a strip-local column to a variant index, or -1.
func (m Model) variantAt(x, y int) int {
	if y < 0 || y >= m.cell.Height {
		return -1
	}
	x -= padWidth
	if x < 0 {
		return -1
	}
	if x < m.cell.Width {
		return 0
	}
	x -= m.cell.Width + sepWidth
	if x >= 0 && x < (len(m.variants)-1)*m.cell.Width {
		return x/m.cell.Width + 1
	}
	return -1
}

// HandleMove updates the strip's own hover from a panel view point.
func (m *Model) HandleMove(x, y int) {
	if !m.visible || m.hiding {
		return
	}
	m.selected = m.variantAt(x-m.x, y-m.y)
}

// HandlePress records a press at a panel view point.
func (m *Model) HandlePress(x, y int) {
	m.HandleMove(x, y)
	m.pressed = m.selected
}

// HandleRelease resolves a release at a panel view point. It commits when
// the release lands on a variant and either nothing was pressed inside the
// strip or press and release agree.
func (m *Model) HandleRelease(x, y int) (glyph string, ok bool) {
	pressed := m.pressed
	m.pressed = -1
	m.HandleMove(x, y)
	if m.selected >= 0 && (pressed < 0 || m.selected == pressed) {
		return m.variants[m.selected], true
	}
	return "", false
}

// ClearSelection drops the strip's hover and press state.
func (m *Model) ClearSelection() {
	m.selected = -1
	m.pressed = -1
}

// View renders the strip. The fade is an opacity blend of the strip colors
// toward the panel background.
func (m Model) View(theme *styles.Theme, now time.Time) string {
	if !m.visible || len(m.variants) == 0 {
		return ""
	}

	opacity := m.opacity(now)
	fg := fade(theme.FgBase, theme.BgBase, opacity)
	bg := fade(theme.BgHover, theme.BgBase, opacity)
	body := lipgloss.NewStyle().Foreground(fg).Background(bg)
	hover := lipgloss.NewStyle().Foreground(fg).Background(fade(theme.BgPress, theme.BgBase, opacity))

	var rows []string
	for row := 0; row < m.cell.Height; row++ {
		var b strings.Builder
		b.WriteString(body.Render(strings.Repeat(" ", padWidth)))
		for i, v := range m.variants {
			cell := render.CenterGlyph(v, m.cell.Width)
			if m.cell.Height > 1 && row != 0 {
				cell = strings.Repeat(" ", m.cell.Width)
			}
			style := body
			if i == m.selected {
				style = hover
			}
			b.WriteString(style.Render(cell))
			if i == 0 {
				b.WriteString(body.Render("│"))
			}
		}
		b.WriteString(body.Render(strings.Repeat(" ", padWidth)))
		rows = append(rows, b.String())
	}
	return strings.Join(rows, "\n")
}

// opacity returns the current fade opacity in [0, 1].
func (m Model) opacity(now time.Time) float64 {
	if m.noiseless {
		return 1
	}
	t := float64(now.Sub(m.fadeFrom)) / float64(FadeDuration)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	if m.hiding {
		return 1 - t
	}
	return t
}

// fade blends from toward to as opacity falls from 1 to 0.
func fade(from, to lipgloss.Color, opacity float64) lipgloss.Color {
	if opacity >= 1 {
		return from
	}
	f, errF := colorful.Hex(string(from))
	t, errT := colorful.Hex(string(to))
	if errF != nil || errT != nil {
		return from
	}
	return lipgloss.Color(t.BlendLab(f, opacity).Clamped().Hex())
}
