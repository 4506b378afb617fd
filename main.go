package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/lhoarau/glyphdeck/internal/catalog"
	"github.com/lhoarau/glyphdeck/internal/config"
	"github.com/lhoarau/glyphdeck/internal/panel"
	"github.com/lhoarau/glyphdeck/internal/panel/gridlayout"
	"github.com/lhoarau/glyphdeck/internal/prefs"
	"github.com/lhoarau/glyphdeck/internal/ui"
	"github.com/lhoarau/glyphdeck/internal/ui/styles"
)

// sectionIcons labels the built-in sections in the footer; custom sets
// share a single star slot after them.
var sectionIcons = []string{"🕘", "😀", "🐻", "🍔", "⚽", "✈️", "💡", "🔣"}

const customIcon = "★"

type model struct {
	picker *panel.Model
	store  *prefs.Manager
	theme  *styles.Theme

	width  int
	height int

	section int
	chosen  string
}

func initialModel() (model, error) {
	cfg, err := config.Load()
	if err != nil {
		return model{}, err
	}

	theme := styles.T()
	theme.Override(cfg.Theme.Accent, cfg.Theme.Hover)

	store, err := prefs.Open()
	if err != nil {
		return model{}, err
	}

	p := panel.New(demoProvider(), store, panel.Options{
		Theme:       theme,
		Cell:        gridlayout.Size{Width: cfg.CellWidth, Height: cfg.CellHeight},
		RecentLimit: cfg.RecentLimit,
		Animations:  cfg.AnimationsEnabled(),
	})

	return model{
		picker: p,
		store:  store,
		theme:  theme,
	}, nil
}

func (m model) Init() tea.Cmd {
	return m.picker.Init()
}

func (m model) panelHeight() int {
	h := m.height - ui.FooterHeight - ui.StatusHeight
	if h < 0 {
		h = 0
	}
	return h
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.picker.SetSize(m.width, m.panelHeight())

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.store.Close()
			return m, tea.Quit
		}

	case tea.MouseMsg:
		if msg.Y >= m.panelHeight() {
			if msg.Action == tea.MouseActionMotion {
				m.picker.Leave()
			}
			if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft &&
				msg.Y == m.panelHeight() {
				if section, ok := m.footerSectionAt(msg.X); ok {
					m.picker.ScrollTo(section)
				}
			}
		}
	}

	res, cmd := m.picker.Update(msg)
	if res.SectionChanged {
		m.section = res.Section
	}
	switch res.Action {
	case panel.ActionChosen:
		m.chosen = res.Glyph.Glyph
	case panel.ActionCustomChosen:
		m.chosen = customIcon
	}
	return m, cmd
}

func (m model) View() string {
	if m.width < 1 || m.height < 1 {
		return ""
	}
	return m.picker.View() + "\n" + m.footer() + "\n" + m.status()
}

// footer renders one icon per built-in section plus a star for the custom
// sets, with the current section accented.
func (m model) footer() string {
	s := m.theme.S()

	var b strings.Builder
	for i, icon := range sectionIcons {
		cellStr := " " + icon + " "
		if i == m.section {
			b.WriteString(s.FooterOn.Render(cellStr))
		} else {
			b.WriteString(s.Footer.Render(cellStr))
		}
	}
	if len(m.picker.Catalog().CustomSets()) > 0 {
		cellStr := " " + customIcon + " "
		if m.section >= catalog.BuiltinCount {
			b.WriteString(s.FooterOn.Render(cellStr))
		} else {
			b.WriteString(s.Footer.Render(cellStr))
		}
	}
	return b.String()
}

// footerSectionAt maps a footer click column to a section to scroll to.
func (m model) footerSectionAt(x int) (int, bool) {
	const slot = 4 // icon width 2 plus a space each side
	idx := x / slot
	if idx < 0 {
		return 0, false
	}
	if idx < len(sectionIcons) {
		return idx, true
	}
	if idx == len(sectionIcons) && len(m.picker.Catalog().CustomSets()) > 0 {
		return catalog.BuiltinCount, true
	}
	return 0, false
}

func (m model) status() string {
	s := m.theme.S()

	left := fmt.Sprintf(" %s glyphs", humanize.Comma(int64(m.picker.Catalog().TotalItems())))
	if g, ok := m.picker.Selected(); ok {
		left += "  " + g.Name
	}
	right := ""
	if m.chosen != "" {
		right = m.chosen + " "
	}

	left = ui.TruncateWidth(left, m.width-runewidth.StringWidth(right))
	pad := m.width - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if pad < 0 {
		pad = 0
	}
	return s.Status.Render(left + strings.Repeat(" ", pad) + right)
}

func main() {
	m, err := initialModel()
	if err != nil {
		fmt.Printf("Error initializing: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
