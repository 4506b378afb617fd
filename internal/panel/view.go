package panel

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/lhoarau/glyphdeck/internal/panel/gridlayout"
	"github.com/lhoarau/glyphdeck/internal/panel/render"
	"github.com/lhoarau/glyphdeck/internal/ui"
	"github.com/lhoarau/glyphdeck/internal/ui/overlay"
)

// View renders the viewport from current state and the frame cache. It does
// no painting and schedules nothing; all of that happened in Update.
func (m *Model) View() string {
	width := m.Width()
	height := m.viewHeight()
	if width < 1 || height < 1 {
		return ""
	}

	gridBottom := m.grid.Height()
	last := m.grid.Sections() - 1
	blank := strings.Repeat(" ", width)

	lines := make([]string, 0, height)
	for row := 0; row < height; row++ {
		y := m.scrollTop + row
		if y >= gridBottom || last < 0 {
			lines = append(lines, blank)
			continue
		}
		info := m.grid.InfoAt(y)
		switch {
		case y >= info.RowsBottom:
			// Bottom margin after the last section.
			lines = append(lines, blank)
		case y < info.RowsTop:
			lines = append(lines, m.headerLine(info, y, width, blank))
		default:
			lines = append(lines, m.itemLine(info, y, width))
		}
	}

	view := strings.Join(lines, "\n")
	if m.picker.Visible() {
		r := m.picker.Rect()
		view = overlay.Place(view, m.picker.View(m.theme, m.now()), r.X, r.Y, width)
	}
	return view
}

// headerLine renders one row of a section's header area: the first section
// gets plain padding, later sections a spacer row and a title row.
func (m *Model) headerLine(info gridlayout.SectionInfo, y, width int, blank string) string {
	if info.Section == 0 || y != info.Top+1 {
		return blank
	}
	title := ui.TruncateWidth(" "+m.cat.Title(info.Section), width)
	s := m.theme.S().Header.Render(title)
	if pad := width - runewidth.StringWidth(title); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// itemLine renders one row of a section's item area.
func (m *Model) itemLine(info gridlayout.SectionInfo, y, width int) string {
	cellH := m.cell.Height
	row := (y - info.RowsTop) / cellH
	sub := (y - info.RowsTop) % cellH

	var b strings.Builder
	used := 0
	for col := 0; col < m.columns; col++ {
		offset := row*m.columns + col
		if offset >= info.Count {
			break
		}
		b.WriteString(m.cellContent(info.Section, offset, sub))
		used += m.cell.Width
	}
	if pad := width - used; pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	return b.String()
}

// cellContent renders one terminal row of a single item cell, with the
// hover or press highlight applied.
func (m *Model) cellContent(section, offset, sub int) string {
	linear := m.grid.LinearIndex(section, offset)

	if m.cat.IsCustom(section) {
		set := m.cat.Custom(section)
		item := set.List[offset]
		if frame, ok := m.frames[item.Content]; ok && sub < len(frame.Lines) {
			// Frames carry their own colors; highlights stay off them.
			return frame.Lines[sub]
		}
		preview := ""
		if in := m.registry.Lookup(item.Content); in != nil {
			preview = in.Preview()
		}
		return m.styled(linear, glyphRow(preview, sub, m.cell))
	}

	g, ok := m.cat.Glyph(section, offset)
	if !ok {
		return strings.Repeat(" ", m.cell.Width)
	}
	return m.styled(linear, glyphRow(g.Glyph, sub, m.cell))
}

// glyphRow centers a glyph on the cell's middle row and pads the others.
func glyphRow(glyph string, sub int, cell gridlayout.Size) string {
	if sub != cell.Height/2 || glyph == "" {
		return strings.Repeat(" ", cell.Width)
	}
	return render.CenterGlyph(glyph, cell.Width)
}

// styled applies the highlight for the cell's interaction state.
func (m *Model) styled(linear int, s string) string {
	st := m.theme.S()
	switch {
	case linear == m.inter.pressedIndex():
		return st.Press.Render(s)
	case linear == m.selected,
		linear == m.inter.pickerTarget() && m.picker.Visible():
		return st.Hover.Render(s)
	default:
		return s
	}
}
