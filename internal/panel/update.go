package panel

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lhoarau/glyphdeck/internal/catalog"
	"github.com/lhoarau/glyphdeck/internal/ui"
)

// pickerTimerMsg fires the delayed strip open. The generation stamp rejects
// timers cancelled by a release or pointer-leave in the meantime.
type pickerTimerMsg struct {
	gen int
}

// repaintDueMsg wakes the repaint coalescer. Stale generations are dropped;
// the coalescer itself re-arms if nothing is due yet.
type repaintDueMsg struct {
	gen int
}

// fadeMsg advances the variant strip's opacity fade.
type fadeMsg struct{}

// Update processes one message and returns what happened. Mouse coordinates
// are panel-local; the host translates before forwarding.
func (m *Model) Update(msg tea.Msg) (Result, tea.Cmd) {
	res := Result{Section: m.curSection}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.handleMouse(msg, &res)
	case tea.KeyMsg:
		m.handleKey(msg, &res)
	case pickerTimerMsg:
		if msg.gen == m.pickerGen && m.inter.kind == statePickerPending {
			m.openPicker()
		}
	case repaintDueMsg:
		if msg.gen == m.armGen {
			m.coal.Fire()
		}
	case fadeMsg:
		if m.picker.Visible() {
			if m.picker.Step(m.now()) {
				m.pickerHidden()
			} else {
				m.invalidatePicker()
			}
		}
	}

	cmd := m.finishUpdate(&res)
	return res, cmd
}

// finishUpdate drains everything an update accumulated: fired repaint ids
// become section invalidations and repaints, pending coalescer work is
// flushed, and armed timers become commands.
func (m *Model) finishUpdate(res *Result) tea.Cmd {
	if len(m.firedIDs) > 0 {
		for _, id := range m.firedIDs {
			for _, section := range m.cat.SectionsReferencing(id) {
				r := m.grid.SectionRect(section, m.Width())
				r.Y -= m.scrollTop
				// Sections scrolled out of view produce no rectangle.
				if r.Y+r.Height <= 0 || r.Y >= m.viewHeight() {
					continue
				}
				m.invalidated = append(m.invalidated, r)
				m.needsPaint = true
			}
		}
		m.firedIDs = m.firedIDs[:0]
	}

	if m.needsPaint {
		m.paintVisible(m.now())
		m.needsPaint = false
	}

	if section := m.grid.InfoAt(m.scrollTop).Section; section != m.curSection {
		m.curSection = section
		res.SectionChanged = true
		res.Section = section
	}

	res.Invalidated = m.invalidated
	m.invalidated = nil

	m.coal.Flush()

	cmds := m.pendingCmds
	m.pendingCmds = nil
	if m.armDelay != nil {
		d := *m.armDelay
		m.armDelay = nil
		m.armGen++
		gen := m.armGen
		cmds = append(cmds, tea.Tick(d, func(time.Time) tea.Msg {
			return repaintDueMsg{gen: gen}
		}))
	}
	if m.picker.Animating(m.now()) {
		cmds = append(cmds, tea.Tick(fadeTick, func(time.Time) tea.Msg {
			return fadeMsg{}
		}))
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleMouse(msg tea.MouseMsg, res *Result) {
	switch msg.Action {
	case tea.MouseActionMotion:
		m.handleMove(msg.X, msg.Y)
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.handlePress(msg.X, msg.Y)
		case tea.MouseButtonWheelUp:
			m.scrollBy(-ui.WheelStep)
		case tea.MouseButtonWheelDown:
			m.scrollBy(ui.WheelStep)
		}
	case tea.MouseActionRelease:
		if msg.Button == tea.MouseButtonLeft || msg.Button == tea.MouseButtonNone {
			m.handleRelease(msg.X, msg.Y, res)
		}
	}
}

func (m *Model) handleMove(x, y int) {
	m.mouseX, m.mouseY = x, y
	if m.picker.Visible() && !m.picker.Hiding() {
		if m.picker.Contains(x, y) {
			m.picker.HandleMove(x, y)
		} else {
			m.picker.ClearSelection()
		}
	}
	m.updateSelected()
}

func (m *Model) handlePress(x, y int) {
	m.mouseX, m.mouseY = x, y

	if m.picker.Visible() && !m.picker.Hiding() {
		if m.picker.Contains(x, y) {
			m.picker.HandlePress(x, y)
			m.invalidatePicker()
			return
		}
		// Press outside the open strip closes it without committing.
		m.closePicker()
		return
	}

	m.updateSelected()
	if m.selected < 0 {
		return
	}
	m.invalidateItem(m.selected)

	section, offset := m.grid.Position(m.selected)
	if g, ok := m.cat.Glyph(section, offset); ok && g.HasVariants() {
		if !m.cat.HasVariantPref(g.Family) {
			// No stored preference: the press must choose a tone, so the
			// strip opens at once.
			m.inter = interaction{kind: statePickerOpen, index: m.selected, held: true}
			m.showPicker(g)
			return
		}
		m.inter = interaction{kind: statePickerPending, index: m.selected, held: true}
		m.pickerGen++
		gen := m.pickerGen
		m.pendingCmds = append(m.pendingCmds, tea.Tick(pickerDelay, func(time.Time) tea.Msg {
			return pickerTimerMsg{gen: gen}
		}))
		return
	}
	m.inter = interaction{kind: statePressed, index: m.selected}
}

func (m *Model) handleRelease(x, y int, res *Result) {
	pressed := m.inter.pressedIndex()
	m.mouseX, m.mouseY = x, y

	if m.picker.Visible() && !m.picker.Hiding() {
		if m.picker.Contains(x, y) {
			if glyph, ok := m.picker.HandleRelease(x, y); ok {
				m.commitVariant(glyph, res)
				return
			}
			// A release inside the strip that misses every variant still
			// dismisses it.
			m.closePicker()
			return
		}
		if t := m.inter.pickerTarget(); t >= 0 && m.targetHasPref(t) {
			// The strip was opened by holding a glyph that already has a
			// stored tone; releasing elsewhere dismisses it and the press
			// does not commit.
			m.closePicker()
			return
		}
		m.inter.held = false
	}

	if m.inter.kind == statePickerPending {
		// Quick click before the delay elapsed: cancel the strip and fall
		// through to commit the stored variant.
		m.cancelPickerTimer()
		m.inter = interaction{kind: stateIdle, index: -1}
	}
	if m.inter.kind == statePressed {
		m.invalidateItem(m.inter.index)
		m.inter = interaction{kind: stateIdle, index: -1}
	}

	m.updateSelected()
	if m.selected < 0 || m.selected != pressed {
		return
	}

	section, offset := m.grid.Position(m.selected)
	if m.cat.IsCustom(section) {
		set := m.cat.Custom(section)
		if offset < len(set.List) {
			res.Action = ActionCustomChosen
			res.Content = set.List[offset].Content
		}
		return
	}
	g, ok := m.cat.Glyph(section, offset)
	if !ok {
		return
	}
	if g.HasVariants() && m.picker.Visible() {
		return
	}
	m.commitGlyph(g, res)
}

// commitGlyph records a committed built-in glyph and reports it to the host.
func (m *Model) commitGlyph(g catalog.Glyph, res *Result) {
	if err := m.store.TouchRecent(g.Glyph, m.cat.RecentLimit()); err == nil {
		m.cat.RefreshRecent()
		m.rebuildGrid()
		m.needsPaint = true
	}
	res.Action = ActionChosen
	res.Glyph = g
}

// commitVariant persists a tone chosen in the strip, rewrites the target
// cell to the new representation, and commits it.
func (m *Model) commitVariant(glyph string, res *Result) {
	family := m.picker.Family()
	_ = m.store.SaveVariant(family, glyph)
	m.cat.NoteVariantPref(family, glyph)

	g := catalog.Glyph{Glyph: glyph, Family: family}
	if t := m.inter.pickerTarget(); t >= 0 {
		section, offset := m.grid.Position(t)
		if prev, ok := m.cat.Glyph(section, offset); ok {
			g.Name = prev.Name
			g.Variants = prev.Variants
			if section != catalog.SectionRecent {
				m.cat.SetGlyph(section, offset, g)
			}
			m.invalidateItem(t)
		}
	}

	m.inter.held = false
	m.hideStrip()
	m.commitGlyph(g, res)
}

// hideStrip starts the fade-out, or completes the hide at once when fades
// are disabled and no fade tick will ever arrive.
func (m *Model) hideStrip() {
	m.invalidatePicker()
	m.picker.HideAnimated(m.now())
	if !m.picker.Visible() {
		m.pickerHidden()
	}
}

// showPicker opens the strip above the target cell, flipping below it when
// there is no room, with the horizontal position tracking the column.
func (m *Model) showPicker(g catalog.Glyph) {
	section, offset := m.grid.Position(m.inter.index)
	rect := m.grid.ItemRect(section, offset)
	viewY := rect.Y - m.scrollTop

	m.picker.Show(g.Family, g.Variants, m.now())

	x := 0
	if m.columns > 1 {
		xmax := m.Width() - m.picker.Width()
		if xmax < 0 {
			xmax = 0
		}
		col := offset % m.columns
		x = xmax * col / (m.columns - 1)
	}
	y := viewY - m.picker.Height()
	if y < 0 {
		y = viewY + m.cell.Height
	}
	m.picker.Move(x, y)
	m.invalidatePicker()
}

// openPicker is the delayed-open path, reached from the press timer.
func (m *Model) openPicker() {
	section, offset := m.grid.Position(m.inter.index)
	g, ok := m.cat.Glyph(section, offset)
	if !ok || !g.HasVariants() {
		m.inter = interaction{kind: stateIdle, index: -1}
		return
	}
	m.inter.kind = statePickerOpen
	m.showPicker(g)
}

// closePicker dismisses the strip without a commit and resumes grid hover.
func (m *Model) closePicker() {
	m.cancelPickerTimer()
	m.hideStrip()
	m.inter = interaction{kind: stateIdle, index: -1}
	m.updateSelected()
}

// pickerHidden runs when the fade completes. Idempotent: closePicker may
// already have reset the interaction.
func (m *Model) pickerHidden() {
	m.invalidatePicker()
	if m.inter.kind == statePickerPending || m.inter.kind == statePickerOpen {
		m.inter = interaction{kind: stateIdle, index: -1}
	}
	m.updateSelected()
}

func (m *Model) targetHasPref(index int) bool {
	section, offset := m.grid.Position(index)
	g, ok := m.cat.Glyph(section, offset)
	return ok && g.HasVariants() && m.cat.HasVariantPref(g.Family)
}

func (m *Model) invalidatePicker() {
	m.invalidated = append(m.invalidated, m.picker.Rect())
}

// scrollBy moves the viewport, unless the strip is open: scrolling under an
// anchored overlay would detach it from its target.
func (m *Model) scrollBy(rows int) {
	if m.inter.kind == statePickerOpen {
		return
	}
	prev := m.scrollTop
	m.scrollTop += rows
	m.clampScroll()
	if m.scrollTop == prev {
		return
	}
	m.unloadNotSeen()
	m.updateSelected()
	m.needsPaint = true
}

// scrollToRow jumps the viewport to an absolute row, under the same
// suspension rule as scrollBy.
func (m *Model) scrollToRow(row int) {
	if m.inter.kind == statePickerOpen {
		return
	}
	m.scrollTop = row
	m.afterScroll()
	m.updateSelected()
}

func (m *Model) handleKey(msg tea.KeyMsg, res *Result) {
	switch msg.String() {
	case "esc":
		if m.picker.Visible() && !m.picker.Hiding() {
			m.closePicker()
		}
	case "up", "k":
		m.moveSelection(-m.columns)
	case "down", "j":
		m.moveSelection(m.columns)
	case "left", "h":
		m.moveSelection(-1)
	case "right", "l":
		m.moveSelection(1)
	case "ctrl+u":
		m.scrollBy(-m.viewHeight() / 2)
	case "ctrl+d":
		m.scrollBy(m.viewHeight() / 2)
	case "g":
		m.scrollToRow(0)
	case "G":
		m.scrollToRow(m.maxScroll())
	case "enter", " ":
		m.commitSelection(res)
	}
}

// moveSelection steps the keyboard selection by a linear delta and scrolls
// the target row into view.
func (m *Model) moveSelection(delta int) {
	if m.inter.kind != stateIdle {
		return
	}
	total := m.cat.TotalItems()
	if total == 0 {
		return
	}
	next := m.selected + delta
	if m.selected < 0 {
		next = 0
	}
	if next < 0 {
		next = 0
	}
	if next >= total {
		next = total - 1
	}
	m.setSelected(next)
	m.scrollIntoView(next)
}

func (m *Model) scrollIntoView(index int) {
	section, offset := m.grid.Position(index)
	rect := m.grid.ItemRect(section, offset)
	if rect.Y < m.scrollTop {
		m.scrollTop = rect.Y
		m.afterScroll()
	} else if bottom := rect.Y + rect.Height; bottom > m.scrollTop+m.viewHeight() {
		m.scrollTop = bottom - m.viewHeight()
		m.afterScroll()
	}
}

func (m *Model) afterScroll() {
	m.clampScroll()
	m.unloadNotSeen()
	m.needsPaint = true
}

// commitSelection commits the keyboard selection as if clicked.
func (m *Model) commitSelection(res *Result) {
	if m.selected < 0 || m.inter.kind != stateIdle {
		return
	}
	section, offset := m.grid.Position(m.selected)
	if m.cat.IsCustom(section) {
		set := m.cat.Custom(section)
		if offset < len(set.List) {
			res.Action = ActionCustomChosen
			res.Content = set.List[offset].Content
		}
		return
	}
	if g, ok := m.cat.Glyph(section, offset); ok {
		m.commitGlyph(g, res)
	}
}
