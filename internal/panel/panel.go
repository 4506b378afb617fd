// Package panel implements the sectioned glyph picker: a scrollable grid of
// built-in categories and custom animated sets, with hover, press and
// variant-strip interaction.
package panel

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lhoarau/glyphdeck/internal/catalog"
	"github.com/lhoarau/glyphdeck/internal/panel/gridlayout"
	"github.com/lhoarau/glyphdeck/internal/panel/render"
	"github.com/lhoarau/glyphdeck/internal/panel/repaint"
	"github.com/lhoarau/glyphdeck/internal/panel/variantpicker"
	"github.com/lhoarau/glyphdeck/internal/prefs"
	"github.com/lhoarau/glyphdeck/internal/ui"
	"github.com/lhoarau/glyphdeck/internal/ui/styles"
)

// pickerDelay is how long a press on a glyph with a stored variant
// preference waits before opening the strip; a release inside the delay
// commits the preferred variant directly.
const pickerDelay = 500 * time.Millisecond

// fadeTick is the frame interval for the variant strip's opacity fade.
const fadeTick = 33 * time.Millisecond

// nowhere is the sentinel pointer position used after the pointer leaves
// the panel, so stale cells are never re-highlighted.
const nowhere = -10

// Action tells the host what a panel update produced.
type Action int

const (
	ActionNone         Action = iota
	ActionChosen              // a built-in glyph (or resolved variant) was committed
	ActionCustomChosen        // a custom set item was committed
)

// Result is returned from Update to tell the host what happened.
type Result struct {
	Action  Action
	Glyph   catalog.Glyph    // committed glyph for ActionChosen
	Content render.ContentID // committed content for ActionCustomChosen

	// Invalidated lists the view regions whose content changed this
	// update, for hosts that redraw incrementally.
	Invalidated []gridlayout.Rect

	// SectionChanged reports that the top visible section moved; Section
	// holds the new value. Drives the external section indicator.
	SectionChanged bool
	Section        int
}

// stateKind enumerates the interaction states. Exactly one is active; the
// target index travels with it so impossible combinations (an open strip
// with no target) cannot be represented.
type stateKind int

const (
	stateIdle          stateKind = iota
	statePressed                 // button down on a grid cell
	statePickerPending           // press on a variant glyph, delay timer armed
	statePickerOpen              // variant strip open
)

type interaction struct {
	kind  stateKind
	index int  // pressed cell / strip target as a linear index
	held  bool // grid button still down while the strip is open
}

// pressedIndex returns the linear index under an active grid press, or -1.
func (in interaction) pressedIndex() int {
	switch in.kind {
	case statePressed, statePickerPending:
		return in.index
	case statePickerOpen:
		if in.held {
			return in.index
		}
	}
	return -1
}

// pickerTarget returns the strip's target index, or -1 when no strip is
// pending or open.
func (in interaction) pickerTarget() int {
	if in.kind == statePickerPending || in.kind == statePickerOpen {
		return in.index
	}
	return -1
}

// Model is the picker panel. Use New; the model carries shared mutable
// state and is passed around by pointer.
type Model struct {
	ui.Base

	theme   *styles.Theme
	cell    gridlayout.Size
	animate bool

	store    prefs.Interface
	cat      *catalog.Catalog
	registry *render.Registry
	coal     *repaint.Coalescer

	columns int
	grid    gridlayout.Grid

	scrollTop int
	selected  int
	inter     interaction
	picker    variantpicker.Model

	mouseX, mouseY int

	// Pending timer state produced during an update and drained into
	// commands by finishUpdate.
	armDelay    *time.Duration
	armGen      int
	pickerGen   int
	pendingCmds []tea.Cmd

	frames      map[render.ContentID]render.Frame
	invalidated []gridlayout.Rect
	needsPaint  bool
	firedIDs    []render.ContentID

	curSection int

	now func() time.Time
}

// Options configures a panel.
type Options struct {
	Theme       *styles.Theme
	Cell        gridlayout.Size
	RecentLimit int
	Animations  bool

	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// New builds the panel over its collaborators: the custom set provider,
// the preference store, and the options above.
func New(provider catalog.Provider, store prefs.Interface, opts Options) *Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Cell.Width < gridlayout.MinCellWidth {
		opts.Cell = gridlayout.Size{Width: 4, Height: 1}
	}
	if opts.Theme == nil {
		opts.Theme = styles.T()
	}
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = 24
	}

	m := &Model{
		theme:    opts.Theme,
		cell:     opts.Cell,
		animate:  opts.Animations,
		store:    store,
		selected: -1,
		inter:    interaction{kind: stateIdle, index: -1},
		picker:   variantpicker.New(opts.Cell),
		mouseX:   nowhere,
		mouseY:   nowhere,
		frames:   make(map[render.ContentID]render.Frame),
		columns:  1,
		now:      opts.Now,
	}
	m.picker.SetNoFade(!opts.Animations)

	repaintFn := func(id render.ContentID, class time.Duration, when time.Time) {
		if m.animate {
			m.coal.Request(repaint.ContentID(id), class, when)
		}
	}
	m.registry = render.NewRegistry(repaintFn)
	m.coal = repaint.New(
		m.now,
		func(d time.Duration) { m.armDelay = &d },
		func(ids []repaint.ContentID) {
			for _, id := range ids {
				m.firedIDs = append(m.firedIDs, render.ContentID(id))
			}
		},
	)
	m.cat = catalog.New(provider, m.registry, store, opts.RecentLimit)
	m.rebuildGrid()
	return m
}

// Init implements the component contract; the first paint happens on the
// initial SetSize, so there is nothing to start here.
func (m *Model) Init() tea.Cmd {
	return nil
}

// SetSize sets the panel viewport and recomputes the column count.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.columns = gridlayout.Columns(width, m.cell.Width)
	m.rebuildGrid()
	m.clampScroll()
	m.unloadNotSeen()
	m.needsPaint = true
}

// CurrentSection returns the section at the top of the viewport.
func (m *Model) CurrentSection() int {
	return m.curSection
}

// Catalog exposes the live section model, for the host's footer and status
// line.
func (m *Model) Catalog() *catalog.Catalog {
	return m.cat
}

// Selected returns the hovered glyph, if the hover is over a built-in cell.
func (m *Model) Selected() (catalog.Glyph, bool) {
	if m.selected < 0 {
		return catalog.Glyph{}, false
	}
	return m.cat.Glyph(m.grid.Position(m.selected))
}

// Refresh rebuilds the catalog (recent list, variant resolution, custom
// sets) and the derived grid. Called on any provider change notification
// and when the panel is re-shown.
func (m *Model) Refresh() {
	m.clearSelection()
	m.cat.Refresh()
	m.rebuildGrid()
	m.clampScroll()
	m.unloadNotSeen()
	m.needsPaint = true
}

// ScrollTo scrolls so the given section's top is at the viewport top. An
// open or pending variant strip is dismissed first; jumping away from its
// anchor cell would leave it floating.
func (m *Model) ScrollTo(section int) {
	if m.inter.kind == statePickerPending || m.inter.kind == statePickerOpen {
		m.closePicker()
	}
	info := m.grid.Info(section)
	m.scrollTop = info.Top
	m.clampScroll()
	m.unloadNotSeen()
	m.needsPaint = true
}

// Leave handles the pointer exiting the panel: hover and press state are
// dropped and the tracked pointer moves to a sentinel position. An open
// strip keeps its own hover; a pending strip delay is cancelled.
func (m *Model) Leave() {
	if m.inter.kind == statePickerPending {
		m.cancelPickerTimer()
		m.inter = interaction{kind: stateIdle, index: -1}
	}
	m.clearSelection()
}

// clearSelection drops hover and press state and parks the pointer at the
// sentinel position.
func (m *Model) clearSelection() {
	m.mouseX, m.mouseY = nowhere, nowhere
	if m.inter.kind == statePressed {
		m.inter = interaction{kind: stateIdle, index: -1}
	}
	m.setSelected(-1)
}

func (m *Model) rebuildGrid() {
	m.grid = gridlayout.New(m.columns, m.cell, m.cat.Counts())
}

func (m *Model) viewHeight() int {
	return m.Height()
}

func (m *Model) maxScroll() int {
	max := m.grid.Height() - m.viewHeight()
	if max < 0 {
		return 0
	}
	return max
}

func (m *Model) clampScroll() {
	if m.scrollTop > m.maxScroll() {
		m.scrollTop = m.maxScroll()
	}
	if m.scrollTop < 0 {
		m.scrollTop = 0
	}
}

// setSelected moves the hover highlight, invalidating the cells involved.
func (m *Model) setSelected(index int) {
	if m.selected == index {
		return
	}
	if m.selected >= 0 {
		m.invalidateItem(m.selected)
	}
	m.selected = index
	if m.selected >= 0 {
		m.invalidateItem(m.selected)
	}
}

// updateSelected recomputes the hover from the tracked pointer. While a
// press or strip target is active the base grid's hover is suspended; the
// strip's own hover is authoritative.
func (m *Model) updateSelected() {
	if m.inter.kind != stateIdle {
		return
	}
	m.setSelected(m.grid.ItemAt(m.mouseX, m.mouseY+m.scrollTop))
}

func (m *Model) invalidateItem(index int) {
	section, offset := m.grid.Position(index)
	if section >= m.grid.Sections() {
		return
	}
	r := m.grid.ItemRect(section, offset)
	r.Y -= m.scrollTop
	m.invalidated = append(m.invalidated, r)
}

// cancelPickerTimer invalidates any outstanding strip-delay timer.
func (m *Model) cancelPickerTimer() {
	m.pickerGen++
}
