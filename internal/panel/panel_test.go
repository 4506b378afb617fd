package panel

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lhoarau/glyphdeck/internal/catalog"
	"github.com/lhoarau/glyphdeck/internal/catalog/emojidata"
	"github.com/lhoarau/glyphdeck/internal/panel/gridlayout"
	"github.com/lhoarau/glyphdeck/internal/panel/render"
	"github.com/lhoarau/glyphdeck/internal/prefs"
)

// Fixed geometry used throughout: cell 4x1, panel 32 wide gives 8 columns.
// With an empty recent list the first Smileys item sits at (0, 3): one
// padding row for the empty Recent section plus the Smileys header.
const (
	testWidth  = 32
	testHeight = 12

	smileysSection = 1
	firstItemY     = 3

	// Offset of the waving hand inside Smileys, the first toned entry.
	wavingOffset = 18
)

type testClock struct {
	t time.Time
}

func (c *testClock) now() time.Time { return c.t }

func (c *testClock) advance(d time.Duration) { c.t = c.t.Add(d) }

type stubProvider struct {
	sets []catalog.SetDescriptor
}

func (p *stubProvider) Sets() []catalog.SetDescriptor { return p.sets }

// spinnerSet builds a custom set of animated two-frame rune loaders with the
// given frame intervals.
func spinnerSet(id uint64, intervals ...time.Duration) catalog.SetDescriptor {
	desc := catalog.SetDescriptor{ID: id, Title: "Spinners"}
	for i, every := range intervals {
		every := every
		desc.Docs = append(desc.Docs, catalog.Document{
			ID: render.ContentID(id*100 + uint64(i)),
			NewLoader: func() render.Loader {
				return &render.RuneLoader{Glyphs: []string{"◐", "◓"}, Every: every}
			},
		})
	}
	return desc
}

// countingLoader wraps RuneLoader and records decode calls.
type countingLoader struct {
	inner render.RuneLoader
	loads *int
}

func (l *countingLoader) Interval() time.Duration { return l.inner.Interval() }

func (l *countingLoader) Preview() string { return l.inner.Preview() }

func (l *countingLoader) Load(cell gridlayout.Size) ([]render.Frame, error) {
	*l.loads++
	return l.inner.Load(cell)
}

// countingSet is spinnerSet with decode calls recorded in loads.
func countingSet(id uint64, loads *int, intervals ...time.Duration) catalog.SetDescriptor {
	desc := catalog.SetDescriptor{ID: id, Title: "Spinners"}
	for i, every := range intervals {
		every := every
		desc.Docs = append(desc.Docs, catalog.Document{
			ID: render.ContentID(id*100 + uint64(i)),
			NewLoader: func() render.Loader {
				return &countingLoader{
					inner: render.RuneLoader{Glyphs: []string{"◐", "◓"}, Every: every},
					loads: loads,
				}
			},
		})
	}
	return desc
}

func newTestPanel(store prefs.Interface, provider catalog.Provider, clock *testClock) *Model {
	m := New(provider, store, Options{
		Cell:        gridlayout.Size{Width: 4, Height: 1},
		RecentLimit: 24,
		Animations:  true,
		Now:         clock.now,
	})
	m.SetSize(testWidth, testHeight)
	return m
}

func move(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion}
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
}

func wheelDown() tea.MouseMsg {
	return tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestClickCommitsGlyph(t *testing.T) {
	clock := &testClock{t: time.Unix(1000, 0)}
	store := prefs.NewMock()
	m := newTestPanel(store, &stubProvider{}, clock)

	m.Update(move(0, firstItemY))
	m.Update(press(0, firstItemY))
	res, _ := m.Update(release(0, firstItemY))

	assert.Equal(t, ActionChosen, res.Action)
	assert.Equal(t, "😀", res.Glyph.Glyph)
	assert.Equal(t, 1, store.TouchCount())

	// The commit shows up in the Recent section immediately.
	assert.Equal(t, 1, m.Catalog().Counts()[catalog.SectionRecent])
}

func TestReleaseElsewhereDoesNotCommit(t *testing.T) {
	clock := &testClock{t: time.Unix(1000, 0)}
	m := newTestPanel(prefs.NewMock(), &stubProvider{}, clock)

	m.Update(press(0, firstItemY))
	res, _ := m.Update(release(8, firstItemY))

	assert.Equal(t, ActionNone, res.Action)
}

func TestPressOnEmptyRowIsInert(t *testing.T) {
	clock := &testClock{t: time.Unix(1000, 0)}
	m := newTestPanel(prefs.NewMock(), &stubProvider{}, clock)

	m.Update(press(0, 0))
	res, _ := m.Update(release(0, 0))

	assert.Equal(t, ActionNone, res.Action)
	assert.Equal(t, stateIdle, m.inter.kind)
}

// wavingCell returns the view position of the waving hand in Smileys.
func wavingCell(m *Model) (x, y int) {
	rect := m.grid.ItemRect(smileysSection, wavingOffset)
	return rect.X, rect.Y - m.scrollTop
}

func TestVariantStripOpensImmediatelyWithoutPreference(t *testing.T) {
	clock := &testClock{t: time.Unix(1000, 0)}
	store := prefs.NewMock()
	m := newTestPanel(store, &stubProvider{}, clock)

	x, y := wavingCell(m)
	m.Update(press(x, y))

	require.True(t, m.picker.Visible())
	assert.Equal(t, statePickerOpen, m.inter.kind)
	assert.Equal(t, "👋", m.picker.Family())

	// The strip sits directly above the pressed cell.
	assert.Equal(t, y-1, m.picker.Rect().Y)

	// Release on the second variant commits and persists it.
	r := m.picker.Rect()
	variants := emojidata.Variants("👋")
	res, _ := m.Update(release(r.X+1+4+1, r.Y))

	assert.Equal(t, ActionChosen, res.Action)
	assert.Equal(t, variants[1], res.Glyph.Glyph)
	assert.Equal(t, "👋", res.Glyph.Family)

	saved, err := store.Variants()
	require.NoError(t, err)
	assert.Equal(t, variants[1], saved["👋"])

	// The grid cell now shows the chosen tone.
	g, ok := m.Catalog().Glyph(smileysSection, wavingOffset)
	require.True(t, ok)
	assert.Equal(t, variants[1], g.Glyph)

	assert.Equal(t, 1, store.TouchCount())
	assert.True(t, m.picker.Hiding())
}

func TestStoredPreferenceDelaysStrip(t *testing.T) {
	clock := &testClock{t: time.Unix(1000, 0)}
	store := prefs.NewMock()
	variants := emojidata.Variants("👋")
	store.SetVariant("👋", variants[4])
	m := newTestPanel(store, &stubProvider{}, clock)

	x, y := wavingCell(m)
	_, cmd := m.Update(press(x, y))

	assert.False(t, m.picker.Visible())
	assert.Equal(t, statePickerPending, m.inter.kind)
	assert.NotNil(t, cmd)

	// A quick release commits the stored tone without opening the strip.
	res, _ := m.Update(release(x, y))
	assert.Equal(t, ActionChosen, res.Action)
	assert.Equal(t, variants[4], res.Glyph.Glyph)
	assert.False(t, m.picker.Visible())
	assert.Equal(t, 1, store.TouchCount())
}

func TestStripTimerFiresAndStaleTimerIsDropped(t *testing.T) {
	clock := &testClock{t: time.Unix(1000, 0)}
	store := prefs.NewMock()
	store.SetVariant("👋", emojidata.Variants("👋")[1])
	m := newTestPanel(store, &stubProvider{}, clock)

	x, y := wavingCell(m)
	m.Update(press(x, y))
	stale := m.pickerGen
	m.Update(release(x, y))

	// The release cancelled the pending timer.
	m.Update(pickerTimerMsg{gen: stale})
	assert.False(t, m.picker.Visible())

	// The commit grew the Recent section, shifting the grid down a row.
	x, y = wavingCell(m)

	// Holding through the delay opens the strip.
	m.Update(press(x, y))
	clock.advance(pickerDelay)
	m.Update(pickerTimerMsg{gen: m.pickerGen})

	assert.True(t, m.picker.Visible())
	assert.Equal(t, statePickerOpen, m.inter.kind)

	// Releasing outside the strip dismisses it without committing.
	res, _ := m.Update(release(0, firstItemY))
	assert.Equal(t, ActionNone, res.Action)
	assert.True(t, m.picker.Hiding())
	assert.Equal(t, 1, store.TouchCount())
}

func TestPressOutsideStripClosesIt(t *testing.T) {
	clock := &testClock{t: time.Unix(1000, 0)}
	m := newTestPanel(prefs.NewMock(), &stubProvider{}, clock)

	x, y := wavingCell(m)
	m.Update(press(x, y))
	require.True(t, m.picker.Visible())

	res, _ := m.Update(press(0, firstItemY))
	assert.Equal(t, ActionNone, res.Action)
	assert.True(t, m.picker.Hiding())
	assert.Equal(t, stateIdle, m.inter.kind)

	// The fade completes and hover tracking resumes.
	clock.advance(200 * time.Millisecond)
	m.Update(fadeMsg{})
	assert.False(t, m.picker.Visible())
}

func TestFadeTickReportsStripRegion(t *testing.T) {
	clock := &testClock{t: time.Unix(1000, 0)}
	m := newTestPanel(prefs.NewMock(), &stubProvider{}, clock)

	x, y := wavingCell(m)
	m.Update(press(x, y))
	rect := m.picker.Rect()
	m.Update(press(0, firstItemY))
	require.True(t, m.picker.Hiding())

	// Mid-fade ticks report the strip region so incremental hosts redraw
	// the opacity change.
	clock.advance(fadeTick)
	res, _ := m.Update(fadeMsg{})
	assert.Contains(t, res.Invalidated, rect)
	require.True(t, m.picker.Hiding())
}

func TestEscClosesStrip(t *testing.T) {
	clock := &testClock{t: time.Unix(1000, 0)}
	m := newTestPanel(prefs.NewMock(), &stubProvider{}, clock)

	x, y := wavingCell(m)
	m.Update(press(x, y))
	require.True(t, m.picker.Visible())

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.picker.Hiding())
}

func TestScrollSuspendedWhileStripOpen(t *testing.T) {
	clock := &testClock{t: time.Unix(1000, 0)}
	m := newTestPanel(prefs.NewMock(), &stubProvider{}, clock)

	x, y := wavingCell(m)
	m.Update(press(x, y))
	require.True(t, m.picker.Visible())

	m.Update(wheelDown())
	assert.Equal(t, 0, m.scrollTop)
}

func TestJumpKeysSuspendedWhileStripOpen(t *testing.T) {
	clock := &testClock{t: time.Unix(1000, 0)}
	m := newTestPanel(prefs.NewMock(), &stubProvider{}, clock)

	x, y := wavingCell(m)
	m.Update(press(x, y))
	require.True(t, m.picker.Visible())

	m.Update(key("G"))
	assert.Equal(t, 0, m.scrollTop)
	m.Update(key("g"))
	assert.Equal(t, 0, m.scrollTop)
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	assert.Equal(t, 0, m.scrollTop)
}

func TestScrollToDismissesStrip(t *testing.T) {
	clock := &testClock{t: time.Unix(1000, 0)}
	m := newTestPanel(prefs.NewMock(), &stubProvider{}, clock)

	x, y := wavingCell(m)
	m.Update(press(x, y))
	require.True(t, m.picker.Visible())

	// Host navigation (the footer) closes the strip before jumping.
	m.ScrollTo(3)
	assert.True(t, m.picker.Hiding())
	assert.Equal(t, stateIdle, m.inter.kind)
	assert.Greater(t, m.scrollTop, 0)
}

func TestWheelScrollReportsSectionChange(t *testing.T) {
	clock := &testClock{t: time.Unix(1000, 0)}
	m := newTestPanel(prefs.NewMock(), &stubProvider{}, clock)

	res, _ := m.Update(wheelDown())

	assert.True(t, res.SectionChanged)
	assert.Equal(t, smileysSection, res.Section)
	assert.Equal(t, smileysSection, m.CurrentSection())
}

func TestHoverHighlightFollowsPointer(t *testing.T) {
	clock := &testClock{t: time.Unix(1000, 0)}
	m := newTestPanel(prefs.NewMock(), &stubProvider{}, clock)

	res, _ := m.Update(move(0, firstItemY))
	assert.Equal(t, 0, m.selected)
	assert.NotEmpty(t, res.Invalidated)

	m.Update(move(4, firstItemY))
	assert.Equal(t, 1, m.selected)

	m.Leave()
	assert.Equal(t, -1, m.selected)
}

func TestKeyboardSelectionCommits(t *testing.T) {
	clock := &testClock{t: time.Unix(1000, 0)}
	store := prefs.NewMock()
	m := newTestPanel(store, &stubProvider{}, clock)

	m.Update(key("l"))
	m.Update(key("l"))
	res, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, ActionChosen, res.Action)
	assert.Equal(t, "😃", res.Glyph.Glyph)
	assert.Equal(t, 1, store.TouchCount())
}

func customSection() int { return catalog.BuiltinCount }

func TestCustomSetPaintAndUnload(t *testing.T) {
	clock := &testClock{t: time.Unix(1000, 0)}
	provider := &stubProvider{sets: []catalog.SetDescriptor{
		spinnerSet(7, 100*time.Millisecond, 100*time.Millisecond),
	}}
	m := newTestPanel(prefs.NewMock(), provider, clock)

	set := m.Catalog().Custom(customSection())
	assert.False(t, set.Painted)

	// Scrolling the set into view and processing any message paints it.
	m.ScrollTo(customSection())
	m.Update(move(0, 0))

	assert.True(t, set.Painted)
	assert.Len(t, m.frames, 2)
	for _, item := range set.List {
		assert.True(t, m.registry.Lookup(item.Content).Loaded())
	}

	// Scrolling it back out evicts the decoded frames.
	m.Update(key("g"))

	assert.False(t, set.Painted)
	assert.Empty(t, m.frames)
	for _, item := range set.List {
		assert.False(t, m.registry.Lookup(item.Content).Loaded())
	}
}

func TestVisibilityPassesAreIdempotent(t *testing.T) {
	clock := &testClock{t: time.Unix(1000, 0)}
	loads := 0
	provider := &stubProvider{sets: []catalog.SetDescriptor{
		countingSet(7, &loads, 100*time.Millisecond, 100*time.Millisecond),
	}}
	m := newTestPanel(prefs.NewMock(), provider, clock)

	m.ScrollTo(customSection())
	m.Update(move(0, 0))
	set := m.Catalog().Custom(customSection())
	require.True(t, set.Painted)
	require.Equal(t, 2, loads)

	// Painting the same range again decodes nothing new.
	m.paintVisible(clock.now())
	assert.Equal(t, 2, loads)
	assert.True(t, set.Painted)

	// Scrolling the set out evicts it once.
	m.Update(key("g"))
	require.False(t, set.Painted)
	require.Empty(t, m.frames)

	// A second pass over the unchanged range does nothing further.
	m.unloadNotSeen()
	assert.False(t, set.Painted)
	assert.Empty(t, m.frames)
	for _, item := range set.List {
		assert.False(t, m.registry.Lookup(item.Content).Loaded())
	}

	// Coming back reloads each item exactly once.
	m.Update(key("G"))
	assert.True(t, set.Painted)
	assert.Equal(t, 4, loads)
}

func TestAnimationRepaintsCoalesce(t *testing.T) {
	clock := &testClock{t: time.Unix(1000, 0)}
	provider := &stubProvider{sets: []catalog.SetDescriptor{
		spinnerSet(7, 100*time.Millisecond, 120*time.Millisecond),
	}}
	m := newTestPanel(prefs.NewMock(), provider, clock)

	m.ScrollTo(customSection())
	_, cmd := m.Update(move(0, 0))

	// Both frame advances collapse into one armed wake-up.
	require.NotNil(t, cmd)
	require.True(t, m.coal.Pending())
	gen := m.armGen

	set := m.Catalog().Custom(customSection())
	before := map[render.ContentID]string{}
	for _, item := range set.List {
		before[item.Content] = m.frames[item.Content].Lines[0]
	}

	// By 120ms both classes are due; one firing repaints the section and
	// reports its region once per due item.
	clock.advance(120 * time.Millisecond)
	res, cmd := m.Update(repaintDueMsg{gen: gen})

	require.NotEmpty(t, res.Invalidated)
	for _, item := range set.List {
		assert.NotEqual(t, before[item.Content], m.frames[item.Content].Lines[0],
			"frame should have advanced for %d", item.Content)
	}

	// The next cycle is already armed.
	assert.NotNil(t, cmd)
	assert.True(t, m.coal.Pending())
}

func TestStaleRepaintWakeupIgnored(t *testing.T) {
	clock := &testClock{t: time.Unix(1000, 0)}
	provider := &stubProvider{sets: []catalog.SetDescriptor{
		spinnerSet(7, 100*time.Millisecond),
	}}
	m := newTestPanel(prefs.NewMock(), provider, clock)

	m.ScrollTo(customSection())
	m.Update(move(0, 0))
	gen := m.armGen

	res, _ := m.Update(repaintDueMsg{gen: gen - 1})
	assert.Empty(t, res.Invalidated)
}

func TestCustomClickReportsContent(t *testing.T) {
	clock := &testClock{t: time.Unix(1000, 0)}
	provider := &stubProvider{sets: []catalog.SetDescriptor{
		spinnerSet(7, 100*time.Millisecond, 100*time.Millisecond),
	}}
	m := newTestPanel(prefs.NewMock(), provider, clock)

	m.ScrollTo(customSection())
	info := m.grid.Info(customSection())
	y := info.RowsTop - m.scrollTop

	m.Update(press(4, y))
	res, _ := m.Update(release(4, y))

	assert.Equal(t, ActionCustomChosen, res.Action)
	assert.Equal(t, render.ContentID(701), res.Content)
}

func TestViewGeometry(t *testing.T) {
	clock := &testClock{t: time.Unix(1000, 0)}
	m := newTestPanel(prefs.NewMock(), &stubProvider{}, clock)

	view := m.View()
	lines := strings.Split(view, "\n")
	require.Len(t, lines, testHeight)

	assert.Contains(t, lines[firstItemY], "😀")
	// Smileys spans rows 3-6; the next header row carries the next title.
	assert.Contains(t, view, emojidata.Title(emojidata.Nature))
	assert.NotContains(t, view, "Recently Used")
}

func TestViewShowsStripOverlay(t *testing.T) {
	clock := &testClock{t: time.Unix(1000, 0)}
	m := newTestPanel(prefs.NewMock(), &stubProvider{}, clock)

	x, y := wavingCell(m)
	m.Update(press(x, y))
	require.True(t, m.picker.Visible())

	lines := strings.Split(m.View(), "\n")
	stripRow := lines[m.picker.Rect().Y]
	for i, v := range emojidata.Variants("👋") {
		assert.Contains(t, stripRow, v, fmt.Sprintf("variant %d", i))
	}
}

func TestRefreshKeepsScrollInRange(t *testing.T) {
	clock := &testClock{t: time.Unix(1000, 0)}
	provider := &stubProvider{sets: []catalog.SetDescriptor{
		spinnerSet(7, 100*time.Millisecond),
	}}
	m := newTestPanel(prefs.NewMock(), provider, clock)

	m.Update(key("G"))
	bottom := m.scrollTop
	require.Greater(t, bottom, 0)

	// Dropping the custom set shrinks the grid; the scroll clamps.
	provider.sets = nil
	m.Refresh()
	assert.LessOrEqual(t, m.scrollTop, m.maxScroll())
	assert.Equal(t, catalog.BuiltinCount, m.Catalog().Sections())
}
