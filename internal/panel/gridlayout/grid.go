// Package gridlayout provides pure functions for sectioned grid geometry.
//
// A grid stacks titled sections top to bottom. Each section lays its items
// out row-major across a shared column count. Geometry is derived on demand
// from the current per-section item counts; nothing is cached per item, so
// counts may change between calls without invalidation bookkeeping.
package gridlayout

// Vertical insets, in terminal rows. The first section sits directly under
// the panel top with a light padding; every later section reserves a header
// row for its title.
const (
	PanelPadding = 1
	HeaderHeight = 2
	BottomMargin = 1
)

// MinCellWidth is the narrowest item cell that can hold a double-width glyph.
const MinCellWidth = 2

// Size is the dimensions of a single item cell in terminal cells.
type Size struct {
	Width  int
	Height int
}

// Rect is a cell-coordinate rectangle within the panel.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether the point (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// SectionInfo describes the computed geometry of one section.
type SectionInfo struct {
	Section    int // section index
	Count      int // number of items in the section
	RowCount   int // ceil(Count / columns)
	Top        int // first row of the section, including header space
	RowsTop    int // first row of the item area
	RowsBottom int // one past the last row of the item area
}

// Grid computes section geometry for a snapshot of per-section item counts.
// The zero value is not usable; construct with New.
type Grid struct {
	columns int
	cell    Size
	counts  []int
}

// New creates a Grid for the given column count, cell size and ordered
// per-section item counts. The counts slice is retained, not copied; callers
// rebuild the Grid whenever any count changes.
//
// Panics if columns < 1 or the cell size is degenerate: the grid cannot be
// laid out without a positive column count, so that is a programming error
// rather than a recoverable condition.
func New(columns int, cell Size, counts []int) Grid {
	if columns < 1 {
		panic("gridlayout: column count must be >= 1")
	}
	if cell.Width < 1 || cell.Height < 1 {
		panic("gridlayout: cell size must be positive")
	}
	return Grid{columns: columns, cell: cell, counts: counts}
}

// Columns returns the column count the grid was built with.
func (g Grid) Columns() int {
	return g.columns
}

// Cell returns the item cell size.
func (g Grid) Cell() Size {
	return g.cell
}

// Sections returns the number of sections in the snapshot.
func (g Grid) Sections() int {
	return len(g.counts)
}

// Enumerate walks sections in order, computing geometry incrementally, and
// calls fn for each. Enumeration stops early when fn returns false; the
// return value reports whether the walk ran to completion.
func (g Grid) Enumerate(fn func(SectionInfo) bool) bool {
	info := SectionInfo{}
	for i, count := range g.counts {
		info.Section = i
		info.Count = count
		info.RowCount = (count + g.columns - 1) / g.columns
		if i == 0 {
			info.RowsTop = info.Top + PanelPadding
		} else {
			info.RowsTop = info.Top + HeaderHeight
		}
		info.RowsBottom = info.RowsTop + info.RowCount*g.cell.Height
		if !fn(info) {
			return false
		}
		info.Top = info.RowsBottom
	}
	return true
}

// Info returns the geometry of the given section.
//
// Panics if the section index is out of range for the current snapshot: an
// out-of-range section means the caller is holding stale geometry, which is
// a programming error.
func (g Grid) Info(section int) SectionInfo {
	if section < 0 || section >= len(g.counts) {
		panic("gridlayout: section index out of range")
	}
	var result SectionInfo
	g.Enumerate(func(info SectionInfo) bool {
		if info.Section == section {
			result = info
			return false
		}
		return true
	})
	return result
}

// InfoAt returns the geometry of the section covering row y. Rows below the
// last section saturate to the last section; a negative y resolves to the
// first. Returns a zero SectionInfo if the grid has no sections.
func (g Grid) InfoAt(y int) SectionInfo {
	var result SectionInfo
	last := len(g.counts) - 1
	g.Enumerate(func(info SectionInfo) bool {
		if y < info.RowsBottom || info.Section == last {
			result = info
			return false
		}
		return true
	})
	return result
}

// Height returns the total panel height in rows: the bottom of the last
// section plus a trailing margin.
func (g Grid) Height() int {
	if len(g.counts) == 0 {
		return PanelPadding + BottomMargin
	}
	return g.Info(len(g.counts)-1).RowsBottom + BottomMargin
}

// LinearIndex converts a (section, offset) pair to a catalog-order linear
// index by summing the counts of prior sections. O(sections).
func (g Grid) LinearIndex(section, offset int) int {
	if section < 0 || section >= len(g.counts) {
		panic("gridlayout: section index out of range")
	}
	index := offset
	for i := 0; i < section; i++ {
		index += g.counts[i]
	}
	return index
}

// Position converts a linear index back to a (section, offset) pair.
// A linear index at or past the total item count resolves to one past the
// end of the last section, mirroring LinearIndex on in-range values.
func (g Grid) Position(linear int) (section, offset int) {
	for i, count := range g.counts {
		if linear < count || i == len(g.counts)-1 {
			return i, linear
		}
		linear -= count
	}
	return 0, linear
}

// ItemRect returns the cell rectangle of the item at (section, offset).
func (g Grid) ItemRect(section, offset int) Rect {
	info := g.Info(section)
	row := offset / g.columns
	col := offset % g.columns
	return Rect{
		X:      col * g.cell.Width,
		Y:      info.RowsTop + row*g.cell.Height,
		Width:  g.cell.Width,
		Height: g.cell.Height,
	}
}

// SectionRect returns the rectangle covering a section's item rows at the
// given panel width, for scoped invalidation.
func (g Grid) SectionRect(section, width int) Rect {
	info := g.Info(section)
	return Rect{
		X:      0,
		Y:      info.RowsTop,
		Width:  width,
		Height: info.RowsBottom - info.RowsTop,
	}
}

// ItemAt resolves a panel-local point to a linear item index, or -1 when the
// point is outside every item cell. The section covering the row is found
// with InfoAt; the point must then land inside the section's item area and
// within its item count.
func (g Grid) ItemAt(x, y int) int {
	if len(g.counts) == 0 {
		return -1
	}
	info := g.InfoAt(y)
	if y < info.RowsTop || y >= info.RowsBottom {
		return -1
	}
	if x < 0 || x >= g.columns*g.cell.Width {
		return -1
	}
	offset := (y-info.RowsTop)/g.cell.Height*g.columns + x/g.cell.Width
	if offset >= info.Count {
		return -1
	}
	return g.LinearIndex(info.Section, offset)
}

// Columns computes how many item cells of the given width fit in a panel of
// the given width, clamped to at least one.
func Columns(panelWidth, cellWidth int) int {
	if cellWidth < 1 {
		panic("gridlayout: cell width must be >= 1")
	}
	if cols := panelWidth / cellWidth; cols > 1 {
		return cols
	}
	return 1
}
