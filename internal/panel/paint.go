package panel

import (
	"time"

	"github.com/lhoarau/glyphdeck/internal/panel/gridlayout"
)

// paintVisible renders every custom item in the viewport into the frame
// cache and marks its section painted. Painting happens here rather than in
// View so frame advances can schedule wake-ups; View only reads the cache.
func (m *Model) paintVisible(now time.Time) {
	top := m.scrollTop
	bottom := m.scrollTop + m.viewHeight()
	m.grid.Enumerate(func(info gridlayout.SectionInfo) bool {
		if info.RowsTop >= bottom {
			return false
		}
		if info.RowsBottom <= top || !m.cat.IsCustom(info.Section) {
			return true
		}
		set := m.cat.Custom(info.Section)
		for _, item := range set.List {
			in := m.registry.Lookup(item.Content)
			if in == nil {
				continue
			}
			if frame, ok := in.Paint(now, m.cell); ok {
				m.frames[item.Content] = frame
			}
		}
		set.Painted = true
		return true
	})
}

// unloadNotSeen evicts decoded frames of custom sections that have been
// painted but are now fully outside the viewport, so long scrolls do not
// accumulate every set's frames. Sections never painted are left alone.
func (m *Model) unloadNotSeen() {
	top := m.scrollTop
	bottom := m.scrollTop + m.viewHeight()
	m.grid.Enumerate(func(info gridlayout.SectionInfo) bool {
		if !m.cat.IsCustom(info.Section) {
			return true
		}
		if info.RowsBottom > top && info.RowsTop < bottom {
			return true
		}
		set := m.cat.Custom(info.Section)
		if !set.Painted {
			return true
		}
		set.Painted = false
		for _, item := range set.List {
			if in := m.registry.Lookup(item.Content); in != nil {
				in.Unload()
			}
			delete(m.frames, item.Content)
		}
		return true
	})
}
