// Package render owns the shared renderable state behind animated custom
// glyphs.
//
// Each distinct content document gets exactly one Instance, held in a
// Registry keyed by content id; catalog sections refer to instances by id
// only and never own them. An instance decodes its frames lazily on first
// paint and can drop them again when its sections scroll out of view, so
// steady-state cost tracks the visible sections rather than the catalog.
package render

import (
	"time"

	"github.com/lhoarau/glyphdeck/internal/panel/gridlayout"
)

// ContentID identifies one distinct animated content document.
type ContentID uint64

// Frame is one rendered animation frame: one styled string per cell row,
// each exactly the cell width in display columns.
type Frame struct {
	Lines []string
}

// Loader decodes the frames for one content document. Implementations are
// cheap to hold unloaded; all decoding cost lives in Load.
type Loader interface {
	// Interval returns the frame interval. It doubles as the repaint
	// duration class: contents sharing an interval share a repaint bucket.
	Interval() time.Duration

	// Preview returns a plain placeholder glyph shown while frames are
	// unavailable.
	Preview() string

	// Load decodes all frames at the given cell size.
	Load(cell gridlayout.Size) ([]Frame, error)
}

// RepaintFunc asks the host to repaint the given content no later than when,
// coalesced under the given duration class.
type RepaintFunc func(id ContentID, class time.Duration, when time.Time)

// Instance is the decoded render state for one content id, shared by every
// grid cell showing that content. Created on first reference during a
// catalog refresh and kept for the panel's lifetime; only the decoded
// frames are unloaded and reloaded.
type Instance struct {
	id      ContentID
	loader  Loader
	repaint RepaintFunc
	frames  []Frame
	failed  bool
}

// ID returns the content id this instance renders.
func (in *Instance) ID() ContentID {
	return in.id
}

// Loaded reports whether decoded frames are currently held.
func (in *Instance) Loaded() bool {
	return in.frames != nil
}

// Paint returns the frame to draw at the given time, loading frames on
// first use. For animated contents it also requests the next-frame repaint
// through the registry's repaint func. Returns false when no frame is
// available (decode failed); callers fall back to Preview.
func (in *Instance) Paint(now time.Time, cell gridlayout.Size) (Frame, bool) {
	if in.frames == nil && !in.failed {
		frames, err := in.loader.Load(cell)
		if err != nil || len(frames) == 0 {
			in.failed = true
		} else {
			in.frames = frames
		}
	}
	if in.failed {
		return Frame{}, false
	}
	if len(in.frames) == 1 {
		return in.frames[0], true
	}
	interval := in.loader.Interval()
	idx := int((now.UnixNano() / int64(interval)) % int64(len(in.frames)))
	in.repaint(in.id, interval, now.Truncate(interval).Add(interval))
	return in.frames[idx], true
}

// Preview returns the loader's placeholder glyph.
func (in *Instance) Preview() string {
	return in.loader.Preview()
}

// Unload drops the decoded frames. The next Paint reloads them.
func (in *Instance) Unload() {
	in.frames = nil
	in.failed = false
}

// Registry owns every Instance, keyed by content id.
type Registry struct {
	repaint   RepaintFunc
	instances map[ContentID]*Instance
}

// NewRegistry creates an empty registry. All instances created through it
// report repaint needs through the given func.
func NewRegistry(repaint RepaintFunc) *Registry {
	return &Registry{
		repaint:   repaint,
		instances: make(map[ContentID]*Instance),
	}
}

// Ensure returns the instance for id, creating it with the loader from
// newLoader on first reference. The factory is only invoked when the id is
// not yet registered.
func (r *Registry) Ensure(id ContentID, newLoader func() Loader) *Instance {
	if in, ok := r.instances[id]; ok {
		return in
	}
	in := &Instance{id: id, loader: newLoader(), repaint: r.repaint}
	r.instances[id] = in
	return in
}

// Lookup returns the instance for id, or nil if never registered.
func (r *Registry) Lookup(id ContentID) *Instance {
	return r.instances[id]
}

// Len returns the number of registered instances.
func (r *Registry) Len() int {
	return len(r.instances)
}

// UnloadAll drops decoded frames from every instance, for cell-size changes
// and panel teardown.
func (r *Registry) UnloadAll() {
	for _, in := range r.instances {
		in.Unload()
	}
}
