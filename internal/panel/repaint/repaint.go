// Package repaint coalesces asynchronous repaint requests from independently
// animating glyphs into a single timer.
//
// Every animating glyph wants to be repainted at its own next-frame time.
// Requests sharing a frame interval (the duration class) are merged into one
// bucket holding a single deadline and the set of content ids awaiting
// repaint. One timer is kept armed for the earliest deadline across all
// buckets; firing services every due bucket at once and reports the union of
// their content ids for scoped invalidation.
package repaint

import "time"

// ContentID identifies one distinct animated content document. Instances are
// shared, so many grid cells may animate under the same id.
type ContentID uint64

// bucket accumulates requests for one duration class. The deadline only
// moves forward within the bucket's lifetime; it is discarded once serviced.
type bucket struct {
	when time.Time
	ids  map[ContentID]struct{}
}

// Coalescer groups repaint requests by duration class and drives a single
// host timer. It is not safe for concurrent use; all calls must come from
// the UI loop. The host supplies:
//
//   - now: the clock (injectable for tests)
//   - arm: (re)arm the single wake-up timer; a later arm replaces any
//     earlier one, the host never needs to cancel
//   - invalidate: called with the union of content ids whose deadline has
//     passed; the host translates ids to screen regions
//
// Requests only record state; the timer is reconsidered when the host calls
// Flush at the end of its event turn. Batching the reconsideration this way
// means a burst of requests in one turn arms the timer once, for the final
// deadline, instead of re-arming per request.
type Coalescer struct {
	now        func() time.Time
	arm        func(time.Duration)
	invalidate func([]ContentID)

	buckets    map[time.Duration]*bucket
	next       time.Time // deadline the host timer is armed for; zero if none
	dirty      bool      // a Request arrived since the last Flush
	scheduling bool      // guards re-entrant schedule calls
}

// New creates a Coalescer wired to the host's clock, timer and invalidation
// sink.
func New(now func() time.Time, arm func(time.Duration), invalidate func([]ContentID)) *Coalescer {
	return &Coalescer{
		now:        now,
		arm:        arm,
		invalidate: invalidate,
		buckets:    make(map[time.Duration]*bucket),
	}
}

// Request records that the given content id wants a repaint no later than
// when, under the given duration class. Within a class the recorded deadline
// only ever advances: a request earlier than the class's current deadline
// joins the pending set but does not pull the deadline back.
func (c *Coalescer) Request(id ContentID, class time.Duration, when time.Time) {
	b := c.buckets[class]
	if b == nil {
		b = &bucket{ids: make(map[ContentID]struct{})}
		c.buckets[class] = b
	}
	if b.when.Before(when) {
		b.when = when
	}
	b.ids[id] = struct{}{}
	c.dirty = true
}

// Flush reconsiders the timer after a batch of requests. No-op when nothing
// changed since the last call.
func (c *Coalescer) Flush() {
	if !c.dirty {
		return
	}
	c.dirty = false
	c.schedule()
}

// Fire services every bucket whose deadline has passed and reschedules for
// whatever remains. The host calls this when the armed timer expires. A
// bucket whose deadline advanced past the armed wake-up is simply left
// pending and picked up by the rescheduling step.
func (c *Coalescer) Fire() {
	c.next = time.Time{}
	c.dirty = false
	c.fire(c.now())
	c.schedule()
}

// Pending reports whether any bucket is awaiting service.
func (c *Coalescer) Pending() bool {
	return len(c.buckets) > 0
}

// fire removes due buckets and hands their combined ids to the host.
func (c *Coalescer) fire(now time.Time) {
	var ids []ContentID
	for class, b := range c.buckets {
		if b.when.After(now) {
			continue
		}
		for id := range b.ids {
			ids = append(ids, id)
		}
		delete(c.buckets, class)
	}
	if len(ids) > 0 {
		c.invalidate(ids)
	}
}

// schedule re-examines the minimum deadline across pending buckets and
// re-arms the host timer if that minimum is earlier than whatever the timer
// currently targets. A deadline already in the past is serviced immediately
// rather than armed as a zero-delay timer. Re-entrant calls (an invalidate
// callback issuing new requests) are absorbed by the outermost invocation,
// which keeps looping until the remaining deadlines are all in the future.
func (c *Coalescer) schedule() {
	if c.scheduling {
		return
	}
	c.scheduling = true
	defer func() { c.scheduling = false }()

	for {
		var earliest time.Time
		for _, b := range c.buckets {
			if earliest.IsZero() || b.when.Before(earliest) {
				earliest = b.when
			}
		}
		if earliest.IsZero() {
			return
		}
		if !c.next.IsZero() && !earliest.Before(c.next) {
			// Timer already armed for an earlier or equal wake-up.
			return
		}
		now := c.now()
		if !now.Before(earliest) {
			c.next = time.Time{}
			c.fire(now)
			continue
		}
		c.next = earliest
		c.arm(earliest.Sub(now))
		return
	}
}
