// Package slotclock provides a read-only view of the consensus slot clock:
// the current slot, the wall-clock duration until the next slot boundary,
// and the seconds elapsed since the current slot began. The dispatch
// facade's delayed-lookup scheduler is the primary consumer; everything
// else in this module treats slot timing as an external fact.
package slotclock

import "time"

// Slot is a slot number in the consensus protocol.
type Slot uint64

// Clock is the read-only slot-timing view required by the delayed-lookup
// scheduler. All methods are safe for concurrent use.
type Clock interface {
	// SlotDuration returns the fixed wall-clock duration of one slot.
	SlotDuration() time.Duration

	// SingleLookupDelay returns the configured intra-slot delay before a
	// gossip-advertised-but-missing root is eligible for an RPC fetch.
	SingleLookupDelay() time.Duration

	// DurationToNextSlot returns the wall-clock duration remaining until
	// the next slot boundary. The second return is false when the clock
	// cannot currently answer (e.g. before genesis).
	DurationToNextSlot() (time.Duration, bool)

	// SecondsFromCurrentSlotStart returns how long the current slot has
	// been running. The second return is false under the same conditions
	// as DurationToNextSlot.
	SecondsFromCurrentSlotStart() (time.Duration, bool)

	// NowOrGenesis returns the current slot, or the genesis slot (0) if
	// called before genesis. The second return is false when the clock
	// cannot report a slot at all; SystemClock always reports one, while
	// ManualClock reports false while it is set unavailable.
	NowOrGenesis() (Slot, bool)
}

// SystemClock is a Clock backed by the wall clock and a fixed genesis
// instant, the production implementation.
type SystemClock struct {
	genesis     time.Time
	slotDur     time.Duration
	lookupDelay time.Duration
}

// NewSystemClock builds a SystemClock with the given genesis instant, slot
// duration, and single-lookup delay. Panics if slotDuration is not
// positive, mirroring the teacher's fail-fast config validation.
func NewSystemClock(genesis time.Time, slotDuration, lookupDelay time.Duration) *SystemClock {
	if slotDuration <= 0 {
		panic("slotclock: slot duration must be > 0")
	}
	return &SystemClock{genesis: genesis, slotDur: slotDuration, lookupDelay: lookupDelay}
}

func (c *SystemClock) SlotDuration() time.Duration      { return c.slotDur }
func (c *SystemClock) SingleLookupDelay() time.Duration { return c.lookupDelay }

func (c *SystemClock) DurationToNextSlot() (time.Duration, bool) {
	return c.durationToNextSlotAt(time.Now())
}

func (c *SystemClock) durationToNextSlotAt(now time.Time) (time.Duration, bool) {
	if now.Before(c.genesis) {
		return 0, false
	}
	elapsedInSlot := time.Duration(now.Sub(c.genesis).Nanoseconds() % c.slotDur.Nanoseconds())
	return c.slotDur - elapsedInSlot, true
}

func (c *SystemClock) SecondsFromCurrentSlotStart() (time.Duration, bool) {
	return c.secondsFromCurrentSlotStartAt(time.Now())
}

func (c *SystemClock) secondsFromCurrentSlotStartAt(now time.Time) (time.Duration, bool) {
	if now.Before(c.genesis) {
		return 0, false
	}
	return time.Duration(now.Sub(c.genesis).Nanoseconds() % c.slotDur.Nanoseconds()), true
}

func (c *SystemClock) NowOrGenesis() (Slot, bool) {
	now := time.Now()
	if now.Before(c.genesis) {
		return 0, true
	}
	return Slot(now.Sub(c.genesis) / c.slotDur), true
}

// ManualClock is a Clock whose notion of "now" is set explicitly by the
// caller, used by scheduler cadence tests that must control timing exactly
// (see the scenario in spec section 8, "with a manual clock").
type ManualClock struct {
	genesis     time.Time
	slotDur     time.Duration
	lookupDelay time.Duration
	now         time.Time
	unavailable bool
}

// NewManualClock builds a ManualClock starting at genesis.
func NewManualClock(genesis time.Time, slotDuration, lookupDelay time.Duration) *ManualClock {
	if slotDuration <= 0 {
		panic("slotclock: slot duration must be > 0")
	}
	return &ManualClock{genesis: genesis, slotDur: slotDuration, lookupDelay: lookupDelay, now: genesis}
}

// Set moves the manual clock's notion of "now".
func (c *ManualClock) Set(now time.Time) { c.now = now }

// Advance moves "now" forward by d.
func (c *ManualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// SetUnavailable makes every duration/slot query report unavailability,
// simulating the "clock unavailable" degraded path in spec section 4.3.
func (c *ManualClock) SetUnavailable(unavailable bool) { c.unavailable = unavailable }

func (c *ManualClock) SlotDuration() time.Duration      { return c.slotDur }
func (c *ManualClock) SingleLookupDelay() time.Duration { return c.lookupDelay }

func (c *ManualClock) DurationToNextSlot() (time.Duration, bool) {
	if c.unavailable || c.now.Before(c.genesis) {
		return 0, false
	}
	elapsedInSlot := time.Duration(c.now.Sub(c.genesis).Nanoseconds() % c.slotDur.Nanoseconds())
	return c.slotDur - elapsedInSlot, true
}

func (c *ManualClock) SecondsFromCurrentSlotStart() (time.Duration, bool) {
	if c.unavailable || c.now.Before(c.genesis) {
		return 0, false
	}
	return time.Duration(c.now.Sub(c.genesis).Nanoseconds() % c.slotDur.Nanoseconds()), true
}

func (c *ManualClock) NowOrGenesis() (Slot, bool) {
	if c.unavailable {
		return 0, false
	}
	if c.now.Before(c.genesis) {
		return 0, true
	}
	return Slot(c.now.Sub(c.genesis) / c.slotDur), true
}
