package delayedlookup

import (
	"context"
	"time"

	"github.com/macladson/lighthouse-dispatch/log"
	"github.com/macladson/lighthouse-dispatch/metrics"
	"github.com/macladson/lighthouse-dispatch/netmsg"
	"github.com/macladson/lighthouse-dispatch/slotclock"
)

// Scheduler is the single long-lived task that wakes on a slot-aligned
// cadence and hands the registry's accumulated roots to the sync layer.
// It is started once per process; there is no explicit stop signal, it
// terminates when its Run context is cancelled.
type Scheduler struct {
	registry *Registry
	clock    slotclock.Clock
	syncCh   chan<- netmsg.SyncMessage
	log      *log.Logger
}

// NewScheduler builds a Scheduler draining registry and forwarding to
// syncCh, timed by clock.
func NewScheduler(registry *Registry, clock slotclock.Clock, syncCh chan<- netmsg.SyncMessage) *Scheduler {
	return &Scheduler{
		registry: registry,
		clock:    clock,
		syncCh:   syncCh,
		log:      log.Default().Module("delayed_lookup"),
	}
}

// Run blocks, ticking the scheduler until ctx is cancelled. Callers spawn
// it in its own goroutine.
func (s *Scheduler) Run(ctx context.Context) {
	timer := time.NewTimer(s.firstWakeDelay())
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		return
	}
	s.tick()

	ticker := time.NewTicker(s.clock.SlotDuration())
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.tick()
		case <-ctx.Done():
			return
		}
	}
}

// firstWakeDelay computes the wall-clock delay until the scheduler's first
// tick, per the formula in the facade's contract: let d be the configured
// lookup delay and e the seconds elapsed in the current slot. If e > d,
// the gossip deadline within this slot has already passed, so the first
// wake waits for the next slot's deadline; otherwise it waits out the
// remainder of the current slot's deadline. If the slot clock cannot
// currently answer, this falls back to an immediate wake, but only after
// logging a critical message -- the degraded mode is permitted but must be
// observable.
func (s *Scheduler) firstWakeDelay() time.Duration {
	d := s.clock.SingleLookupDelay()
	e, ok := s.clock.SecondsFromCurrentSlotStart()
	if !ok {
		s.log.Crit("slot clock unavailable computing delayed-lookup first wake, falling back to immediate wake")
		return 0
	}

	if e > d {
		untilNextSlot, ok := s.clock.DurationToNextSlot()
		if !ok {
			s.log.Crit("slot clock unavailable computing duration to next slot, falling back to immediate wake")
			return 0
		}
		return untilNextSlot + d
	}
	return d - e
}

// tick drains the registry once and forwards each entry to the sync
// channel. If the slot clock cannot report a current slot, the tick is
// skipped entirely: no lookups are issued and the registry is left
// untouched, so nothing registered this tick is lost.
func (s *Scheduler) tick() {
	metrics.DelayedLookupTicks.Inc()

	if _, ok := s.clock.NowOrGenesis(); !ok {
		s.log.Error("slot clock unavailable, skipping delayed-lookup tick")
		return
	}

	for _, lookup := range s.registry.Drain() {
		msg := netmsg.SyncMessage{Kind: netmsg.SyncMessageDelayedLookup, DelayedLookup: lookup}
		func() {
			defer func() {
				if recover() != nil {
					s.log.Debug("sync channel full or closed, dropping delayed lookup", "root", lookup.Root)
				}
			}()
			select {
			case s.syncCh <- msg:
			default:
				s.log.Debug("sync channel full or closed, dropping delayed lookup", "root", lookup.Root)
			}
		}()
	}
}
