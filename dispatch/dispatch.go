// Package dispatch implements the ingress classifier and dispatch facade:
// the public surface network-reader goroutines call into, one submission
// method per work kind. Each method classifies the work, builds its
// envelope and deferred processing closure, and performs a non-blocking
// try-send into the beacon-processor channel.
package dispatch

import (
	"time"

	"github.com/macladson/lighthouse-dispatch/beaconprocessor"
	"github.com/macladson/lighthouse-dispatch/delayedlookup"
	"github.com/macladson/lighthouse-dispatch/duplicatecache"
	"github.com/macladson/lighthouse-dispatch/log"
	"github.com/macladson/lighthouse-dispatch/metrics"
	"github.com/macladson/lighthouse-dispatch/netmsg"
)

// defaultDuplicateCacheCapacity is used when Config.DuplicateCacheCapacity
// is left at zero; the contract only requires "bounded, LRU", so this
// module picks a concrete default per its open-questions resolution.
const defaultDuplicateCacheCapacity = 1024

// Config configures a Dispatcher. A zero DuplicateCacheCapacity falls back
// to defaultDuplicateCacheCapacity; BeaconProcessorCapacity and
// ReprocessCapacity are not read by New, which uses the channels in
// Channels as given. The channel fields must be supplied by the caller (or
// use NewForTesting, which wires stand-ins); nil Handlers fields are
// replaced by no-ops.
type Config struct {
	BeaconProcessorCapacity int
	ReprocessCapacity       int
	DuplicateCacheCapacity  int

	Channels beaconprocessor.Channels

	// NetworkCh and SyncCh are the unbounded, fire-and-forget outbound
	// channels used by egress helpers and the delayed-lookup scheduler.
	NetworkCh chan<- netmsg.NetworkMessage
	SyncCh    chan<- netmsg.SyncMessage

	DelayedLookupRegistry *delayedlookup.Registry

	InvalidBlockStorage InvalidBlockStorage

	// IsSyncingFinalizedHistory reports whether the node is currently
	// importing historical blocks, read by the ChainSegment closure to
	// decide whether to suppress execution-layer notification. It is a
	// read-only snapshot of upstream shared state; Dispatcher never
	// writes to it.
	IsSyncingFinalizedHistory func() bool

	Handlers Handlers
}

// Dispatcher is the shared-ownership facade: every submission method
// captures a reference to it into the closure it builds, so the closure's
// lifetime is independent of the submitting call. All fields below are
// either immutable after construction or internally synchronized, so a
// *Dispatcher may be shared freely across goroutines, including
// network-reader goroutines calling submission methods concurrently.
type Dispatcher struct {
	beaconProcessor chan<- beaconprocessor.WorkEnvelope
	reprocess       chan<- netmsg.ReprocessQueueMessage

	networkCh chan<- netmsg.NetworkMessage
	syncCh    chan<- netmsg.SyncMessage

	duplicateCache        *duplicatecache.Cache
	delayedLookupRegistry *delayedlookup.Registry

	invalidBlockStorage InvalidBlockStorage
	isSyncingFinalized  func() bool

	handlers Handlers

	log *log.Logger
}

// New builds a Dispatcher from cfg. Callers own the receiving ends of
// cfg.Channels, cfg.NetworkCh and cfg.SyncCh and are responsible for
// running the worker pool, network sender, and sync manager that consume
// them; this package only ever sends.
func New(cfg Config) *Dispatcher {
	if cfg.DuplicateCacheCapacity <= 0 {
		cfg.DuplicateCacheCapacity = defaultDuplicateCacheCapacity
	}
	if cfg.IsSyncingFinalizedHistory == nil {
		cfg.IsSyncingFinalizedHistory = func() bool { return false }
	}
	if cfg.DelayedLookupRegistry == nil {
		cfg.DelayedLookupRegistry = delayedlookup.NewRegistry()
	}

	return &Dispatcher{
		beaconProcessor:       cfg.Channels.BeaconProcessor,
		reprocess:             cfg.Channels.Reprocess,
		networkCh:             cfg.NetworkCh,
		syncCh:                cfg.SyncCh,
		duplicateCache:        duplicatecache.NewCache(cfg.DuplicateCacheCapacity),
		delayedLookupRegistry: cfg.DelayedLookupRegistry,
		invalidBlockStorage:   cfg.InvalidBlockStorage,
		isSyncingFinalized:    cfg.IsSyncingFinalizedHistory,
		handlers:              cfg.Handlers.withDefaults(),
		log:                   log.Default().Module("dispatch"),
	}
}

// DuplicateCache exposes the shared duplicate-suppression cache so gossip
// processing bodies running outside this package (wired through Handlers)
// can consult it, per section 4.2: the cache is consulted inside the
// gossip-block processing body, not at submission time.
func (d *Dispatcher) DuplicateCache() *duplicatecache.Cache { return d.duplicateCache }

// DelayedLookupRegistry exposes the shared registry so gossip processing
// bodies can register roots they see advertised but do not yet have.
func (d *Dispatcher) DelayedLookupRegistry() *delayedlookup.Registry {
	return d.delayedLookupRegistry
}

// submit performs the non-blocking try-send shared by every submission
// method: exactly one try-send on success, zero on failure, no logging at
// this layer (logging is the caller's concern per section 4.1). On success
// it also observes submission latency for every work kind that carries a
// seen_timestamp.
func (d *Dispatcher) submit(w beaconprocessor.Work) error {
	env := beaconprocessor.NewWorkEnvelope(w)
	if err := beaconprocessor.TrySend(d.beaconProcessor, env); err != nil {
		switch err.Reason {
		case beaconprocessor.ReasonFull:
			metrics.OverflowFull.Inc()
		case beaconprocessor.ReasonClosed:
			metrics.OverflowClosed.Inc()
		}
		return err
	}
	metrics.Submitted.Inc()
	if tw, ok := w.(beaconprocessor.TimedWork); ok {
		latency := time.Duration(time.Now().UnixNano()) - tw.SeenAt()
		metrics.SubmitLatency.Observe(float64(latency.Microseconds()))
	}
	return nil
}
