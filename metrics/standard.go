package metrics

// Standard metrics for the network dispatch layer, registered against
// DefaultRegistry on package init so every subsystem shares one set of
// instruments regardless of import order.
var (
	// Submitted counts every successful try-send into the beacon-processor
	// channel, across all work kinds.
	Submitted = DefaultRegistry.Counter("dispatch.submitted")

	// OverflowFull counts submissions rejected because the beacon-processor
	// channel was full.
	OverflowFull = DefaultRegistry.Counter("dispatch.overflow_full")

	// OverflowClosed counts submissions rejected because the beacon-processor
	// channel was closed.
	OverflowClosed = DefaultRegistry.Counter("dispatch.overflow_closed")

	// SubmitLatency observes the wall-clock microseconds between a message's
	// seen_timestamp and the completion of its submission.
	SubmitLatency = DefaultRegistry.Histogram("dispatch.submit_latency_us")

	// DuplicateCacheSize tracks the current number of in-flight tokens held
	// by the duplicate-suppression cache.
	DuplicateCacheSize = DefaultRegistry.Gauge("duplicate_cache.size")

	// DuplicateCacheRejected counts try_insert calls that found a root
	// already in flight.
	DuplicateCacheRejected = DefaultRegistry.Counter("duplicate_cache.rejected")

	// DelayedLookupRegistrySize tracks the current number of roots held by
	// the delayed-lookup registry.
	DelayedLookupRegistrySize = DefaultRegistry.Gauge("delayed_lookup.registry_size")

	// DelayedLookupTicks counts scheduler ticks, including ticks skipped
	// because the slot clock was unavailable.
	DelayedLookupTicks = DefaultRegistry.Counter("delayed_lookup.ticks")

	// DelayedLookupRootsDrained counts the total number of roots forwarded
	// to the sync channel across all ticks.
	DelayedLookupRootsDrained = DefaultRegistry.Counter("delayed_lookup.roots_drained")
)
