package beaconprocessor

import "github.com/macladson/lighthouse-dispatch/netmsg"

// Channels bundles the two send-only endpoints the dispatch facade holds
// into the beacon processor, constructed together so a caller can never
// accidentally pair a beacon-processor sender with a reprocess receiver
// from a different pool.
type Channels struct {
	// BeaconProcessor is bounded; submissions use non-blocking try-send
	// and report Overflow on rejection.
	BeaconProcessor chan WorkEnvelope
	// Reprocess is bounded; cloned into processing closures that may
	// re-queue a message once a precondition becomes true. Its overflow
	// is the processing body's concern, not the facade's.
	Reprocess chan netmsg.ReprocessQueueMessage
}

// NewChannels allocates a Channels with the given beacon-processor and
// reprocess queue capacities.
func NewChannels(beaconProcessorCapacity, reprocessCapacity int) Channels {
	return Channels{
		BeaconProcessor: make(chan WorkEnvelope, beaconProcessorCapacity),
		Reprocess:       make(chan netmsg.ReprocessQueueMessage, reprocessCapacity),
	}
}
