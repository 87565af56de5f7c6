package dispatch

import (
	"github.com/macladson/lighthouse-dispatch/beaconprocessor"
	"github.com/macladson/lighthouse-dispatch/delayedlookup"
	"github.com/macladson/lighthouse-dispatch/netmsg"
)

// Harness wires a Dispatcher to in-memory channels and exposes their
// receiving ends, so tests can assert exactly what would have been sent
// to the beacon processor, the network, or the sync layer without a real
// worker pool, network stack, or sync manager behind them.
type Harness struct {
	*Dispatcher

	BeaconProcessor <-chan beaconprocessor.WorkEnvelope
	Reprocess       <-chan netmsg.ReprocessQueueMessage
	Network         <-chan netmsg.NetworkMessage
	Sync            <-chan netmsg.SyncMessage
}

// NewForTesting builds a Harness with modest, fixed-capacity in-memory
// channels and the given handlers. Pass a zero Handlers to get no-op
// processing bodies, or populate select fields to assert they were
// invoked with the expected package.
func NewForTesting(handlers Handlers) *Harness {
	beaconCh := make(chan beaconprocessor.WorkEnvelope, 16)
	reprocessCh := make(chan netmsg.ReprocessQueueMessage, 16)
	networkCh := make(chan netmsg.NetworkMessage, 16)
	syncCh := make(chan netmsg.SyncMessage, 16)

	d := New(Config{
		Channels: beaconprocessor.Channels{
			BeaconProcessor: beaconCh,
			Reprocess:       reprocessCh,
		},
		NetworkCh:             networkCh,
		SyncCh:                syncCh,
		DelayedLookupRegistry: delayedlookup.NewRegistry(),
		Handlers:              handlers,
	})

	return &Harness{
		Dispatcher:      d,
		BeaconProcessor: beaconCh,
		Reprocess:       reprocessCh,
		Network:         networkCh,
		Sync:            syncCh,
	}
}

// NewForTestingWithCapacity is like NewForTesting but lets a test control
// the beacon-processor channel's capacity directly, needed to exercise
// the overflow path deterministically (see the S4 overflow scenario).
func NewForTestingWithCapacity(handlers Handlers, beaconProcessorCapacity int) *Harness {
	beaconCh := make(chan beaconprocessor.WorkEnvelope, beaconProcessorCapacity)
	reprocessCh := make(chan netmsg.ReprocessQueueMessage, 16)
	networkCh := make(chan netmsg.NetworkMessage, 16)
	syncCh := make(chan netmsg.SyncMessage, 16)

	d := New(Config{
		Channels: beaconprocessor.Channels{
			BeaconProcessor: beaconCh,
			Reprocess:       reprocessCh,
		},
		NetworkCh:             networkCh,
		SyncCh:                syncCh,
		DelayedLookupRegistry: delayedlookup.NewRegistry(),
		Handlers:              handlers,
	})

	return &Harness{
		Dispatcher:      d,
		BeaconProcessor: beaconCh,
		Reprocess:       reprocessCh,
		Network:         networkCh,
		Sync:            syncCh,
	}
}
