package dispatch

import (
	"context"

	"github.com/macladson/lighthouse-dispatch/beaconprocessor"
	"github.com/macladson/lighthouse-dispatch/netmsg"
)

// Handlers holds the actual gossip/RPC processing bodies: cryptographic
// verification, state-transition application, fork-choice updates. These
// are external collaborators this package only hands deferred work items
// to; it never calls into them except from inside the closures it builds
// at submission time. A nil field is replaced by a no-op at construction,
// which is how the test harness exercises the facade without a real
// worker pool behind it.
type Handlers struct {
	GossipAttestation      func(beaconprocessor.AttestationPackage, chan<- netmsg.ReprocessQueueMessage)
	GossipAttestationBatch func([]beaconprocessor.AttestationPackage, chan<- netmsg.ReprocessQueueMessage)
	GossipAggregate        func(beaconprocessor.AttestationPackage, chan<- netmsg.ReprocessQueueMessage)
	GossipAggregateBatch   func([]beaconprocessor.AttestationPackage, chan<- netmsg.ReprocessQueueMessage)

	// GossipBlock is invoked after the closure has consulted the
	// duplicate cache: duplicate is true when the root was already in
	// flight, in which case the handler should treat this as a no-op
	// import. The closure releases its token when the handler returns.
	GossipBlock func(ctx context.Context, pkg beaconprocessor.GossipBlockPackage, reprocess chan<- netmsg.ReprocessQueueMessage, invalidBlockStorage InvalidBlockStorage, duplicate bool)

	GossipBlobSidecar func(ctx context.Context, pkg beaconprocessor.GossipBlobSidecarPackage)

	GossipSyncSignature               func(beaconprocessor.SimpleGossipPackage)
	GossipSyncContribution             func(beaconprocessor.SimpleGossipPackage)
	GossipVoluntaryExit                func(beaconprocessor.SimpleGossipPackage)
	GossipProposerSlashing             func(beaconprocessor.SimpleGossipPackage)
	GossipAttesterSlashing             func(beaconprocessor.SimpleGossipPackage)
	GossipBlsToExecutionChange         func(beaconprocessor.SimpleGossipPackage)
	GossipLightClientFinalityUpdate    func(beaconprocessor.SimpleGossipPackage)
	GossipLightClientOptimisticUpdate func(beaconprocessor.SimpleGossipPackage)

	RpcBlock                    func(beaconprocessor.RpcPackage)
	RpcBlobs                    func(beaconprocessor.RpcPackage)
	Status                      func(beaconprocessor.RpcPackage)
	BlobsByRangeRequest         func(beaconprocessor.RpcPackage)
	BlobsByRootsRequest         func(beaconprocessor.RpcPackage)
	LightClientBootstrapRequest func(beaconprocessor.RpcPackage)

	BlocksByRangeRequest func(ctx context.Context, idle *beaconprocessor.IdleSignal, pkg beaconprocessor.RpcPackage)
	BlocksByRootsRequest func(ctx context.Context, idle *beaconprocessor.IdleSignal, pkg beaconprocessor.RpcPackage)

	// ChainSegment and ChainSegmentBackfill receive notifyExecutionLayer,
	// already suppressed by the facade if the node is syncing finalized
	// history at the moment the closure runs.
	ChainSegment         func(ctx context.Context, pkg beaconprocessor.ChainSegmentPackage, notifyExecutionLayer bool)
	ChainSegmentBackfill func(ctx context.Context, pkg beaconprocessor.ChainSegmentPackage, notifyExecutionLayer bool)
}

func noopAttestation(beaconprocessor.AttestationPackage, chan<- netmsg.ReprocessQueueMessage) {}
func noopAttestationBatch(
	[]beaconprocessor.AttestationPackage, chan<- netmsg.ReprocessQueueMessage,
) {
}
func noopGossipBlock(context.Context, beaconprocessor.GossipBlockPackage, chan<- netmsg.ReprocessQueueMessage, InvalidBlockStorage, bool) {
}
func noopBlobSidecar(context.Context, beaconprocessor.GossipBlobSidecarPackage) {}
func noopSimple(beaconprocessor.SimpleGossipPackage)                           {}
func noopRpc(beaconprocessor.RpcPackage)                                      {}
func noopStreaming(context.Context, *beaconprocessor.IdleSignal, beaconprocessor.RpcPackage) {
}
func noopChainSegment(context.Context, beaconprocessor.ChainSegmentPackage, bool) {}

// withDefaults fills any nil handler field with a no-op, so callers (in
// particular the test harness) need only supply the handlers they care
// about asserting on.
func (h Handlers) withDefaults() Handlers {
	if h.GossipAttestation == nil {
		h.GossipAttestation = noopAttestation
	}
	if h.GossipAttestationBatch == nil {
		h.GossipAttestationBatch = noopAttestationBatch
	}
	if h.GossipAggregate == nil {
		h.GossipAggregate = noopAttestation
	}
	if h.GossipAggregateBatch == nil {
		h.GossipAggregateBatch = noopAttestationBatch
	}
	if h.GossipBlock == nil {
		h.GossipBlock = noopGossipBlock
	}
	if h.GossipBlobSidecar == nil {
		h.GossipBlobSidecar = noopBlobSidecar
	}
	if h.GossipSyncSignature == nil {
		h.GossipSyncSignature = noopSimple
	}
	if h.GossipSyncContribution == nil {
		h.GossipSyncContribution = noopSimple
	}
	if h.GossipVoluntaryExit == nil {
		h.GossipVoluntaryExit = noopSimple
	}
	if h.GossipProposerSlashing == nil {
		h.GossipProposerSlashing = noopSimple
	}
	if h.GossipAttesterSlashing == nil {
		h.GossipAttesterSlashing = noopSimple
	}
	if h.GossipBlsToExecutionChange == nil {
		h.GossipBlsToExecutionChange = noopSimple
	}
	if h.GossipLightClientFinalityUpdate == nil {
		h.GossipLightClientFinalityUpdate = noopSimple
	}
	if h.GossipLightClientOptimisticUpdate == nil {
		h.GossipLightClientOptimisticUpdate = noopSimple
	}
	if h.RpcBlock == nil {
		h.RpcBlock = noopRpc
	}
	if h.RpcBlobs == nil {
		h.RpcBlobs = noopRpc
	}
	if h.Status == nil {
		h.Status = noopRpc
	}
	if h.BlobsByRangeRequest == nil {
		h.BlobsByRangeRequest = noopRpc
	}
	if h.BlobsByRootsRequest == nil {
		h.BlobsByRootsRequest = noopRpc
	}
	if h.LightClientBootstrapRequest == nil {
		h.LightClientBootstrapRequest = noopRpc
	}
	if h.BlocksByRangeRequest == nil {
		h.BlocksByRangeRequest = noopStreaming
	}
	if h.BlocksByRootsRequest == nil {
		h.BlocksByRootsRequest = noopStreaming
	}
	if h.ChainSegment == nil {
		h.ChainSegment = noopChainSegment
	}
	if h.ChainSegmentBackfill == nil {
		h.ChainSegmentBackfill = noopChainSegment
	}
	return h
}
