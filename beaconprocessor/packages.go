package beaconprocessor

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/macladson/lighthouse-dispatch/netmsg"
)

// Ingress carries the fields every gossip-originated work kind has in
// common: who sent it, which gossip message it arrived as, and when the
// network layer first saw it. SeenTimestamp is nanoseconds since the Unix
// epoch expressed as a time.Duration (so it is directly comparable against
// time.Duration(time.Now().UnixNano())), the convention dispatch.submit
// uses to compute submission latency.
type Ingress struct {
	Peer          netmsg.PeerID
	MessageID     netmsg.MessageID
	SeenTimestamp time.Duration
}

// --- attestation-style variants: individual + batch closures ---------------

// AttestationPackage is the fully assembled input to an attestation or
// aggregate processing closure.
type AttestationPackage struct {
	Ingress
	Subnet       uint64
	ShouldImport bool
	Payload      any
}

// GossipAttestationWork carries an unaggregated attestation plus both its
// individual and batch processing closures, so the worker pool may
// coalesce many packages into one BLS verification.
type GossipAttestationWork struct {
	Package      AttestationPackage
	Process      func(AttestationPackage)
	ProcessBatch func([]AttestationPackage)
}

func (w *GossipAttestationWork) Kind() Kind { return KindGossipAttestation }

func (w *GossipAttestationWork) SeenAt() time.Duration { return w.Package.SeenTimestamp }

// GossipAggregateWork is the aggregate-attestation counterpart of
// GossipAttestationWork.
type GossipAggregateWork struct {
	Package      AttestationPackage
	Process      func(AttestationPackage)
	ProcessBatch func([]AttestationPackage)
}

func (w *GossipAggregateWork) Kind() Kind { return KindGossipAggregate }

func (w *GossipAggregateWork) SeenAt() time.Duration { return w.Package.SeenTimestamp }

// --- gossip block: asynchronous continuation, duplicate-cache aware -------

// GossipBlockPackage is the input to a gossip-block processing continuation.
// The duplicate cache is consulted inside Process, not at submission time.
type GossipBlockPackage struct {
	Ingress
	Root    common.Hash
	Payload any
}

// GossipBlockWork is modelled as an asynchronous continuation: Process is
// handed a context so the worker pool's runtime can cancel it at a
// suspension point on shutdown.
type GossipBlockWork struct {
	Package GossipBlockPackage
	Process func(ctx context.Context)
}

func (w *GossipBlockWork) Kind() Kind { return KindGossipBlock }

func (w *GossipBlockWork) SeenAt() time.Duration { return w.Package.SeenTimestamp }

// --- remaining gossip variants: synchronous processing ---------------------

// GossipBlobSidecarPackage is the input to a blob-sidecar processing
// closure.
type GossipBlobSidecarPackage struct {
	Ingress
	BlockRoot common.Hash
	Index     uint64
	Payload   any
}

type GossipBlobSidecarWork struct {
	Package GossipBlobSidecarPackage
	Process func(GossipBlobSidecarPackage)
}

func (w *GossipBlobSidecarWork) Kind() Kind { return KindGossipBlobSidecar }

func (w *GossipBlobSidecarWork) SeenAt() time.Duration { return w.Package.SeenTimestamp }

// SimpleGossipPackage covers the gossip variants that carry a single opaque
// payload with no further structure the dispatch layer needs to inspect:
// sync-committee signatures and contributions, voluntary exits, proposer
// and attester slashings, BLS-to-execution changes, and light-client
// update gossip.
type SimpleGossipPackage struct {
	Ingress
	Payload any
}

type GossipSyncSignatureWork struct {
	Package SimpleGossipPackage
	Process func(SimpleGossipPackage)
}

func (w *GossipSyncSignatureWork) Kind() Kind { return KindGossipSyncSignature }

func (w *GossipSyncSignatureWork) SeenAt() time.Duration { return w.Package.SeenTimestamp }

type GossipSyncContributionWork struct {
	Package SimpleGossipPackage
	Process func(SimpleGossipPackage)
}

func (w *GossipSyncContributionWork) Kind() Kind { return KindGossipSyncContribution }

func (w *GossipSyncContributionWork) SeenAt() time.Duration { return w.Package.SeenTimestamp }

type GossipVoluntaryExitWork struct {
	Package SimpleGossipPackage
	Process func(SimpleGossipPackage)
}

func (w *GossipVoluntaryExitWork) Kind() Kind { return KindGossipVoluntaryExit }

func (w *GossipVoluntaryExitWork) SeenAt() time.Duration { return w.Package.SeenTimestamp }

type GossipProposerSlashingWork struct {
	Package SimpleGossipPackage
	Process func(SimpleGossipPackage)
}

func (w *GossipProposerSlashingWork) Kind() Kind { return KindGossipProposerSlashing }

func (w *GossipProposerSlashingWork) SeenAt() time.Duration { return w.Package.SeenTimestamp }

type GossipAttesterSlashingWork struct {
	Package SimpleGossipPackage
	Process func(SimpleGossipPackage)
}

func (w *GossipAttesterSlashingWork) Kind() Kind { return KindGossipAttesterSlashing }

func (w *GossipAttesterSlashingWork) SeenAt() time.Duration { return w.Package.SeenTimestamp }

type GossipBlsToExecutionChangeWork struct {
	Package SimpleGossipPackage
	Process func(SimpleGossipPackage)
}

func (w *GossipBlsToExecutionChangeWork) Kind() Kind { return KindGossipBlsToExecutionChange }

func (w *GossipBlsToExecutionChangeWork) SeenAt() time.Duration { return w.Package.SeenTimestamp }

type GossipLightClientFinalityUpdateWork struct {
	Package SimpleGossipPackage
	Process func(SimpleGossipPackage)
}

func (w *GossipLightClientFinalityUpdateWork) Kind() Kind {
	return KindGossipLightClientFinalityUpdate
}

func (w *GossipLightClientFinalityUpdateWork) SeenAt() time.Duration { return w.Package.SeenTimestamp }

type GossipLightClientOptimisticUpdateWork struct {
	Package SimpleGossipPackage
	Process func(SimpleGossipPackage)
}

func (w *GossipLightClientOptimisticUpdateWork) Kind() Kind {
	return KindGossipLightClientOptimisticUpdate
}

func (w *GossipLightClientOptimisticUpdateWork) SeenAt() time.Duration {
	return w.Package.SeenTimestamp
}

// --- RPC server / client variants ------------------------------------------

// RpcPackage is the input to a synchronous RPC-serving or RPC-response
// processing closure. SeenTimestamp follows the same Unix-epoch-nanosecond
// convention as Ingress.SeenTimestamp.
type RpcPackage struct {
	Peer          netmsg.PeerID
	SeenTimestamp time.Duration
	Payload       any
}

type RpcBlockWork struct {
	Package RpcPackage
	Process func(RpcPackage)
}

func (w *RpcBlockWork) Kind() Kind { return KindRpcBlock }

func (w *RpcBlockWork) SeenAt() time.Duration { return w.Package.SeenTimestamp }

// RpcBlobSidecar is an opaque blob-sidecar slot in an RpcBlobs submission;
// Empty reports whether the slot carries no sidecar at all. The facade
// applies the zero-short-circuit rule at submission time: if every slot in
// a submission is empty, nothing is ever sent.
type RpcBlobSidecar struct {
	Payload any
	Empty   bool
}

type RpcBlobsWork struct {
	Package RpcPackage
	Process func(RpcPackage)
}

func (w *RpcBlobsWork) Kind() Kind { return KindRpcBlobs }

func (w *RpcBlobsWork) SeenAt() time.Duration { return w.Package.SeenTimestamp }

type StatusWork struct {
	Package RpcPackage
	Process func(RpcPackage)
}

func (w *StatusWork) Kind() Kind { return KindStatus }

func (w *StatusWork) SeenAt() time.Duration { return w.Package.SeenTimestamp }

type BlobsByRangeRequestWork struct {
	Package RpcPackage
	Process func(RpcPackage)
}

func (w *BlobsByRangeRequestWork) Kind() Kind { return KindBlobsByRangeRequest }

func (w *BlobsByRangeRequestWork) SeenAt() time.Duration { return w.Package.SeenTimestamp }

type BlobsByRootsRequestWork struct {
	Package RpcPackage
	Process func(RpcPackage)
}

func (w *BlobsByRootsRequestWork) Kind() Kind { return KindBlobsByRootsRequest }

func (w *BlobsByRootsRequestWork) SeenAt() time.Duration { return w.Package.SeenTimestamp }

type LightClientBootstrapRequestWork struct {
	Package RpcPackage
	Process func(RpcPackage)
}

func (w *LightClientBootstrapRequestWork) Kind() Kind { return KindLightClientBootstrapRequest }

func (w *LightClientBootstrapRequestWork) SeenAt() time.Duration { return w.Package.SeenTimestamp }

// --- idle-signal-aware streaming RPC servers -------------------------------

// BlocksByRangeRequestWork and BlocksByRootsRequestWork stream a
// potentially long response; the worker pool hands in an IdleSignal so the
// serving task can release its concurrency permit when it finishes.
type BlocksByRangeRequestWork struct {
	Package RpcPackage
	Process func(ctx context.Context, idle *IdleSignal, pkg RpcPackage)
}

func (w *BlocksByRangeRequestWork) Kind() Kind { return KindBlocksByRangeRequest }

func (w *BlocksByRangeRequestWork) SeenAt() time.Duration { return w.Package.SeenTimestamp }

type BlocksByRootsRequestWork struct {
	Package RpcPackage
	Process func(ctx context.Context, idle *IdleSignal, pkg RpcPackage)
}

func (w *BlocksByRootsRequestWork) Kind() Kind { return KindBlocksByRootsRequest }

func (w *BlocksByRootsRequestWork) SeenAt() time.Duration { return w.Package.SeenTimestamp }

// --- chain segment import: backfill vs forward -----------------------------

// ChainSegmentProcessID names which batching policy a chain-segment
// submission belongs to. Only the BackSyncBatch variant routes to
// ChainSegmentBackfill; every other value routes to ChainSegment.
type ChainSegmentProcessID struct {
	BatchID  uint64
	Backfill bool
}

// ChainSegmentPackage is the input to a chain-segment import continuation.
// The execution-layer notification flag is not part of the package:
// Process computes it when the closure runs, suppressing it if the node is
// syncing finalized history at that moment -- a runtime decision, not a
// submission-time one.
type ChainSegmentPackage struct {
	ProcessID ChainSegmentProcessID
	Blocks    []any
}

type ChainSegmentWork struct {
	Package ChainSegmentPackage
	Process func(ctx context.Context)
}

func (w *ChainSegmentWork) Kind() Kind { return KindChainSegment }

type ChainSegmentBackfillWork struct {
	Package ChainSegmentPackage
	Process func(ctx context.Context)
}

func (w *ChainSegmentBackfillWork) Kind() Kind { return KindChainSegmentBackfill }
