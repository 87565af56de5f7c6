// Package beaconprocessor defines the work-kind taxonomy and channel types
// shared between the dispatch facade and the downstream beacon-processor
// worker pool. The pool itself -- its scheduler, its threads, its
// prioritization policy -- is an external collaborator; this package only
// describes the shape of what crosses the boundary.
package beaconprocessor

// Kind identifies one of the closed set of work variants the beacon
// processor accepts. It is the tag half of the WorkKind sum type described
// by the Work interface.
type Kind int

const (
	KindGossipAttestation Kind = iota
	KindGossipAggregate
	KindGossipBlock
	KindGossipBlobSidecar
	KindGossipSyncSignature
	KindGossipSyncContribution
	KindGossipVoluntaryExit
	KindGossipProposerSlashing
	KindGossipAttesterSlashing
	KindGossipBlsToExecutionChange
	KindGossipLightClientFinalityUpdate
	KindGossipLightClientOptimisticUpdate
	KindRpcBlock
	KindRpcBlobs
	KindChainSegment
	KindChainSegmentBackfill
	KindStatus
	KindBlocksByRangeRequest
	KindBlocksByRootsRequest
	KindBlobsByRangeRequest
	KindBlobsByRootsRequest
	KindLightClientBootstrapRequest
)

var kindNames = map[Kind]string{
	KindGossipAttestation:                "gossip_attestation",
	KindGossipAggregate:                  "gossip_aggregate",
	KindGossipBlock:                      "gossip_block",
	KindGossipBlobSidecar:                "gossip_blob_sidecar",
	KindGossipSyncSignature:              "gossip_sync_signature",
	KindGossipSyncContribution:           "gossip_sync_contribution",
	KindGossipVoluntaryExit:              "gossip_voluntary_exit",
	KindGossipProposerSlashing:           "gossip_proposer_slashing",
	KindGossipAttesterSlashing:           "gossip_attester_slashing",
	KindGossipBlsToExecutionChange:       "gossip_bls_to_execution_change",
	KindGossipLightClientFinalityUpdate:  "gossip_light_client_finality_update",
	KindGossipLightClientOptimisticUpdate: "gossip_light_client_optimistic_update",
	KindRpcBlock:                         "rpc_block",
	KindRpcBlobs:                         "rpc_blobs",
	KindChainSegment:                     "chain_segment",
	KindChainSegmentBackfill:             "chain_segment_backfill",
	KindStatus:                           "status",
	KindBlocksByRangeRequest:             "blocks_by_range_request",
	KindBlocksByRootsRequest:             "blocks_by_roots_request",
	KindBlobsByRangeRequest:              "blobs_by_range_request",
	KindBlobsByRootsRequest:              "blobs_by_roots_request",
	KindLightClientBootstrapRequest:      "light_client_bootstrap_request",
}

// String implements fmt.Stringer for logging and metrics labels.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// dropDuringSync is the fixed classification table from the facade's
// contract (section 4.5): for a given kind the flag never varies by call.
var dropDuringSync = map[Kind]bool{
	KindGossipAttestation:                 true,
	KindGossipAggregate:                   true,
	KindGossipSyncSignature:               true,
	KindGossipSyncContribution:            true,
	KindGossipLightClientFinalityUpdate:   true,
	KindGossipLightClientOptimisticUpdate: true,
	KindLightClientBootstrapRequest:       true,

	KindGossipBlock:                false,
	KindGossipBlobSidecar:          false,
	KindGossipVoluntaryExit:        false,
	KindGossipProposerSlashing:     false,
	KindGossipAttesterSlashing:     false,
	KindGossipBlsToExecutionChange: false,
	KindRpcBlock:                   false,
	KindRpcBlobs:                   false,
	KindChainSegment:               false,
	KindChainSegmentBackfill:       false,
	KindStatus:                     false,
	KindBlocksByRangeRequest:       false,
	KindBlocksByRootsRequest:       false,
	KindBlobsByRangeRequest:        false,
	KindBlobsByRootsRequest:        false,
}

// DropDuringSync reports the fixed drop-during-sync flag for k. Every kind
// defined in this package has an entry; a kind missing from the table is a
// programming error and DropDuringSync panics rather than silently
// defaulting, since a wrong default here is a correctness bug in the
// worker pool's sync-time admission policy.
func DropDuringSync(k Kind) bool {
	v, ok := dropDuringSync[k]
	if !ok {
		panic("beaconprocessor: no drop-during-sync classification for kind " + k.String())
	}
	return v
}

// FutureSlotTolerance is the number of slots a message may claim to be
// ahead of the local clock and still be considered fresh, used by
// processing bodies when judging message freshness. It is a named
// constant here, not interpreted by this package.
const FutureSlotTolerance = 1
