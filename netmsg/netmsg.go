// Package netmsg defines the minimal payload types exchanged across the
// dispatch facade's network-facing boundary: peer and gossip-message
// identity, and the outbound network/sync message envelopes. These are
// stand-ins for the upstream network stack's own types, kept deliberately
// small since the dispatch facade only needs to move them, never interpret
// them (see the beaconprocessor and dispatch packages).
package netmsg

import "github.com/ethereum/go-ethereum/common"

// PeerID identifies a connected peer. The wire encoding is the upstream
// network stack's concern; here it is an opaque, comparable string so it
// can key maps and sets directly.
type PeerID string

// MessageID identifies a single gossip message for mesh scoring and
// duplicate-message accounting, independent of its payload's block root.
type MessageID string

// ReprocessQueueMessage is an opaque handle to a message a processing body
// wishes to re-queue once a precondition (e.g. parent block known) becomes
// true. Its contents are owned entirely by the downstream beacon processor;
// the dispatch layer only clones a send handle to its channel.
type ReprocessQueueMessage struct {
	// Root is the block root the requeued message depends on.
	Root common.Hash
	// Payload is the opaque message body to be resubmitted later.
	Payload any
}

// NetworkMessageKind tags the outbound network-channel variants the
// dispatch layer's processing closures may emit.
type NetworkMessageKind int

const (
	// NetworkMessagePublish requests that the upstream network stack
	// re-publish a message to the gossip mesh.
	NetworkMessagePublish NetworkMessageKind = iota
	// NetworkMessageReportPeer requests a peer-scoring penalty.
	NetworkMessageReportPeer
)

// NetworkMessage is a minimal closed variant of the outbound network
// channel's payload, covering only what this module's processing closures
// construct. The full variant set lives upstream and is out of scope here.
type NetworkMessage struct {
	Kind NetworkMessageKind
	Peer PeerID
	Data []byte
}

// SyncMessageKind tags the outbound sync-channel variants.
type SyncMessageKind int

const (
	// SyncMessageDelayedLookup is emitted once per slot by the
	// delayed-lookup scheduler, one per drained root.
	SyncMessageDelayedLookup SyncMessageKind = iota
)

// SyncMessage is a minimal closed variant of the outbound sync channel's
// payload. DelayedLookup is the only variant this module produces.
type SyncMessage struct {
	Kind          SyncMessageKind
	DelayedLookup DelayedLookup
}

// DelayedLookup carries a block root and the de-duplicated set of peers
// that advertised it via gossip, forwarded to the sync layer once per slot.
type DelayedLookup struct {
	Root  common.Hash
	Peers []PeerID
}
