package dispatch

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/macladson/lighthouse-dispatch/beaconprocessor"
	"github.com/macladson/lighthouse-dispatch/netmsg"
)

// AttestationInput is the raw network-layer input to SendGossipAttestation
// and SendGossipAggregate.
type AttestationInput struct {
	MessageID     netmsg.MessageID
	Peer          netmsg.PeerID
	Subnet        uint64
	ShouldImport  bool
	SeenTimestamp time.Duration
	Payload       any
}

// SendGossipAttestation submits an unaggregated attestation. drop_during_sync
// is true: attestations are not load-bearing for sync progress.
func (d *Dispatcher) SendGossipAttestation(in AttestationInput) error {
	pkg := beaconprocessor.AttestationPackage{
		Ingress: beaconprocessor.Ingress{
			Peer:          in.Peer,
			MessageID:     in.MessageID,
			SeenTimestamp: in.SeenTimestamp,
		},
		Subnet:       in.Subnet,
		ShouldImport: in.ShouldImport,
		Payload:      in.Payload,
	}
	reprocess := d.reprocess
	w := &beaconprocessor.GossipAttestationWork{
		Package: pkg,
		Process: func(p beaconprocessor.AttestationPackage) {
			d.handlers.GossipAttestation(p, reprocess)
		},
		ProcessBatch: func(ps []beaconprocessor.AttestationPackage) {
			d.handlers.GossipAttestationBatch(ps, reprocess)
		},
	}
	return d.submit(w)
}

// SendGossipAggregate submits an aggregated attestation. Same shape as
// SendGossipAttestation: individual and batch closures, drop_during_sync
// true.
func (d *Dispatcher) SendGossipAggregate(in AttestationInput) error {
	pkg := beaconprocessor.AttestationPackage{
		Ingress: beaconprocessor.Ingress{
			Peer:          in.Peer,
			MessageID:     in.MessageID,
			SeenTimestamp: in.SeenTimestamp,
		},
		Subnet:       in.Subnet,
		ShouldImport: in.ShouldImport,
		Payload:      in.Payload,
	}
	reprocess := d.reprocess
	w := &beaconprocessor.GossipAggregateWork{
		Package: pkg,
		Process: func(p beaconprocessor.AttestationPackage) {
			d.handlers.GossipAggregate(p, reprocess)
		},
		ProcessBatch: func(ps []beaconprocessor.AttestationPackage) {
			d.handlers.GossipAggregateBatch(ps, reprocess)
		},
	}
	return d.submit(w)
}

// GossipBlockInput is the raw network-layer input to SendGossipBlock.
type GossipBlockInput struct {
	MessageID     netmsg.MessageID
	Peer          netmsg.PeerID
	Root          common.Hash
	SeenTimestamp time.Duration
	Payload       any
}

// SendGossipBlock submits a gossip block as an asynchronous continuation.
// The duplicate-suppression cache is consulted inside the closure, not
// here: admission to the beacon-processor channel and admission to the
// cache are deliberately separate decisions. drop_during_sync is false --
// blocks are load-bearing for progress even during sync.
func (d *Dispatcher) SendGossipBlock(in GossipBlockInput) error {
	pkg := beaconprocessor.GossipBlockPackage{
		Ingress: beaconprocessor.Ingress{
			Peer:          in.Peer,
			MessageID:     in.MessageID,
			SeenTimestamp: in.SeenTimestamp,
		},
		Root:    in.Root,
		Payload: in.Payload,
	}
	reprocess := d.reprocess
	invalidBlockStorage := d.invalidBlockStorage
	duplicateCache := d.duplicateCache

	w := &beaconprocessor.GossipBlockWork{
		Package: pkg,
		Process: func(ctx context.Context) {
			token, admitted := duplicateCache.TryInsert(pkg.Root)
			defer token.Release()
			d.handlers.GossipBlock(ctx, pkg, reprocess, invalidBlockStorage, !admitted)
		},
	}
	return d.submit(w)
}

// GossipBlobSidecarInput is the raw network-layer input to
// SendGossipBlobSidecar.
type GossipBlobSidecarInput struct {
	MessageID     netmsg.MessageID
	Peer          netmsg.PeerID
	BlockRoot     common.Hash
	Index         uint64
	SeenTimestamp time.Duration
	Payload       any
}

// SendGossipBlobSidecar submits a blob sidecar. drop_during_sync is false.
func (d *Dispatcher) SendGossipBlobSidecar(in GossipBlobSidecarInput) error {
	pkg := beaconprocessor.GossipBlobSidecarPackage{
		Ingress: beaconprocessor.Ingress{
			Peer:          in.Peer,
			MessageID:     in.MessageID,
			SeenTimestamp: in.SeenTimestamp,
		},
		BlockRoot: in.BlockRoot,
		Index:     in.Index,
		Payload:   in.Payload,
	}
	w := &beaconprocessor.GossipBlobSidecarWork{
		Package: pkg,
		Process: func(p beaconprocessor.GossipBlobSidecarPackage) {
			d.handlers.GossipBlobSidecar(context.Background(), p)
		},
	}
	return d.submit(w)
}

// SimpleGossipInput is the raw network-layer input shared by the gossip
// variants that carry a single opaque payload: sync-committee signatures
// and contributions, voluntary exits, slashings, BLS-to-execution
// changes, and light-client update gossip.
type SimpleGossipInput struct {
	MessageID     netmsg.MessageID
	Peer          netmsg.PeerID
	SeenTimestamp time.Duration
	Payload       any
}

func (in SimpleGossipInput) pkg() beaconprocessor.SimpleGossipPackage {
	return beaconprocessor.SimpleGossipPackage{
		Ingress: beaconprocessor.Ingress{
			Peer:          in.Peer,
			MessageID:     in.MessageID,
			SeenTimestamp: in.SeenTimestamp,
		},
		Payload: in.Payload,
	}
}

// SendGossipSyncSignature submits a sync-committee signature. drop_during_sync true.
func (d *Dispatcher) SendGossipSyncSignature(in SimpleGossipInput) error {
	pkg := in.pkg()
	w := &beaconprocessor.GossipSyncSignatureWork{Package: pkg, Process: d.handlers.GossipSyncSignature}
	return d.submit(w)
}

// SendGossipSyncContribution submits a sync-committee contribution. drop_during_sync true.
func (d *Dispatcher) SendGossipSyncContribution(in SimpleGossipInput) error {
	pkg := in.pkg()
	w := &beaconprocessor.GossipSyncContributionWork{Package: pkg, Process: d.handlers.GossipSyncContribution}
	return d.submit(w)
}

// SendGossipVoluntaryExit submits a voluntary exit. drop_during_sync false.
func (d *Dispatcher) SendGossipVoluntaryExit(in SimpleGossipInput) error {
	pkg := in.pkg()
	w := &beaconprocessor.GossipVoluntaryExitWork{Package: pkg, Process: d.handlers.GossipVoluntaryExit}
	return d.submit(w)
}

// SendGossipProposerSlashing submits a proposer slashing. drop_during_sync false.
func (d *Dispatcher) SendGossipProposerSlashing(in SimpleGossipInput) error {
	pkg := in.pkg()
	w := &beaconprocessor.GossipProposerSlashingWork{Package: pkg, Process: d.handlers.GossipProposerSlashing}
	return d.submit(w)
}

// SendGossipAttesterSlashing submits an attester slashing. drop_during_sync false.
func (d *Dispatcher) SendGossipAttesterSlashing(in SimpleGossipInput) error {
	pkg := in.pkg()
	w := &beaconprocessor.GossipAttesterSlashingWork{Package: pkg, Process: d.handlers.GossipAttesterSlashing}
	return d.submit(w)
}

// SendGossipBlsToExecutionChange submits a BLS-to-execution change. drop_during_sync false.
func (d *Dispatcher) SendGossipBlsToExecutionChange(in SimpleGossipInput) error {
	pkg := in.pkg()
	w := &beaconprocessor.GossipBlsToExecutionChangeWork{Package: pkg, Process: d.handlers.GossipBlsToExecutionChange}
	return d.submit(w)
}

// SendGossipLightClientFinalityUpdate submits a light-client finality
// update. drop_during_sync true.
func (d *Dispatcher) SendGossipLightClientFinalityUpdate(in SimpleGossipInput) error {
	pkg := in.pkg()
	w := &beaconprocessor.GossipLightClientFinalityUpdateWork{Package: pkg, Process: d.handlers.GossipLightClientFinalityUpdate}
	return d.submit(w)
}

// SendGossipLightClientOptimisticUpdate submits a light-client optimistic
// update. drop_during_sync true.
func (d *Dispatcher) SendGossipLightClientOptimisticUpdate(in SimpleGossipInput) error {
	pkg := in.pkg()
	w := &beaconprocessor.GossipLightClientOptimisticUpdateWork{Package: pkg, Process: d.handlers.GossipLightClientOptimisticUpdate}
	return d.submit(w)
}
