package dispatch

import (
	"context"
	"time"

	"github.com/macladson/lighthouse-dispatch/beaconprocessor"
	"github.com/macladson/lighthouse-dispatch/netmsg"
)

// RpcInput is the raw network-layer input shared by the synchronous RPC
// server and client variants.
type RpcInput struct {
	Peer          netmsg.PeerID
	SeenTimestamp time.Duration
	Payload       any
}

func (in RpcInput) pkg() beaconprocessor.RpcPackage {
	return beaconprocessor.RpcPackage{Peer: in.Peer, SeenTimestamp: in.SeenTimestamp, Payload: in.Payload}
}

// SendRpcBlock submits a block received as an RPC response. drop_during_sync false.
func (d *Dispatcher) SendRpcBlock(in RpcInput) error {
	pkg := in.pkg()
	w := &beaconprocessor.RpcBlockWork{Package: pkg, Process: d.handlers.RpcBlock}
	return d.submit(w)
}

// RpcBlobsInput additionally carries the sidecar list so SendRpcBlobs can
// apply the zero-short-circuit rule.
type RpcBlobsInput struct {
	Peer          netmsg.PeerID
	SeenTimestamp time.Duration
	Sidecars      []beaconprocessor.RpcBlobSidecar
}

// SendRpcBlobs submits blob sidecars received as an RPC response. If every
// entry in in.Sidecars is empty, this is the single content-level
// short-circuit in the facade: it returns success and sends nothing.
// Otherwise it sends exactly one envelope of kind RpcBlobs.
// drop_during_sync false.
func (d *Dispatcher) SendRpcBlobs(in RpcBlobsInput) error {
	nonEmpty := 0
	for _, s := range in.Sidecars {
		if !s.Empty {
			nonEmpty++
		}
	}
	if nonEmpty == 0 {
		return nil
	}

	pkg := beaconprocessor.RpcPackage{Peer: in.Peer, SeenTimestamp: in.SeenTimestamp, Payload: in.Sidecars}
	w := &beaconprocessor.RpcBlobsWork{Package: pkg, Process: d.handlers.RpcBlobs}
	return d.submit(w)
}

// SendStatus submits a status handshake message. drop_during_sync false.
func (d *Dispatcher) SendStatus(in RpcInput) error {
	pkg := in.pkg()
	w := &beaconprocessor.StatusWork{Package: pkg, Process: d.handlers.Status}
	return d.submit(w)
}

// SendBlobsByRangeRequest submits an incoming blobs-by-range RPC request
// to be served. drop_during_sync false.
func (d *Dispatcher) SendBlobsByRangeRequest(in RpcInput) error {
	pkg := in.pkg()
	w := &beaconprocessor.BlobsByRangeRequestWork{Package: pkg, Process: d.handlers.BlobsByRangeRequest}
	return d.submit(w)
}

// SendBlobsByRootsRequest submits an incoming blobs-by-roots RPC request
// to be served. drop_during_sync false.
func (d *Dispatcher) SendBlobsByRootsRequest(in RpcInput) error {
	pkg := in.pkg()
	w := &beaconprocessor.BlobsByRootsRequestWork{Package: pkg, Process: d.handlers.BlobsByRootsRequest}
	return d.submit(w)
}

// SendLightClientBootstrapRequest submits an incoming light-client
// bootstrap RPC request. drop_during_sync true.
func (d *Dispatcher) SendLightClientBootstrapRequest(in RpcInput) error {
	pkg := in.pkg()
	w := &beaconprocessor.LightClientBootstrapRequestWork{Package: pkg, Process: d.handlers.LightClientBootstrapRequest}
	return d.submit(w)
}

// SendBlocksByRangeRequest submits an incoming blocks-by-range RPC
// request. The worker pool hands the processing closure an IdleSignal so
// it can release its concurrency permit once it finishes streaming the
// response. drop_during_sync false.
func (d *Dispatcher) SendBlocksByRangeRequest(in RpcInput) error {
	pkg := in.pkg()
	w := &beaconprocessor.BlocksByRangeRequestWork{
		Package: pkg,
		Process: func(ctx context.Context, idle *beaconprocessor.IdleSignal, p beaconprocessor.RpcPackage) {
			d.handlers.BlocksByRangeRequest(ctx, idle, p)
		},
	}
	return d.submit(w)
}

// SendBlocksByRootsRequest submits an incoming blocks-by-roots RPC
// request, idle-signal-aware like SendBlocksByRangeRequest.
// drop_during_sync false.
func (d *Dispatcher) SendBlocksByRootsRequest(in RpcInput) error {
	pkg := in.pkg()
	w := &beaconprocessor.BlocksByRootsRequestWork{
		Package: pkg,
		Process: func(ctx context.Context, idle *beaconprocessor.IdleSignal, p beaconprocessor.RpcPackage) {
			d.handlers.BlocksByRootsRequest(ctx, idle, p)
		},
	}
	return d.submit(w)
}
