package dispatch

import (
	"context"

	"github.com/macladson/lighthouse-dispatch/beaconprocessor"
)

// ChainSegmentInput is the raw input to SendChainSegment. ProcessID
// determines the variant selected: a BackSyncBatch identity produces
// ChainSegmentBackfill, anything else produces ChainSegment.
type ChainSegmentInput struct {
	ProcessID beaconprocessor.ChainSegmentProcessID
	Blocks    []any
}

// SendChainSegment submits a batch of sequential blocks for import. The
// only submission-time computation beyond trivial field assembly is the
// backfill-variant selection -- the actual read of the node's sync state,
// which decides whether to suppress execution-layer notification, happens
// inside the closure at execution time, not here. Both variants have
// drop_during_sync = false.
func (d *Dispatcher) SendChainSegment(in ChainSegmentInput) error {
	pkg := beaconprocessor.ChainSegmentPackage{ProcessID: in.ProcessID, Blocks: in.Blocks}
	isSyncingFinalized := d.isSyncingFinalized

	if in.ProcessID.Backfill {
		w := &beaconprocessor.ChainSegmentBackfillWork{
			Package: pkg,
			Process: func(ctx context.Context) {
				notify := !isSyncingFinalized()
				d.handlers.ChainSegmentBackfill(ctx, pkg, notify)
			},
		}
		return d.submit(w)
	}

	w := &beaconprocessor.ChainSegmentWork{
		Package: pkg,
		Process: func(ctx context.Context) {
			notify := !isSyncingFinalized()
			d.handlers.ChainSegment(ctx, pkg, notify)
		},
	}
	return d.submit(w)
}
