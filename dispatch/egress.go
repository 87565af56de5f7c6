package dispatch

import "github.com/macladson/lighthouse-dispatch/netmsg"

// SendNetworkMessage wraps the outbound network channel: a non-blocking
// send that, on failure (the receiver having been torn down), logs at
// debug and swallows the error. It never panics on send failure. It is
// exported so processing bodies wired through Handlers can report a peer
// or publish a message from inside a closure, without this package ever
// calling it from a submission method itself.
func (d *Dispatcher) SendNetworkMessage(msg netmsg.NetworkMessage) {
	if d.networkCh == nil {
		return
	}
	defer func() {
		if recover() != nil {
			d.log.Debug("network channel closed, dropping message", "kind", msg.Kind)
		}
	}()
	select {
	case d.networkCh <- msg:
	default:
		d.log.Debug("network channel unavailable, dropping message", "kind", msg.Kind)
	}
}

// SendSyncMessage is the sync-channel counterpart of SendNetworkMessage,
// used by processing bodies that need to hand a delayed lookup or other
// sync-directed message back to the sync manager ahead of the scheduler's
// next sweep.
func (d *Dispatcher) SendSyncMessage(msg netmsg.SyncMessage) {
	if d.syncCh == nil {
		return
	}
	defer func() {
		if recover() != nil {
			d.log.Debug("sync channel closed, dropping message", "kind", msg.Kind)
		}
	}()
	select {
	case d.syncCh <- msg:
	default:
		d.log.Debug("sync channel unavailable, dropping message", "kind", msg.Kind)
	}
}
