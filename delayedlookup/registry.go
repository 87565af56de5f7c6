// Package delayedlookup batches missing-component lookups so the node
// issues at most one RPC fetch per root per slot, instead of one per
// gossip message that mentions an unknown root. The registration side
// (Registry) is invoked directly by gossip processing bodies; the
// scheduling side (Scheduler) drains it on a slot-aligned cadence and
// forwards the result to the sync layer.
//
// Delaying lookups this way serves four goals: avoid issuing RPC fetches
// for components likely to arrive imminently on gossip, prefer peers that
// attested to the block as proof of possession, issue a single RPC request
// per root rather than one per advertising peer, and let gossip's own
// dissemination finish before falling back to direct fetches.
package delayedlookup

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/macladson/lighthouse-dispatch/metrics"
	"github.com/macladson/lighthouse-dispatch/netmsg"
)

// Capacity is the fixed number of roots the registry holds, named
// DELAYED_PEER_CACHE_SIZE in the upstream contract.
const Capacity = 16

type entry struct {
	root  common.Hash
	peers map[netmsg.PeerID]struct{}
	prev  *entry
	next  *entry
}

// Registry is a bounded LRU mapping block root to the de-duplicated set of
// peers that advertised it via gossip. It is safe for concurrent use; the
// scheduler drains it from a different goroutine than the one registering
// peers.
type Registry struct {
	mu    sync.Mutex
	items map[common.Hash]*entry

	head *entry // most recently updated
	tail *entry // least recently updated
}

// NewRegistry creates an empty Registry at the fixed Capacity.
func NewRegistry() *Registry {
	return &Registry{items: make(map[common.Hash]*entry, Capacity)}
}

// Register records that peer advertised root via gossip, creating the
// root's entry if necessary and promoting it to most-recently-updated.
// If this insertion exceeds Capacity, the least recently updated root is
// evicted silently -- the caller is never told.
func (r *Registry) Register(root common.Hash, peer netmsg.PeerID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.items[root]
	if !ok {
		e = &entry{root: root, peers: make(map[netmsg.PeerID]struct{}, 1)}
		r.items[root] = e
		r.pushFront(e)
	} else {
		r.moveToFront(e)
	}
	e.peers[peer] = struct{}{}

	if len(r.items) > Capacity {
		r.evictTail()
	}
	metrics.DelayedLookupRegistrySize.Set(int64(len(r.items)))
}

// Len returns the number of roots currently registered.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Has reports whether root is currently registered, for tests.
func (r *Registry) Has(root common.Hash) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.items[root]
	return ok
}

// Drain atomically swaps out the registry's entire contents, returning
// the drained (root, peer-set) pairs. After Drain the registry is empty.
// Iteration order of the result is unspecified, matching the contract.
func (r *Registry) Drain() []netmsg.DelayedLookup {
	r.mu.Lock()
	defer r.mu.Unlock()

	drained := make([]netmsg.DelayedLookup, 0, len(r.items))
	for root, e := range r.items {
		peers := make([]netmsg.PeerID, 0, len(e.peers))
		for p := range e.peers {
			peers = append(peers, p)
		}
		drained = append(drained, netmsg.DelayedLookup{Root: root, Peers: peers})
	}

	r.items = make(map[common.Hash]*entry, Capacity)
	r.head = nil
	r.tail = nil

	metrics.DelayedLookupRegistrySize.Set(0)
	metrics.DelayedLookupRootsDrained.Add(int64(len(drained)))

	return drained
}

func (r *Registry) pushFront(e *entry) {
	e.prev = nil
	e.next = r.head
	if r.head != nil {
		r.head.prev = e
	}
	r.head = e
	if r.tail == nil {
		r.tail = e
	}
}

func (r *Registry) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		r.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		r.tail = e.prev
	}
	e.prev = nil
	e.next = nil
}

func (r *Registry) moveToFront(e *entry) {
	if r.head == e {
		return
	}
	r.remove(e)
	r.pushFront(e)
}

func (r *Registry) evictTail() {
	if r.tail == nil {
		return
	}
	evicted := r.tail
	r.remove(evicted)
	delete(r.items, evicted.root)
}
