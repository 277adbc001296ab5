// Package stream delivers live full-collection snapshots to subscribers,
// standing in for the document store's realtime subscription transport.
package stream

import (
	"context"
	"sync"
	"time"
)

// Collection names the three persisted collections an account owns.
type Collection string

const (
	Products  Collection = "products"
	Customers Collection = "customers"
	Sales     Collection = "sales"
)

// Known reports whether the collection name is one of the persisted three.
func (c Collection) Known() bool {
	switch c {
	case Products, Customers, Sales:
		return true
	}
	return false
}

// Snapshot carries the full state of one collection after a change. Consumers
// replace their local view on every event; there are no diffs.
type Snapshot struct {
	Collection Collection `json:"collection"`
	Records    any        `json:"records"`
	At         time.Time  `json:"at"`
}

type subscriber struct {
	owner string
	coll  Collection
	ch    chan Snapshot
}

// Hub fan-outs snapshots to all active subscribers of an account's collection.
type Hub struct {
	mu   sync.RWMutex
	subs map[int]subscriber
	next int
}

// New initialises an empty hub.
func New() *Hub {
	return &Hub{subs: make(map[int]subscriber)}
}

// Subscribe registers a subscriber for one account's collection and returns a
// channel receiving snapshots. The channel is closed when ctx ends, so
// teardown on sign-out or disconnect never leaks a subscription.
func (h *Hub) Subscribe(ctx context.Context, owner string, coll Collection) <-chan Snapshot {
	ch := make(chan Snapshot, 16)

	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = subscriber{owner: owner, coll: coll, ch: ch}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs, id)
		close(ch)
		h.mu.Unlock()
	}()

	return ch
}

// Publish fan-outs the new collection state to matching subscribers.
func (h *Hub) Publish(owner string, coll Collection, records any) {
	snap := Snapshot{Collection: coll, Records: records, At: time.Now().UTC()}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sub := range h.subs {
		if sub.owner != owner || sub.coll != coll {
			continue
		}
		select {
		case sub.ch <- snap:
		default:
			// Drop when subscriber is slow to avoid blocking.
		}
	}
}
