package multiplayer

import "sync"

// Link carries deltas from one peer to another. Send never blocks: when the
// buffer is full the oldest delta is dropped, which a later full delta
// repairs.
type Link struct {
	deltas   chan Delta
	done     chan struct{}
	doneOnce sync.Once
}

// NewLink creates a link buffering up to size deltas.
func NewLink(size int) *Link {
	if size < 1 {
		size = 64
	}
	return &Link{
		deltas: make(chan Delta, size),
		done:   make(chan struct{}),
	}
}

// Send queues a delta.
func (l *Link) Send(d Delta) {
	select {
	case <-l.done:
		return
	default:
	}

	select {
	case l.deltas <- d:
	default:
		select {
		case <-l.deltas:
		default:
		}
		select {
		case l.deltas <- d:
		default:
		}
	}
}

// Deltas returns the receiving end.
func (l *Link) Deltas() <-chan Delta {
	return l.deltas
}

// Drain returns every queued delta without blocking.
func (l *Link) Drain() []Delta {
	var out []Delta
	for {
		select {
		case d := <-l.deltas:
			out = append(out, d)
		default:
			return out
		}
	}
}

// Done closes when the link is closed.
func (l *Link) Done() <-chan struct{} {
	return l.done
}

// Close marks the link as done. Safe to call multiple times.
func (l *Link) Close() {
	l.doneOnce.Do(func() {
		close(l.done)
	})
}

// Registry tracks the links of connected peers.
type Registry struct {
	mu    sync.RWMutex
	links map[PeerID]*Link
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{links: make(map[PeerID]*Link)}
}

// Register adds a peer's link.
func (r *Registry) Register(id PeerID, l *Link) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.links[id] = l
}

// Unregister removes and closes a peer's link.
func (r *Registry) Unregister(id PeerID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.links[id]; ok {
		l.Close()
		delete(r.links, id)
	}
}

// Get returns a peer's link.
func (r *Registry) Get(id PeerID) (*Link, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.links[id]
	return l, ok
}

// Broadcast sends a delta to every peer except its sender.
func (r *Registry) Broadcast(d Delta) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for id, l := range r.links {
		if id != d.From {
			l.Send(d)
		}
	}
}

// Count returns the number of registered peers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.links)
}
