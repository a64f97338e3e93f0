// Package inflight orders asynchronous responses by the order their requests
// were started, so a stale response never overwrites a newer one.
package inflight

import "sync"

// Ticket identifies one request for a key
type Ticket struct {
	Key string
	Seq uint64
}

// Tracker hands out per-key generation numbers. Safe for concurrent use.
type Tracker struct {
	mu     sync.Mutex
	seq    uint64
	latest map[string]uint64
}

// NewTracker creates an empty Tracker
func NewTracker() *Tracker {
	return &Tracker{latest: make(map[string]uint64)}
}

// Begin records a new request for key. Sequence numbers are global, so
// tickets for different keys can be compared by start order too.
func (t *Tracker) Begin(key string) Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.seq++
	t.latest[key] = t.seq
	return Ticket{Key: key, Seq: t.seq}
}

// Current reports whether ticket is still the newest request for its key
func (t *Tracker) Current(ticket Ticket) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.latest[ticket.Key] == ticket.Seq
}

// ChangedSince reports whether a request for key was started after seq
func (t *Tracker) ChangedSince(key string, seq uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.latest[key] > seq
}

// Forget drops the history of key
func (t *Tracker) Forget(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.latest, key)
}
