package sim

import (
	"sync"

	"github.com/vovakirdan/tetrion/internal/tetrion"
)

// Bridge hands snapshots from the simulation goroutine to renderers.
// The lock is held only while a snapshot is copied in or out.
type Bridge struct {
	mu   sync.Mutex
	snap tetrion.Snapshot
	seq  uint64
}

// NewBridge creates an empty bridge.
func NewBridge() *Bridge {
	return &Bridge{}
}

// Publish stores a copy of s as the latest snapshot.
func (b *Bridge) Publish(s *tetrion.Snapshot) {
	b.mu.Lock()
	s.CopyTo(&b.snap)
	b.seq++
	b.mu.Unlock()
}

// Latest returns an independent copy of the most recent snapshot.
// ok is false until the first Publish.
func (b *Bridge) Latest() (snap tetrion.Snapshot, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.seq == 0 {
		return snap, false
	}
	b.snap.CopyTo(&snap)
	return snap, true
}

// LatestInto copies the most recent snapshot into dst, reusing its cell
// buffer, and returns the publish sequence number. It returns 0 and leaves
// dst untouched before the first Publish.
func (b *Bridge) LatestInto(dst *tetrion.Snapshot) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.seq == 0 {
		return 0
	}
	b.snap.CopyTo(dst)
	return b.seq
}

// Seq returns how many snapshots have been published.
func (b *Bridge) Seq() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.seq
}
