package vote

import (
	"sync/atomic"

	"agoranet.io/agora/lib/storage"
)

// Clock reports the current block height. Every transition reads its
// `now` from here, so replaying the same calls against the same heights
// reproduces the ledger bit for bit.
type Clock interface {
	Height() uint64
}

// ChainClock is a height counter safe to advance from a different
// goroutine than the one reading it, for node runners that tick on wall
// time.
type ChainClock struct {
	height uint64
}

func NewChainClock(height uint64) *ChainClock {
	return &ChainClock{height: height}
}

func (c *ChainClock) Height() uint64 {
	return atomic.LoadUint64(&c.height)
}

func (c *ChainClock) Tick() uint64 {
	return atomic.AddUint64(&c.height, 1)
}

// LoadChainHeight reads the last persisted block height; zero on a fresh
// ledger. Seeding a ChainClock from it keeps expired votes expired across
// restarts.
func LoadChainHeight(st *storage.LevelDBBackend) (uint64, error) {
	return getCounter(st, ChainHeightCounterKey)
}

// SaveChainHeight persists the current block height alongside the ledger.
func SaveChainHeight(st *storage.LevelDBBackend, height uint64) error {
	return putCounter(st, ChainHeightCounterKey, height)
}

// ManualClock is advanced explicitly by its owner; the test suites and
// single-process runners drive it.
type ManualClock struct {
	height uint64
}

func NewManualClock(height uint64) *ManualClock {
	return &ManualClock{height: height}
}

func (c *ManualClock) Height() uint64 {
	return c.height
}

func (c *ManualClock) SetHeight(height uint64) {
	c.height = height
}

func (c *ManualClock) Tick() uint64 {
	c.height++
	return c.height
}
