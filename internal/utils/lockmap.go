package utils

import (
	"hash/fnv"
	"sync"
)

// lockShards is the fixed size of the lock arena. Draws hashing to the same
// shard share a mutex; unrelated draws on different shards never contend.
const lockShards = 64

// LockMap provides per-key mutual exclusion over a fixed arena of mutexes,
// keyed by string id. It backs the per-draw and per-date exclusive sections
// without a global lock serializing unrelated draws.
type LockMap struct {
	shards [lockShards]sync.Mutex
}

// NewLockMap creates a new LockMap.
func NewLockMap() *LockMap {
	return &LockMap{}
}

// Lock acquires the exclusive section for key.
func (m *LockMap) Lock(key string) {
	m.shards[shardIndex(key)].Lock()
}

// Unlock releases the exclusive section for key.
func (m *LockMap) Unlock(key string) {
	m.shards[shardIndex(key)].Unlock()
}

func shardIndex(key string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(key))
	return h.Sum32() % lockShards
}
