package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockMap_SerializesSameKey(t *testing.T) {
	m := NewLockMap()
	const goroutines = 32
	const iterations = 200

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				m.Lock("draw-1")
				counter++
				m.Unlock("draw-1")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines*iterations, counter)
}

func TestLockMap_DifferentShardsDoNotBlock(t *testing.T) {
	m := NewLockMap()

	// Find two keys on different shards so holding one cannot block the other
	keyA := "a"
	keyB := ""
	for _, candidate := range []string{"b", "c", "d", "e", "f", "g", "h"} {
		if shardIndex(candidate) != shardIndex(keyA) {
			keyB = candidate
			break
		}
	}
	if keyB == "" {
		t.Fatal("could not find keys on distinct shards")
	}

	m.Lock(keyA)
	done := make(chan struct{})
	go func() {
		m.Lock(keyB)
		m.Unlock(keyB)
		close(done)
	}()
	<-done
	m.Unlock(keyA)
}
