package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyLocks_SerializesSameKey(t *testing.T) {
	locks := NewKeyLocks()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("user:1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestKeyLocks_IndependentKeys(t *testing.T) {
	locks := NewKeyLocks()

	unlockA := locks.Lock("user:1")
	defer unlockA()

	// A held lock on one key must not block another key.
	done := make(chan struct{})
	go func() {
		unlockB := locks.Lock("user:2")
		unlockB()
		close(done)
	}()

	<-done
}

func TestKeyLocks_ReacquireAfterUnlock(t *testing.T) {
	locks := NewKeyLocks()

	unlock := locks.Lock("guild:1")
	unlock()

	unlock = locks.Lock("guild:1")
	unlock()
}
