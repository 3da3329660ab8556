package lock_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"hotelier/shared/lock"
)

func TestKeyed_SerializesSameKey(t *testing.T) {
	var locks lock.Keyed

	const workers = 32

	counter := 0

	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		go func() {
			defer wg.Done()

			unlock := locks.Lock(101)
			defer unlock()

			counter++
		}()
	}

	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestKeyed_IndependentKeysDoNotBlock(t *testing.T) {
	var locks lock.Keyed

	unlockA := locks.Lock(1)
	defer unlockA()

	done := make(chan struct{})

	go func() {
		unlockB := locks.Lock(2)
		defer unlockB()

		close(done)
	}()

	<-done
}

func TestKeyed_Reentry(t *testing.T) {
	var locks lock.Keyed

	unlock := locks.Lock(7)
	unlock()

	unlock = locks.Lock(7)
	unlock()
}
