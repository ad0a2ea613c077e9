package usecase

import (
	"sync"
	"testing"
)

func TestKeyedLock_SerializesSameID(t *testing.T) {
	l := newKeyedLock()

	const workers = 8
	const iterations = 100

	counter := 0
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range iterations {
				l.Lock(1)
				counter++
				l.Unlock(1)
			}
		}()
	}
	wg.Wait()

	if counter != workers*iterations {
		t.Errorf("counter = %d, want %d", counter, workers*iterations)
	}
}

func TestKeyedLock_ReleasesEntries(t *testing.T) {
	l := newKeyedLock()

	l.Lock(1)
	l.Lock(2)
	l.Unlock(2)
	l.Unlock(1)

	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.locks) != 0 {
		t.Errorf("entries remaining = %d, want 0", len(l.locks))
	}
}

func TestKeyedLock_IndependentIDs(t *testing.T) {
	l := newKeyedLock()

	l.Lock(1)

	done := make(chan struct{})
	go func() {
		l.Lock(2)
		l.Unlock(2)
		close(done)
	}()

	// Holding id 1 must not block id 2.
	<-done
	l.Unlock(1)
}
